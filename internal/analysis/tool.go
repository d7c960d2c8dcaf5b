package analysis

import "context"

// Tool is the contract every analysis tool implements. Implementations must
// be safe for concurrent use, must treat the input as read-only, and must
// produce the same output for the same input (no hidden mutable state
// beyond configuration loaded at construction).
//
// A failing tool should return (nil, err) rather than panic; the
// orchestrator additionally contains panics, so neither ever escapes a run.
// Execute must respect context cancellation for any internal I/O.
type Tool interface {
	// Metadata returns the tool's static descriptor. It must be constant
	// for the lifetime of the tool.
	Metadata() ToolMetadata

	// Execute scores the given ad copy along the tool's dimension.
	Execute(ctx context.Context, input *ToolInput) (*ToolOutput, error)
}

// HealthChecker is optionally implemented by tools that can self-check
// without executing (verifying a ruleset loaded, a remote dependency is
// reachable, and so on). Tools without it are reported healthy.
type HealthChecker interface {
	// Health returns nil when the tool is fully operational, ErrDegraded
	// (possibly wrapped) when it can run with reduced fidelity, and any
	// other error when it cannot run at all.
	Health(ctx context.Context) error
}
