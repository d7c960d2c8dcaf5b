package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDegraded is returned by a tool's health probe when the tool can still
// execute but with reduced fidelity (for example, a ruleset that failed to
// refresh). Any other non-nil probe error marks the tool unavailable.
var ErrDegraded = errors.New("degraded")

// UnknownToolError reports requested tool IDs that are not registered. The
// whole run is rejected before any tool executes; partial resolution is
// never silently allowed.
type UnknownToolError struct {
	IDs []string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tools: %s", strings.Join(e.IDs, ", "))
}

// DuplicateToolError reports a registration attempt with an ID that is
// already taken.
type DuplicateToolError struct {
	ID string
}

func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("tool already registered: %s", e.ID)
}

// InvalidModeError reports an unrecognized execution mode.
type InvalidModeError struct {
	Mode string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid execution mode: %q", e.Mode)
}

// DependencyCycleError reports a depends_on cycle among the requested
// tools. Like UnknownToolError it is raised before any tool executes.
type DependencyCycleError struct {
	IDs []string
}

func (e *DependencyCycleError) Error() string {
	return fmt.Sprintf("dependency cycle among tools: %s", strings.Join(e.IDs, ", "))
}

// IsRequestError reports whether err is a caller mistake (unknown tool,
// invalid mode, dependency cycle) rather than a runtime analysis failure.
// Runtime failures never escape Run; they surface as failed outcomes.
func IsRequestError(err error) bool {
	var unknown *UnknownToolError
	var mode *InvalidModeError
	var cycle *DependencyCycleError
	return errors.As(err, &unknown) || errors.As(err, &mode) || errors.As(err, &cycle)
}
