package analysis

import (
	"context"
	"errors"
	"sync"
	"time"
)

// healthProbeTimeout bounds each tool's self-check so one stuck probe
// cannot stall the whole health report.
const healthProbeTimeout = 2 * time.Second

// Registry is the process-wide catalog of analysis tools. It is populated
// once at startup and read for the rest of the process lifetime, but keeps
// a lock so lookups and health probes are race-free regardless.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string // registration order, for deterministic listings
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool under its metadata ID. Registering an ID twice is a
// programming error and returns DuplicateToolError.
func (r *Registry) Register(tool Tool) error {
	id := tool.Metadata().ID

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[id]; exists {
		return &DuplicateToolError{ID: id}
	}
	r.tools[id] = tool
	r.order = append(r.order, id)
	return nil
}

// Resolve returns the tools for the requested IDs, in request order. If any
// ID is unregistered the whole call fails with UnknownToolError naming
// every unknown ID, so a run never silently drops a requested tool.
func (r *Registry) Resolve(ids []string) ([]Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resolved := make([]Tool, 0, len(ids))
	var unknown []string
	for _, id := range ids {
		tool, ok := r.tools[id]
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		resolved = append(resolved, tool)
	}
	if len(unknown) > 0 {
		return nil, &UnknownToolError{IDs: unknown}
	}
	return resolved, nil
}

// ListAvailable returns metadata for every registered tool, in registration
// order. It never executes a tool.
func (r *Registry) ListAvailable() []ToolMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	metas := make([]ToolMetadata, 0, len(r.order))
	for _, id := range r.order {
		metas = append(metas, r.tools[id].Metadata())
	}
	return metas
}

// IDs returns every registered tool ID in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// HealthCheck probes every registered tool and reports its status. Probes
// use each tool's optional HealthChecker; Execute is never invoked. Tools
// without a self-check are reported healthy.
func (r *Registry) HealthCheck(ctx context.Context) map[string]HealthStatus {
	r.mu.RLock()
	tools := make(map[string]Tool, len(r.tools))
	for id, tool := range r.tools {
		tools[id] = tool
	}
	r.mu.RUnlock()

	report := make(map[string]HealthStatus, len(tools))
	for id, tool := range tools {
		checker, ok := tool.(HealthChecker)
		if !ok {
			report[id] = HealthHealthy
			continue
		}

		probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
		err := checker.Health(probeCtx)
		cancel()

		switch {
		case err == nil:
			report[id] = HealthHealthy
		case errors.Is(err, ErrDegraded):
			report[id] = HealthDegraded
		default:
			report[id] = HealthUnavailable
		}
	}
	return report
}
