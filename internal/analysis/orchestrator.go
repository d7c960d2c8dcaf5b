package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultToolTimeout bounds a single tool execution when its metadata does
// not override it.
const DefaultToolTimeout = 15 * time.Second

// Orchestrator runs a set of registered tools against one input and folds
// their outcomes into a single AggregateResult. One tool's failure or
// timeout never aborts a run: analysis is best-effort, partial results beat
// no results. Run returns an error only for caller mistakes (unknown tool
// ID, invalid mode, dependency cycle), always before any tool executes.
type Orchestrator struct {
	registry       *Registry
	logger         *slog.Logger
	defaultTimeout time.Duration
}

// NewOrchestrator creates an orchestrator over the given registry.
// defaultTimeout bounds each tool execution unless the tool's metadata
// overrides it; zero selects DefaultToolTimeout.
func NewOrchestrator(registry *Registry, logger *slog.Logger, defaultTimeout time.Duration) *Orchestrator {
	if defaultTimeout <= 0 {
		defaultTimeout = DefaultToolTimeout
	}
	return &Orchestrator{
		registry:       registry,
		logger:         logger,
		defaultTimeout: defaultTimeout,
	}
}

// Run executes the requested tools against input under the given mode.
// The returned outcomes are always in requested order, one per requested
// tool, regardless of completion order. Cancelling ctx stops the run
// cooperatively; tools that never started are recorded as failed with the
// cancellation error.
func (o *Orchestrator) Run(ctx context.Context, input *ToolInput, toolIDs []string, mode Mode) (*AggregateResult, error) {
	switch mode {
	case ModeParallel, ModeSequential, ModeMixed:
	default:
		return nil, &InvalidModeError{Mode: string(mode)}
	}

	tools, err := o.registry.Resolve(toolIDs)
	if err != nil {
		return nil, err
	}

	// Build the execution plan up front so scheduling mistakes (cycles)
	// surface before any tool runs.
	var layers [][]int
	switch mode {
	case ModeParallel:
		all := make([]int, len(tools))
		for i := range tools {
			all[i] = i
		}
		layers = [][]int{all}
	case ModeSequential:
		grouped, err := dependencyLayers(tools, toolIDs)
		if err != nil {
			return nil, err
		}
		// One tool at a time, still in dependency order.
		for _, layer := range grouped {
			for _, i := range layer {
				layers = append(layers, []int{i})
			}
		}
	case ModeMixed:
		layers, err = dependencyLayers(tools, toolIDs)
		if err != nil {
			return nil, err
		}
	}

	start := time.Now()
	outcomes := make([]ToolOutcome, len(tools))
	terminal := make(map[string]Status, len(tools))

	for _, layer := range layers {
		// Dependents of a failed, timed-out, or skipped prerequisite are
		// skipped without executing. Dependencies outside the requested
		// set do not gate anything.
		runnable := make([]int, 0, len(layer))
		for _, i := range layer {
			meta := tools[i].Metadata()
			if dep := unmetDependency(meta, terminal); dep != "" {
				outcomes[i] = ToolOutcome{
					ToolID: meta.ID,
					Status: StatusSkipped,
					Error:  fmt.Sprintf("dependency %s did not succeed", dep),
				}
				terminal[meta.ID] = StatusSkipped
				continue
			}
			runnable = append(runnable, i)
		}

		o.executeLayer(ctx, tools, input, runnable, outcomes)

		for _, i := range runnable {
			terminal[outcomes[i].ToolID] = outcomes[i].Status
		}
	}

	result := buildAggregate(mode, outcomes)
	o.logger.Info("analysis run complete",
		"mode", mode,
		"tools", len(toolIDs),
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"timed_out", result.TimedOut,
		"skipped", result.Skipped,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// executeLayer runs the tools at the given indexes concurrently, writing
// each outcome to its requested position so the collected slice stays in
// caller order no matter which tool finishes first.
func (o *Orchestrator) executeLayer(ctx context.Context, tools []Tool, input *ToolInput, idxs []int, outcomes []ToolOutcome) {
	if len(idxs) == 0 {
		return
	}
	if len(idxs) == 1 {
		i := idxs[0]
		outcomes[i] = o.executeTool(ctx, tools[i], input)
		return
	}

	var wg sync.WaitGroup
	for _, i := range idxs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i] = o.executeTool(ctx, tools[i], input)
		}(i)
	}
	wg.Wait()
}

// executeTool runs a single tool under its deadline and converts every
// possible ending (result, error, panic, timeout, cancellation) into a
// terminal ToolOutcome. When a tool ignores cancellation the orchestrator
// stops waiting and abandons the goroutine rather than blocking the run.
func (o *Orchestrator) executeTool(ctx context.Context, tool Tool, input *ToolInput) ToolOutcome {
	meta := tool.Metadata()

	if err := ctx.Err(); err != nil {
		return ToolOutcome{ToolID: meta.ID, Status: StatusFailed, Error: err.Error()}
	}

	timeout := meta.Timeout
	if timeout <= 0 {
		timeout = o.defaultTimeout
	}
	toolCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type execResult struct {
		output *ToolOutput
		err    error
	}
	// Buffered so an abandoned tool can still complete its send.
	resultCh := make(chan execResult, 1)
	start := time.Now()

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				resultCh <- execResult{err: fmt.Errorf("tool panicked: %v", rec)}
			}
		}()
		output, err := tool.Execute(toolCtx, input)
		resultCh <- execResult{output: output, err: err}
	}()

	select {
	case res := <-resultCh:
		elapsed := time.Since(start).Milliseconds()
		switch {
		case res.err == nil && res.output != nil:
			return ToolOutcome{
				ToolID:     meta.ID,
				Status:     StatusSucceeded,
				Output:     res.output,
				DurationMS: elapsed,
			}
		case res.err == nil:
			return ToolOutcome{
				ToolID:     meta.ID,
				Status:     StatusFailed,
				Error:      "tool returned no output",
				DurationMS: elapsed,
			}
		case errors.Is(res.err, context.DeadlineExceeded):
			o.logger.Warn("tool timed out", "tool", meta.ID, "timeout", timeout)
			return ToolOutcome{
				ToolID:     meta.ID,
				Status:     StatusTimedOut,
				Error:      fmt.Sprintf("deadline exceeded after %s", timeout),
				DurationMS: elapsed,
			}
		default:
			o.logger.Warn("tool execution failed", "tool", meta.ID, "error", res.err)
			return ToolOutcome{
				ToolID:     meta.ID,
				Status:     StatusFailed,
				Error:      res.err.Error(),
				DurationMS: elapsed,
			}
		}
	case <-toolCtx.Done():
		elapsed := time.Since(start).Milliseconds()
		if errors.Is(toolCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			o.logger.Warn("tool timed out, abandoning", "tool", meta.ID, "timeout", timeout)
			return ToolOutcome{
				ToolID:     meta.ID,
				Status:     StatusTimedOut,
				Error:      fmt.Sprintf("deadline exceeded after %s", timeout),
				DurationMS: elapsed,
			}
		}
		return ToolOutcome{
			ToolID:     meta.ID,
			Status:     StatusFailed,
			Error:      ctx.Err().Error(),
			DurationMS: elapsed,
		}
	}
}

// unmetDependency returns the first declared dependency (among tools in
// this run) that reached a terminal state other than succeeded.
func unmetDependency(meta ToolMetadata, terminal map[string]Status) string {
	for _, dep := range meta.DependsOn {
		if status, ok := terminal[dep]; ok && status != StatusSucceeded {
			return dep
		}
	}
	return ""
}

// dependencyLayers partitions the requested tools into groups where no tool
// depends on another tool in its own or a later group. Within a group,
// requested order is preserved. Dependencies on tools outside the request
// are ignored for scheduling. Returns DependencyCycleError when the
// declared dependencies cannot be ordered.
func dependencyLayers(tools []Tool, toolIDs []string) ([][]int, error) {
	requested := make(map[string]bool, len(toolIDs))
	for _, id := range toolIDs {
		requested[id] = true
	}

	placed := make(map[string]bool, len(tools))
	remaining := make([]int, 0, len(tools))
	for i := range tools {
		remaining = append(remaining, i)
	}

	var layers [][]int
	for len(remaining) > 0 {
		var layer, next []int
		for _, i := range remaining {
			ready := true
			for _, dep := range tools[i].Metadata().DependsOn {
				if requested[dep] && !placed[dep] {
					ready = false
					break
				}
			}
			if ready {
				layer = append(layer, i)
			} else {
				next = append(next, i)
			}
		}

		if len(layer) == 0 {
			stuck := make([]string, 0, len(next))
			for _, i := range next {
				stuck = append(stuck, tools[i].Metadata().ID)
			}
			return nil, &DependencyCycleError{IDs: stuck}
		}

		for _, i := range layer {
			placed[tools[i].Metadata().ID] = true
		}
		layers = append(layers, layer)
		remaining = next
	}
	return layers, nil
}
