package analysis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// stubTool is a configurable test implementation of Tool.
type stubTool struct {
	id        string
	dependsOn []string
	timeout   time.Duration

	score    float64
	delay    time.Duration
	failWith error
	panicMsg string

	mu        sync.Mutex
	execCount int
	lastStart time.Time
}

func (s *stubTool) Metadata() ToolMetadata {
	return ToolMetadata{
		ID:        s.id,
		Name:      s.id,
		Category:  "test",
		DependsOn: s.dependsOn,
		Timeout:   s.timeout,
	}
}

func (s *stubTool) Execute(ctx context.Context, input *ToolInput) (*ToolOutput, error) {
	s.mu.Lock()
	s.execCount++
	s.lastStart = time.Now()
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	if s.failWith != nil {
		return nil, s.failWith
	}

	return &ToolOutput{
		Score:    s.score,
		Insights: []string{s.id + " insight"},
	}, nil
}

func (s *stubTool) executions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.execCount
}

func (s *stubTool) startedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStart
}

// stubHealthTool adds a HealthChecker implementation.
type stubHealthTool struct {
	stubTool
	healthErr error
}

func (s *stubHealthTool) Health(ctx context.Context) error {
	return s.healthErr
}

func testInput() *ToolInput {
	return &ToolInput{
		Headline: "Buy Now",
		BodyText: "Limited offer",
		CTAText:  "Shop Now",
		Platform: PlatformFacebook,
	}
}

func newTestOrchestrator(t *testing.T, tools ...Tool) *Orchestrator {
	t.Helper()
	registry := NewRegistry()
	for _, tool := range tools {
		if err := registry.Register(tool); err != nil {
			t.Fatalf("register %s: %v", tool.Metadata().ID, err)
		}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOrchestrator(registry, logger, time.Second)
}

func TestRun_ParallelAllSucceed(t *testing.T) {
	readability := &stubTool{id: "readability", score: 80}
	cta := &stubTool{id: "cta", score: 90}
	orch := newTestOrchestrator(t, readability, cta)

	result, err := orch.Run(context.Background(), testInput(), []string{"readability", "cta"}, ModeParallel)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(result.Outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(result.Outcomes))
	}
	if result.Succeeded != 2 {
		t.Errorf("expected 2 succeeded, got %d", result.Succeeded)
	}
	if result.OverallScore == nil || *result.OverallScore != 85 {
		t.Errorf("expected overall 85, got %v", result.OverallScore)
	}
	if result.HasPartialFailure {
		t.Error("expected no partial failure")
	}
	if result.Mode != ModeParallel {
		t.Errorf("expected mode parallel, got %s", result.Mode)
	}
}

func TestRun_OutcomeCountMatchesRequest(t *testing.T) {
	a := &stubTool{id: "a", score: 50}
	b := &stubTool{id: "b", failWith: errors.New("boom")}
	c := &stubTool{id: "c", score: 70}
	orch := newTestOrchestrator(t, a, b, c)

	for _, mode := range []Mode{ModeParallel, ModeSequential, ModeMixed} {
		result, err := orch.Run(context.Background(), testInput(), []string{"a", "b", "c"}, mode)
		if err != nil {
			t.Fatalf("mode %s: %v", mode, err)
		}
		if len(result.Outcomes) != 3 {
			t.Errorf("mode %s: expected 3 outcomes, got %d", mode, len(result.Outcomes))
		}
	}
}

func TestRun_PartialFailure(t *testing.T) {
	readability := &stubTool{id: "readability", score: 72.5}
	broken := &stubTool{id: "broken_tool", failWith: errors.New("internal scoring error")}
	orch := newTestOrchestrator(t, readability, broken)

	result, err := orch.Run(context.Background(), testInput(), []string{"readability", "broken_tool"}, ModeParallel)
	if err != nil {
		t.Fatalf("run must not fail for a tool error: %v", err)
	}

	if result.Succeeded != 1 || result.Failed != 1 {
		t.Fatalf("expected 1 succeeded / 1 failed, got %d / %d", result.Succeeded, result.Failed)
	}
	if result.OverallScore == nil || *result.OverallScore != 72.5 {
		t.Errorf("overall must equal the sole succeeded score, got %v", result.OverallScore)
	}
	if !result.HasPartialFailure {
		t.Error("expected partial failure flag")
	}

	failed := result.Outcomes[1]
	if failed.Status != StatusFailed {
		t.Errorf("expected failed status, got %s", failed.Status)
	}
	if failed.Error == "" {
		t.Error("failed outcome must carry the error description")
	}
	if failed.Output != nil {
		t.Error("failed outcome must not carry an output")
	}
}

func TestRun_PanicIsContained(t *testing.T) {
	stable := &stubTool{id: "stable", score: 60}
	panicky := &stubTool{id: "panicky", panicMsg: "index out of range"}
	orch := newTestOrchestrator(t, stable, panicky)

	result, err := orch.Run(context.Background(), testInput(), []string{"stable", "panicky"}, ModeParallel)
	if err != nil {
		t.Fatalf("panic must not escape Run: %v", err)
	}

	if result.Outcomes[1].Status != StatusFailed {
		t.Errorf("expected panicking tool to fail, got %s", result.Outcomes[1].Status)
	}
	if result.Outcomes[0].Status != StatusSucceeded {
		t.Errorf("panic must not affect sibling outcomes, got %s", result.Outcomes[0].Status)
	}
}

func TestRun_ToolTimeout(t *testing.T) {
	fast := &stubTool{id: "fast", score: 88}
	slow := &stubTool{id: "slow", delay: 500 * time.Millisecond, timeout: 30 * time.Millisecond}
	orch := newTestOrchestrator(t, fast, slow)

	start := time.Now()
	result, err := orch.Run(context.Background(), testInput(), []string{"fast", "slow"}, ModeParallel)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 300*time.Millisecond {
		t.Errorf("run should complete shortly after the timeout, took %s", elapsed)
	}

	if result.Outcomes[1].Status != StatusTimedOut {
		t.Errorf("expected timed_out, got %s", result.Outcomes[1].Status)
	}
	if result.TimedOut != 1 {
		t.Errorf("expected timed_out count 1, got %d", result.TimedOut)
	}
	if result.OverallScore == nil || *result.OverallScore != 88 {
		t.Errorf("expected overall from fast tool alone, got %v", result.OverallScore)
	}
}

func TestRun_UnknownToolFailsBeforeExecution(t *testing.T) {
	spy := &stubTool{id: "spy", score: 10}
	orch := newTestOrchestrator(t, spy)

	_, err := orch.Run(context.Background(), testInput(), []string{"spy", "nonexistent"}, ModeParallel)

	var unknown *UnknownToolError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownToolError, got %v", err)
	}
	if unknown.IDs[0] != "nonexistent" {
		t.Errorf("expected 'nonexistent' reported, got %v", unknown.IDs)
	}
	if spy.executions() != 0 {
		t.Error("no tool may execute when resolution fails")
	}
}

func TestRun_InvalidMode(t *testing.T) {
	orch := newTestOrchestrator(t, &stubTool{id: "a"})

	_, err := orch.Run(context.Background(), testInput(), []string{"a"}, Mode("turbo"))

	var invalid *InvalidModeError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidModeError, got %v", err)
	}
}

func TestRun_SequentialDependentSkippedAfterFailure(t *testing.T) {
	a := &stubTool{id: "a", failWith: errors.New("a broke")}
	b := &stubTool{id: "b", score: 40, dependsOn: []string{"a"}}
	orch := newTestOrchestrator(t, a, b)

	result, err := orch.Run(context.Background(), testInput(), []string{"a", "b"}, ModeSequential)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.Outcomes[1].Status != StatusSkipped {
		t.Fatalf("expected b skipped, got %s", result.Outcomes[1].Status)
	}
	if b.executions() != 0 {
		t.Error("skipped tool must never execute")
	}
	if result.Skipped != 1 {
		t.Errorf("expected skipped count 1, got %d", result.Skipped)
	}
	if result.OverallScore != nil {
		t.Errorf("no tool succeeded; overall must be nil, got %v", *result.OverallScore)
	}
}

func TestRun_SequentialRunsInDependencyOrder(t *testing.T) {
	// Requested out of dependency order on purpose
	dependent := &stubTool{id: "dependent", score: 10, dependsOn: []string{"base"}, delay: 5 * time.Millisecond}
	base := &stubTool{id: "base", score: 20, delay: 5 * time.Millisecond}
	orch := newTestOrchestrator(t, dependent, base)

	result, err := orch.Run(context.Background(), testInput(), []string{"dependent", "base"}, ModeSequential)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if !base.startedAt().Before(dependent.startedAt()) {
		t.Error("dependency must start before its dependent")
	}

	// Output stays in requested order regardless of execution order
	if result.Outcomes[0].ToolID != "dependent" || result.Outcomes[1].ToolID != "base" {
		t.Errorf("outcomes must stay in requested order, got %s, %s",
			result.Outcomes[0].ToolID, result.Outcomes[1].ToolID)
	}
}

func TestRun_MixedModeSkipsTransitively(t *testing.T) {
	a := &stubTool{id: "a", failWith: errors.New("dead")}
	b := &stubTool{id: "b", score: 10, dependsOn: []string{"a"}}
	c := &stubTool{id: "c", score: 20, dependsOn: []string{"b"}}
	free := &stubTool{id: "free", score: 90}
	orch := newTestOrchestrator(t, a, b, c, free)

	result, err := orch.Run(context.Background(), testInput(), []string{"a", "b", "c", "free"}, ModeMixed)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	statuses := map[string]Status{}
	for _, outcome := range result.Outcomes {
		statuses[outcome.ToolID] = outcome.Status
	}
	if statuses["b"] != StatusSkipped || statuses["c"] != StatusSkipped {
		t.Errorf("dependents must skip transitively: b=%s c=%s", statuses["b"], statuses["c"])
	}
	if statuses["free"] != StatusSucceeded {
		t.Errorf("independent tool must still run, got %s", statuses["free"])
	}
	if b.executions() != 0 || c.executions() != 0 {
		t.Error("skipped tools must never execute")
	}
	if result.OverallScore == nil || *result.OverallScore != 90 {
		t.Errorf("expected overall 90, got %v", result.OverallScore)
	}
}

func TestRun_ParallelOrderStableRegardlessOfCompletion(t *testing.T) {
	slow := &stubTool{id: "cta", score: 70, delay: 50 * time.Millisecond}
	fast := &stubTool{id: "readability", score: 80}
	orch := newTestOrchestrator(t, slow, fast)

	result, err := orch.Run(context.Background(), testInput(), []string{"cta", "readability"}, ModeParallel)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.Outcomes[0].ToolID != "cta" || result.Outcomes[1].ToolID != "readability" {
		t.Errorf("outcomes must follow requested order, got %s, %s",
			result.Outcomes[0].ToolID, result.Outcomes[1].ToolID)
	}
}

func TestRun_DependencyCycle(t *testing.T) {
	a := &stubTool{id: "a", dependsOn: []string{"b"}}
	b := &stubTool{id: "b", dependsOn: []string{"a"}}
	orch := newTestOrchestrator(t, a, b)

	_, err := orch.Run(context.Background(), testInput(), []string{"a", "b"}, ModeMixed)

	var cycle *DependencyCycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("expected DependencyCycleError, got %v", err)
	}
	if a.executions() != 0 || b.executions() != 0 {
		t.Error("no tool may execute when the plan is invalid")
	}
}

func TestRun_DependencyOutsideRequestIgnored(t *testing.T) {
	// brand_voice depends on readability, but readability is not requested:
	// the dependency must not gate execution.
	voice := &stubTool{id: "brand_voice", score: 65, dependsOn: []string{"readability"}}
	orch := newTestOrchestrator(t, voice, &stubTool{id: "readability", score: 50})

	result, err := orch.Run(context.Background(), testInput(), []string{"brand_voice"}, ModeSequential)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Outcomes[0].Status != StatusSucceeded {
		t.Errorf("expected success, got %s", result.Outcomes[0].Status)
	}
}

func TestRun_CallerCancellationPropagates(t *testing.T) {
	slow := &stubTool{id: "slow", score: 10, delay: 2 * time.Second}
	orch := newTestOrchestrator(t, slow)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	result, err := orch.Run(ctx, testInput(), []string{"slow"}, ModeParallel)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("cancellation must unblock the run promptly, took %s", elapsed)
	}
	if result.Outcomes[0].Status != StatusFailed {
		t.Errorf("cancelled tool should report failed, got %s", result.Outcomes[0].Status)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeParallel, false},
		{"parallel", ModeParallel, false},
		{"sequential", ModeSequential, false},
		{"mixed", ModeMixed, false},
		{"chaotic", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMode(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
