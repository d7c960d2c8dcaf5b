package tools

import (
	"adalyze/internal/analysis"
	"adalyze/internal/analysis/rules"
)

// RegisterAnalysisTools registers every built-in analysis tool with the
// given registry. Called once by startup code; registration is explicit so
// the available tool set never depends on import order.
//
// Parameters:
//   - registry: the tool registry to populate
//   - rulesets: the embedded ruleset registry (platform limits, compliance phrases)
//   - cfg: shared tool knobs; nil selects DefaultToolConfig
func RegisterAnalysisTools(registry *analysis.Registry, rulesets *rules.Registry, cfg *ToolConfig) error {
	if cfg == nil {
		cfg = DefaultToolConfig()
	}

	toolset := []analysis.Tool{
		NewReadabilityTool(cfg),
		NewCTATool(cfg, rulesets),
		NewPersuasionTool(cfg),
		NewComplianceTool(cfg, rulesets),
		NewBrandVoiceTool(cfg),
		NewPlatformFitTool(cfg, rulesets),
	}

	for _, tool := range toolset {
		if err := registry.Register(tool); err != nil {
			return err
		}
	}
	return nil
}
