package rules

// PlatformLimits describes one ad platform's copy conventions: hard length
// limits and the tone the platform's audience expects. Limits are in
// characters.
type PlatformLimits struct {
	DisplayName string `yaml:"display_name" json:"display_name"`
	HeadlineMax int    `yaml:"headline_max" json:"headline_max"`
	BodyMax     int    `yaml:"body_max" json:"body_max"`
	CTAMax      int    `yaml:"cta_max" json:"cta_max"`
	// Tone is the register the platform favors (conversational,
	// professional, energetic).
	Tone string `yaml:"tone" json:"tone"`
	// HashtagFriendly marks platforms where hashtags help rather than hurt.
	HashtagFriendly bool `yaml:"hashtag_friendly" json:"hashtag_friendly"`
}

// ComplianceCategory groups prohibited or risky phrases under one policy
// concern. Penalty is subtracted from the compliance score per distinct
// flagged phrase.
type ComplianceCategory struct {
	Name     string   `yaml:"name" json:"name"`
	Severity string   `yaml:"severity" json:"severity"` // high | medium | low
	Penalty  float64  `yaml:"penalty" json:"penalty"`
	Advice   string   `yaml:"advice" json:"advice"`
	Phrases  []string `yaml:"phrases" json:"phrases"`
	// Industries restricts the category to specific industries; empty means
	// it applies to all copy.
	Industries []string `yaml:"industries,omitempty" json:"industries,omitempty"`
}

type platformsFile struct {
	Platforms map[string]PlatformLimits `yaml:"platforms"`
}

type complianceFile struct {
	Categories []ComplianceCategory `yaml:"categories"`
}
