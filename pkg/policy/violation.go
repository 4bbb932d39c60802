package policy

const (
	ProhibitedLicense         = "prohibited_license"
	DisallowedLicense         = "disallowed_license"
	LowClarityScore           = "low_clarity_score"
	HighSeverityVulnerability = "high_severity_vulnerability"
	UnpatchableVulnerability  = "unpatchable_vulnerability"
)

// Violation is one policy finding. Only the context fields relevant to
// Type are set.
type Violation struct {
	Type    string `json:"type"`
	Message string `json:"message"`

	Path      string   `json:"path,omitempty"`
	License   string   `json:"license,omitempty"`
	Score     *float64 `json:"score,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`

	VulnerabilityID string `json:"vulnerability_id,omitempty"`
	Severity        string `json:"severity,omitempty"`
	MaximumSeverity string `json:"maximum_severity,omitempty"`
	PURL            string `json:"purl,omitempty"`
}
