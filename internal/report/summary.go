package report

import (
	"strings"
	"time"

	"github.com/kvesta/scanpost/pkg/policy"
	"github.com/kvesta/scanpost/pkg/scanresult"

	"github.com/google/uuid"
)

type Summary struct {
	ScanID           string              `json:"scan_id"`
	GeneratedAt      string              `json:"generated_at"`
	Passed           bool                `json:"passed"`
	Resources        ResourceCounts      `json:"resources"`
	Vulnerabilities  VulnerabilityCounts `json:"vulnerabilities"`
	PolicyViolations PolicyViolations    `json:"policy_violations"`
}

type ResourceCounts struct {
	Packages     int `json:"packages"`
	Dependencies int `json:"dependencies"`
	Files        int `json:"files"`
}

type VulnerabilityCounts struct {
	Total      int            `json:"total"`
	BySeverity map[string]int `json:"by_severity"`
}

type PolicyViolations struct {
	License         []policy.Violation `json:"license"`
	Vulnerabilities []policy.Violation `json:"vulnerabilities"`
}

// BuildSummary aggregates counts and embeds both violation lists as given.
func BuildSummary(resources scanresult.ResourceBucket, vulns []scanresult.Vulnerability,
	licenseViolations, vulnViolations []policy.Violation) *Summary {

	bySeverity := map[string]int{}
	for _, v := range vulns {
		severity := strings.ToLower(v.Severity)
		if severity == "" {
			severity = "unknown"
		}
		bySeverity[severity] += 1
	}

	if licenseViolations == nil {
		licenseViolations = []policy.Violation{}
	}
	if vulnViolations == nil {
		vulnViolations = []policy.Violation{}
	}

	return &Summary{
		ScanID:      uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Passed:      len(licenseViolations) == 0 && len(vulnViolations) == 0,
		Resources: ResourceCounts{
			Packages:     len(resources.Packages),
			Dependencies: len(resources.Dependencies),
			Files:        len(resources.Files),
		},
		Vulnerabilities: VulnerabilityCounts{
			Total:      len(vulns),
			BySeverity: bySeverity,
		},
		PolicyViolations: PolicyViolations{
			License:         licenseViolations,
			Vulnerabilities: vulnViolations,
		},
	}
}

// ViolationCount is the number of license and vulnerability violations.
func (s *Summary) ViolationCount() int {
	return len(s.PolicyViolations.License) + len(s.PolicyViolations.Vulnerabilities)
}
