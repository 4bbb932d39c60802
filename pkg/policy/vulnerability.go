package policy

import (
	"fmt"
	"strings"

	"github.com/kvesta/scanpost/pkg/scanresult"
)

// CheckVulnerabilities evaluates the vulnerabilities section of p.
// A single vulnerability may produce both violation types.
func CheckVulnerabilities(vulns []scanresult.Vulnerability, p *Policy) (bool, []Violation) {
	violations := []Violation{}

	if p == nil || p.Vulnerabilities == nil {
		return true, violations
	}

	rule := p.Vulnerabilities
	maxSeverity := rule.MaximumSeverity
	if maxSeverity == "" {
		maxSeverity = "critical"
	}
	ceiling := CeilingLevel(maxSeverity)

	for _, v := range vulns {
		severity := strings.ToLower(v.Severity)

		if SeverityLevel(severity) > ceiling {
			violations = append(violations, Violation{
				Type: HighSeverityVulnerability,
				Message: fmt.Sprintf("Vulnerability %s has severity '%s' which exceeds allowed maximum '%s'",
					v.ID, severity, maxSeverity),
				VulnerabilityID: v.ID,
				Severity:        severity,
				MaximumSeverity: maxSeverity,
				PURL:            v.PURL,
			})
		}

		if rule.FailOnUnpatchable && !v.IsPatchable {
			violations = append(violations, Violation{
				Type:            UnpatchableVulnerability,
				Message:         fmt.Sprintf("Vulnerability %s in %s has no available patch", v.ID, v.PURL),
				VulnerabilityID: v.ID,
				Severity:        severity,
				PURL:            v.PURL,
			})
		}
	}

	return len(violations) == 0, violations
}
