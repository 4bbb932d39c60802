package policy

import (
	"fmt"

	"github.com/kvesta/scanpost/pkg/scanresult"
)

// CheckLicense evaluates the license section of p against the files
// of the scan.
func CheckLicense(resources scanresult.ResourceBucket, p *Policy) (bool, []Violation) {
	violations := []Violation{}

	if p == nil || p.License == nil {
		return true, violations
	}

	rule := p.License
	prohibited := toSet(rule.Prohibited)
	allowed := toSet(rule.Allowed)

	for _, f := range resources.Files {
		expression := f.DetectedLicenseExpression()
		if expression == "" {
			continue
		}

		path := f.Path()

		if prohibited[expression] {
			violations = append(violations, Violation{
				Type:    ProhibitedLicense,
				Message: fmt.Sprintf("Prohibited license '%s' found in %s", expression, path),
				Path:    path,
				License: expression,
			})
		}

		if len(allowed) > 0 && !allowed[expression] {
			violations = append(violations, Violation{
				Type:    DisallowedLicense,
				Message: fmt.Sprintf("License '%s' in %s is not in the allowed list", expression, path),
				Path:    path,
				License: expression,
			})
		}

		for _, score := range f.ClarityScores() {
			if score >= rule.MinimumClarityScore {
				continue
			}

			score, threshold := score, rule.MinimumClarityScore
			violations = append(violations, Violation{
				Type: LowClarityScore,
				Message: fmt.Sprintf("License detection in %s has clarity score %.1f below minimum %.1f",
					path, score, threshold),
				Path:      path,
				License:   expression,
				Score:     &score,
				Threshold: &threshold,
			})
		}
	}

	return len(violations) == 0, violations
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
