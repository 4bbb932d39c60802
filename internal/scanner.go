package internal

import (
	"github.com/kvesta/scanpost/internal/report"
	"github.com/kvesta/scanpost/pkg/history"
	"github.com/kvesta/scanpost/pkg/policy"
	"github.com/kvesta/scanpost/pkg/scanresult"
)

// Processor holds the documents of a single run.
type Processor struct {
	Result *scanresult.ScanResult
	Policy *policy.Policy

	Resources       scanresult.ResourceBucket
	Vulnerabilities []scanresult.Vulnerability

	LicensePassed     bool
	LicenseViolations []policy.Violation
	VulnPassed        bool
	VulnViolations    []policy.Violation

	Summary *report.Summary
	// Trend is set when the run was recorded in a history database.
	Trend *history.Trend
}

// Passed is the combined verdict of both policy checks.
func (p *Processor) Passed() bool {
	return p.LicensePassed && p.VulnPassed
}
