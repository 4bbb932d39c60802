package internal

import (
	"fmt"
	"path/filepath"

	"github.com/kvesta/scanpost/config"
	"github.com/kvesta/scanpost/internal/report"
	"github.com/kvesta/scanpost/pkg/history"
	"github.com/kvesta/scanpost/pkg/policy"
	"github.com/kvesta/scanpost/pkg/sbom"
	"github.com/kvesta/scanpost/pkg/scanresult"

	log "github.com/sirupsen/logrus"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

// DoProcess runs the whole pipeline and returns the process exit code.
func DoProcess(opts config.Options) int {
	p, err := Process(opts)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return ExitFailure
	}

	report.ResolveResult(p.Passed(), opts.FailOnFindings)

	if !p.Passed() && opts.FailOnFindings {
		return ExitFailure
	}

	return ExitSuccess
}

// Process loads, evaluates and reports a single results file. Only a results
// file that cannot be located or loaded is returned as an error.
func Process(opts config.Options) (*Processor, error) {
	log.Printf(config.Green("Begin to process scan results"))

	path, err := scanresult.Locate(opts.Input)
	if err != nil {
		return nil, err
	}

	result, err := scanresult.Load(path)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded scan results from %s", config.Yellow(path))

	p := &Processor{
		Result: result,
		Policy: policy.Load(opts.Policy),
	}

	p.Resources = result.Resources()
	p.Vulnerabilities = result.Vulnerabilities()

	p.LicensePassed, p.LicenseViolations = policy.CheckLicense(p.Resources, p.Policy)
	p.VulnPassed, p.VulnViolations = policy.CheckVulnerabilities(p.Vulnerabilities, p.Policy)

	outputDir := filepath.Dir(path)

	format := opts.SbomFormat
	if !opts.GenerateSbom {
		format = "false"
	}
	sbom.Enhance(outputDir, format, p.Vulnerabilities)

	p.Summary = report.BuildSummary(p.Resources, p.Vulnerabilities, p.LicenseViolations, p.VulnViolations)

	if _, err := report.SummaryToJson(outputDir, p.Summary); err != nil {
		log.Printf("saving error %v", err)
	}

	report.ResolveSummary(p.Summary)

	if opts.HistoryDB != "" {
		trend, err := history.Record(opts.HistoryDB, path, p.Summary)
		if err != nil {
			log.Printf("history error %v", err)
		} else {
			p.Trend = &trend
			fmt.Printf("\nTrend: %s\n", trend)
		}
	}

	return p, nil
}
