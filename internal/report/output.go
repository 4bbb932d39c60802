package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/kvesta/scanpost/config"
	"github.com/kvesta/scanpost/pkg/policy"

	"github.com/olekukonko/tablewriter"
)

// ResolveSummary prints the summary of a run to stdout.
func ResolveSummary(s *Summary) {
	writeSummary(os.Stdout, s)
}

func writeSummary(w io.Writer, s *Summary) {
	fmt.Fprintf(w, "\nScanned %s packages, %s dependencies, %s files\n",
		config.Yellow(s.Resources.Packages),
		config.Yellow(s.Resources.Dependencies),
		config.Yellow(s.Resources.Files))

	by := s.Vulnerabilities.BySeverity
	fmt.Fprintf(w, "\nDetected %s vulnerabilities | "+
		"Critical: %s High: %s Medium: %s Low: %s\n",
		config.Yellow(s.Vulnerabilities.Total),
		config.Red(by["critical"]),
		config.Pink(by["high"]),
		config.Yellow(by["medium"]),
		config.Green(by["low"]))

	if s.ViolationCount() == 0 {
		fmt.Fprintf(w, "\n%s\n", config.Green("No policy violations found"))
		return
	}

	fmt.Fprintf(w, "\n%s\n", config.Red(fmt.Sprintf("Policy violations detected: %d", s.ViolationCount())))

	if len(s.PolicyViolations.License) > 0 {
		fmt.Fprintf(w, "\nLicense:\n")
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"ID", "Type", "Path", "License", "Description"})
		table.SetRowLine(true)
		table.SetAutoMergeCellsByColumnIndex([]int{2})

		for i, v := range s.PolicyViolations.License {
			table.Append([]string{strconv.Itoa(i + 1), v.Type, v.Path, v.License, v.Message})
		}
		table.Render()
	}

	if len(s.PolicyViolations.Vulnerabilities) > 0 {
		fmt.Fprintf(w, "\nVulnerabilities:\n")

		vulns := make([]policy.Violation, len(s.PolicyViolations.Vulnerabilities))
		copy(vulns, s.PolicyViolations.Vulnerabilities)
		sortSeverity(vulns)

		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"ID", "Type", "Vulnerability", "Package", "Level", "Description"})
		table.SetRowLine(true)

		for i, v := range vulns {
			table.Append([]string{strconv.Itoa(i + 1), v.Type, v.VulnerabilityID, v.PURL,
				judgeSeverity(v.Severity), v.Message})
		}
		table.Render()
	}
}

// ResolveResult prints the final verdict of a run.
func ResolveResult(passed, failOnFindings bool) {
	switch {
	case passed:
		fmt.Printf("\n%s\n", config.Green("Processing completed successfully"))
	case failOnFindings:
		fmt.Printf("\n%s\n", config.Red("Workflow failed due to policy violations"))
	default:
		fmt.Printf("\n%s\n", config.Yellow("Policy violations found, but continuing as fail-on-findings is disabled"))
	}
}

func sortSeverity(vs []policy.Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		return policy.SeverityLevel(vs[i].Severity) > policy.SeverityLevel(vs[j].Severity)
	})
}

func judgeSeverity(severity string) string {
	switch strings.ToLower(severity) {
	case "critical":
		return config.Red(strings.ToUpper(severity))
	case "high":
		return config.Pink(strings.ToUpper(severity))
	case "medium":
		return config.Yellow(strings.ToUpper(severity))
	case "low":
		return config.Green(strings.ToUpper(severity))
	case "":
		return "-"
	}

	return strings.ToUpper(severity)
}
