package history

import (
	"fmt"

	"github.com/kvesta/scanpost/config"
	"github.com/kvesta/scanpost/internal/report"

	log "github.com/sirupsen/logrus"
)

// Trend compares a run with the previous run of the same input.
type Trend struct {
	Previous int
	Current  int
	Delta    int
	Label    string // IMPROVING / DECLINING / SAME / FIRST_RUN
}

// Record stores the summary of a run on input and reports the trend
// against the last run recorded for the same input.
func Record(store, input string, s *report.Summary) (Trend, error) {
	cli := &Client{Store: store}
	if err := cli.Init(); err != nil {
		return Trend{}, err
	}
	defer cli.Close()

	prev, err := cli.QueryLatestByInput(input)
	if err != nil {
		return Trend{}, fmt.Errorf("query previous run: %w", err)
	}

	row := &DBRow{
		ScanID:            s.ScanID,
		Input:             input,
		Timestamp:         s.GeneratedAt,
		Packages:          s.Resources.Packages,
		Dependencies:      s.Resources.Dependencies,
		Files:             s.Resources.Files,
		Vulnerabilities:   s.Vulnerabilities.Total,
		LicenseViolations: len(s.PolicyViolations.License),
		VulnViolations:    len(s.PolicyViolations.Vulnerabilities),
		Passed:            s.Passed,
	}

	if err := cli.insert(row); err != nil {
		return Trend{}, fmt.Errorf("record run: %w", err)
	}

	tr := Trend{Previous: -1, Current: row.Violations(), Label: "FIRST_RUN"}

	if prev != nil {
		tr.Previous = prev.Violations()
		tr.Delta = tr.Current - tr.Previous

		switch {
		case tr.Delta < 0:
			tr.Label = "IMPROVING"
		case tr.Delta > 0:
			tr.Label = "DECLINING"
		default:
			tr.Label = "SAME"
		}
	}

	log.Debugf("Recorded run %s in %s", s.ScanID, store)
	return tr, nil
}

func (tr Trend) String() string {
	if tr.Label == "FIRST_RUN" {
		return fmt.Sprintf("first recorded run, %d violations", tr.Current)
	}

	label := tr.Label
	switch tr.Label {
	case "IMPROVING":
		label = config.Green(label)
	case "DECLINING":
		label = config.Red(label)
	}

	return fmt.Sprintf("%s: %d violations, previously %d (%+d)", label, tr.Current, tr.Previous, tr.Delta)
}
