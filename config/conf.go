package config

import (
	"os"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
)

var (
	Yellow = color.New(color.FgYellow).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Pink   = color.New(color.FgMagenta).SprintFunc()

	// SeverityMap is the total order used by every severity comparison.
	SeverityMap = map[string]int{
		"critical": 4,
		"high":     3,
		"medium":   2,
		"low":      1,
		"none":     0,
	}
)

const (
	SummaryFile = "scan-summary.json"
	ToolName    = "scanpost"
)

// Options carries the command line values through the whole pipeline.
type Options struct {
	Input          string
	Policy         string
	GenerateSbom   bool
	SbomFormat     string
	FailOnFindings bool
	HistoryDB      string
	Debug          bool
	NoColor        bool
}

func InitLogger(debug bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05",
	})

	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}
