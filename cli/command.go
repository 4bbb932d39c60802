package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/kvesta/scanpost/config"
	"github.com/kvesta/scanpost/internal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const versions = "scanpost v0.1.0"

var (
	rootCmd = &cobra.Command{
		Use:   "scanpost --input <results> [OPTIONS]",
		Short: "Scan results policy checks and SBOM enhancement",
		Long: `Scanpost post-processes the JSON results of a ScanCode scan: it checks
licenses and vulnerabilities against a policy, annotates existing SBOMs
with the detected vulnerabilities and writes scan-summary.json.

Examples:
  # Check the results against a policy
  $ scanpost --input output/results-2024-01-01.json --policy policy.yml

  # Use the latest results-*.json of a directory and fail on violations
  $ scanpost --input output/ --policy policy.yml --fail-on-findings true

  # Only annotate the CycloneDX SBOM
  $ scanpost --input output/ --sbom-format cyclonedx`,
		Args:          NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := config.Options{
				Input:          input,
				Policy:         policyFile,
				GenerateSbom:   isTrue(generateSbom),
				SbomFormat:     sbomFormat,
				FailOnFindings: isTrue(failOnFindings),
				HistoryDB:      historyDB,
				Debug:          debug,
				NoColor:        noColor,
			}

			config.InitLogger(opts.Debug)
			if opts.NoColor {
				color.NoColor = true
			}

			if code := internal.DoProcess(opts); code != internal.ExitSuccess {
				os.Exit(code)
			}

			return nil
		},
	}

	input          string
	policyFile     string
	generateSbom   string
	sbomFormat     string
	failOnFindings string
	historyDB      string
	debug          bool
	noColor        bool
)

func Execute() error {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information and quit",
		Args:  NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(versions)
		},
	}

	rootCmd.Flags().StringVar(&input, "input", "", "path of the scan results file, or a directory holding results-*.json")
	rootCmd.Flags().StringVar(&policyFile, "policy", "", "path of the YAML or JSON policy file")
	rootCmd.Flags().StringVar(&generateSbom, "generate-sbom", "true", "enhance existing SBOMs with vulnerabilities (true|false)")
	rootCmd.Flags().StringVar(&sbomFormat, "sbom-format", "both", "SBOM format to enhance (spdx|cyclonedx|both)")
	rootCmd.Flags().StringVar(&failOnFindings, "fail-on-findings", "false", "exit with status 1 on policy violations (true|false)")
	rootCmd.Flags().StringVar(&historyDB, "history-db", "", "record the run in this SQLite database")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logs")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	_ = rootCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(versionCmd)
	return rootCmd.Execute()
}

func isTrue(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}
