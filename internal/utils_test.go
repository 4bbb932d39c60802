package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kvesta/scanpost/config"
	"github.com/kvesta/scanpost/internal/report"
	"github.com/kvesta/scanpost/pkg/history"
	"github.com/kvesta/scanpost/pkg/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gplScan = `{"packages":[],"dependencies":[],"files":[{"path":"a.py","detected_license_expression":"GPL-3.0"}]}`

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readSummary(t *testing.T, dir string) *report.Summary {
	data, err := os.ReadFile(filepath.Join(dir, config.SummaryFile))
	require.NoError(t, err)

	s := &report.Summary{}
	require.NoError(t, json.Unmarshal(data, s))
	return s
}

func TestDoProcessProhibitedLicense(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "scan.json", gplScan)
	pol := writeFile(t, dir, "policy.json", `{"license":{"prohibited":["GPL-3.0"]}}`)

	code := DoProcess(config.Options{
		Input:          input,
		Policy:         pol,
		GenerateSbom:   true,
		SbomFormat:     "both",
		FailOnFindings: true,
	})
	assert.Equal(t, ExitFailure, code)

	s := readSummary(t, dir)
	require.Len(t, s.PolicyViolations.License, 1)
	assert.Equal(t, policy.ProhibitedLicense, s.PolicyViolations.License[0].Type)
	assert.Equal(t, "a.py", s.PolicyViolations.License[0].Path)
	assert.Empty(t, s.PolicyViolations.Vulnerabilities)
}

func TestDoProcessViolationsWithoutFailing(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "scan.json", gplScan)
	pol := writeFile(t, dir, "policy.yml", "license:\n  prohibited: [GPL-3.0]\n")

	code := DoProcess(config.Options{Input: input, Policy: pol})
	assert.Equal(t, ExitSuccess, code)
	assert.Len(t, readSummary(t, dir).PolicyViolations.License, 1)
}

func TestDoProcessNoPolicy(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "scan.json", gplScan)

	code := DoProcess(config.Options{Input: input, FailOnFindings: true})
	assert.Equal(t, ExitSuccess, code)

	s := readSummary(t, dir)
	assert.Empty(t, s.PolicyViolations.License)
	assert.Empty(t, s.PolicyViolations.Vulnerabilities)
	assert.True(t, s.Passed)
}

func TestDoProcessMalformedPolicy(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "scan.json", gplScan)
	pol := writeFile(t, dir, "policy.yml", "license: [")

	code := DoProcess(config.Options{Input: input, Policy: pol, FailOnFindings: true})
	assert.Equal(t, ExitSuccess, code)
}

func TestDoProcessSeverityCeiling(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "scan.json",
		`{"extra_data":{"vulnerabilities":[{"vulnerability_id":"VCID-1","severity":"critical","package":{"purl":"pkg:pypi/django@3.0"}}]}}`)
	pol := writeFile(t, dir, "policy.json", `{"vulnerabilities":{"maximum_severity":"high"}}`)

	p, err := Process(config.Options{Input: input, Policy: pol})
	require.NoError(t, err)

	require.Len(t, p.VulnViolations, 1)
	assert.Equal(t, policy.HighSeverityVulnerability, p.VulnViolations[0].Type)
	assert.False(t, p.Passed())
	assert.Equal(t, 1, p.Summary.Vulnerabilities.Total)
	assert.Equal(t, 1, p.Summary.Vulnerabilities.BySeverity["critical"])
}

func TestDoProcessMissingResults(t *testing.T) {
	code := DoProcess(config.Options{Input: filepath.Join(t.TempDir(), "scan.json")})
	assert.Equal(t, ExitFailure, code)
}

func TestDoProcessMalformedResults(t *testing.T) {
	input := writeFile(t, t.TempDir(), "scan.json", `{"packages": [`)

	code := DoProcess(config.Options{Input: input})
	assert.Equal(t, ExitFailure, code)
}

func TestDoProcessDirectoryInput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "results-2024-01-01.json", `{"packages":[{"name":"old"}]}`)
	writeFile(t, dir, "results-2024-06-01.json", `{"packages":[{"name":"a"},{"name":"b"}]}`)

	p, err := Process(config.Options{Input: dir})
	require.NoError(t, err)
	assert.Equal(t, 2, p.Summary.Resources.Packages)
}

func TestDoProcessEnhancesSbom(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "scan.json",
		`{"extra_data":{"vulnerabilities":[{"vulnerability_id":"VCID-1","severity":"low","package":{"purl":"pkg:pypi/django@3.0"}}]}}`)
	cdx := writeFile(t, dir, "project.cdx.json",
		`{"bomFormat":"CycloneDX","specVersion":"1.5","components":[{"name":"django","purl":"pkg:pypi/django@3.0"}]}`)

	_, err := Process(config.Options{Input: input, GenerateSbom: true, SbomFormat: "cyclonedx"})
	require.NoError(t, err)

	data, err := os.ReadFile(cdx)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"VCID-1"`)

	_, err = Process(config.Options{Input: input, GenerateSbom: false, SbomFormat: "cyclonedx"})
	require.NoError(t, err)

	again, err := os.ReadFile(cdx)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestDoProcessHistory(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "scan.json", gplScan)
	pol := writeFile(t, dir, "policy.json", `{"license":{"prohibited":["GPL-3.0"]}}`)
	store := filepath.Join(dir, "history.db")

	opts := config.Options{Input: input, Policy: pol, HistoryDB: store}

	first, err := Process(opts)
	require.NoError(t, err)
	require.NotNil(t, first.Trend)
	assert.Equal(t, "FIRST_RUN", first.Trend.Label)

	second, err := Process(opts)
	require.NoError(t, err)
	require.NotNil(t, second.Trend)
	assert.Equal(t, "SAME", second.Trend.Label)
	assert.Equal(t, 1, second.Trend.Previous)
	assert.Equal(t, 1, second.Trend.Current)

	cli := &history.Client{Store: store}
	require.NoError(t, cli.Init())
	defer cli.Close()

	latest, err := cli.QueryLatestByInput(input)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.Summary.ScanID, latest.ScanID)
	assert.Equal(t, 1, latest.LicenseViolations)
	assert.Greater(t, latest.Id, 1)
}

func TestDoProcessWithoutHistory(t *testing.T) {
	input := writeFile(t, t.TempDir(), "scan.json", gplScan)

	p, err := Process(config.Options{Input: input})
	require.NoError(t, err)
	assert.Nil(t, p.Trend)
}

func TestDoProcessMalformedSbom(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "scan.json",
		`{"extra_data":{"vulnerabilities":[{"vulnerability_id":"VCID-1","severity":"low","package":{"purl":"pkg:pypi/django@3.0"}}]}}`)
	writeFile(t, dir, "project.cdx.json", `null`)
	writeFile(t, dir, "project.spdx.json", `{"packages": [`)

	p, err := Process(config.Options{Input: input, GenerateSbom: true, SbomFormat: "both"})
	require.NoError(t, err)
	assert.Equal(t, 1, p.Summary.Vulnerabilities.Total)

	s := readSummary(t, dir)
	assert.Equal(t, p.Summary.ScanID, s.ScanID)
}

func TestDoProcessEmptyInput(t *testing.T) {
	assert.Equal(t, ExitFailure, DoProcess(config.Options{Input: ""}))
}
