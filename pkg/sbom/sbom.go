package sbom

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kvesta/scanpost/config"
	"github.com/kvesta/scanpost/pkg/scanresult"

	log "github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/json"
)

var (
	spdxPatterns      = []string{"*.spdx.json", "*.spdx"}
	cyclonedxPatterns = []string{"*.cdx.json", "*.cdx.xml"}
)

// Enhance injects vulnerability data into the SBOMs previously generated
// in dir. Every failure is logged and skipped.
func Enhance(dir, format string, vulns []scanresult.Vulnerability) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "false" {
		return
	}

	var spdx, cyclonedx bool
	switch format {
	case "spdx":
		spdx = true
	case "cyclonedx":
		cyclonedx = true
	case "both":
		spdx, cyclonedx = true, true
	default:
		log.Printf("Unknown SBOM format %s, skipping SBOM enhancement", format)
		return
	}

	log.Printf(config.Green("Begin to enhance SBOM files"))

	if spdx {
		if path := lastMatch(dir, spdxPatterns); path != "" {
			if err := EnhanceSpdx(path, vulns); err != nil {
				log.Printf("failed to enhance SPDX SBOM %s, error: %v", path, err)
			}
		} else {
			log.Printf("No SPDX SBOM found in %s", dir)
		}
	}

	if cyclonedx {
		if path := lastMatch(dir, cyclonedxPatterns); path != "" {
			if err := EnhanceCycloneDx(path, vulns); err != nil {
				log.Printf("failed to enhance CycloneDX SBOM %s, error: %v", path, err)
			}
		} else {
			log.Printf("No CycloneDX SBOM found in %s", dir)
		}
	}
}

// lastMatch walks the patterns in order and keeps the last file found.
func lastMatch(dir string, patterns []string) string {
	var found string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}

		for _, m := range matches {
			if info, err := os.Stat(m); err == nil && !info.IsDir() {
				found = m
			}
		}
	}

	return found
}

func byPurl(vulns []scanresult.Vulnerability) map[string][]scanresult.Vulnerability {
	index := map[string][]scanresult.Vulnerability{}
	for _, v := range vulns {
		if v.PURL == "" {
			continue
		}
		index[v.PURL] = append(index[v.PURL], v)
	}
	return index
}

func readDocument(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc := map[string]interface{}{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed SBOM: %w", err)
	}

	if doc == nil {
		return nil, errors.New("malformed SBOM: top level value is not an object")
	}

	return doc, nil
}

func writeDocument(path string, doc map[string]interface{}) error {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0644)
}
