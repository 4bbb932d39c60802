package sbom

import (
	"errors"
	"strings"

	"github.com/kvesta/scanpost/config"
	"github.com/kvesta/scanpost/pkg/scanresult"

	version2 "github.com/hashicorp/go-version"
	log "github.com/sirupsen/logrus"
)

const ratingMethod = "VulnerableCode"

// CycloneDX gained the top level vulnerabilities array in 1.4.
var minVulnerabilitySpec = version2.Must(version2.NewVersion("1.4"))

// EnhanceCycloneDx appends a vulnerabilities entry for every component whose
// purl matches. XML documents are left untouched.
func EnhanceCycloneDx(path string, vulns []scanresult.Vulnerability) error {
	if strings.HasSuffix(path, ".xml") {
		log.Printf("CycloneDX XML %s is not supported, skipping", path)
		return nil
	}

	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	checkSpecVersion(path, doc)

	components, ok := doc["components"].([]interface{})
	if !ok {
		if _, exists := doc["components"]; exists {
			return errors.New("components is not a list")
		}
		components = []interface{}{}
	}

	entries, ok := doc["vulnerabilities"].([]interface{})
	if !ok {
		if existing, exists := doc["vulnerabilities"]; exists && existing != nil {
			return errors.New("vulnerabilities is not a list")
		}
		entries = []interface{}{}
	}

	index := byPurl(vulns)
	added := 0

	for _, c := range components {
		component, ok := c.(map[string]interface{})
		if !ok {
			continue
		}

		purl, _ := component["purl"].(string)
		if purl == "" {
			continue
		}

		for _, v := range index[purl] {
			entries = append(entries, map[string]interface{}{
				"id": v.ID,
				"ratings": []interface{}{
					map[string]interface{}{
						"severity": strings.ToUpper(v.Severity),
						"method":   ratingMethod,
					},
				},
				"affects": []interface{}{
					map[string]interface{}{"ref": purl},
				},
			})
			added++
		}
	}

	doc["vulnerabilities"] = entries

	if err := writeDocument(path, doc); err != nil {
		return err
	}

	log.Printf("Enhanced CycloneDX SBOM %s with %s vulnerabilities", config.Yellow(path), config.Yellow(added))
	return nil
}

func checkSpecVersion(path string, doc map[string]interface{}) {
	spec, _ := doc["specVersion"].(string)
	if spec == "" {
		return
	}

	current, err := version2.NewVersion(spec)
	if err != nil {
		log.Debugf("Cannot parse specVersion %q of %s", spec, path)
		return
	}

	if current.LessThan(minVulnerabilitySpec) {
		log.Warnf("CycloneDX %s uses specVersion %s, vulnerabilities require %s or later",
			path, spec, minVulnerabilitySpec)
	}
}
