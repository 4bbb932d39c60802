package sbom

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kvesta/scanpost/config"
	"github.com/kvesta/scanpost/pkg/scanresult"

	log "github.com/sirupsen/logrus"
)

const annotationSecurity = "SECURITY"

// EnhanceSpdx appends one SECURITY annotation per matching vulnerability to
// every package of a JSON SPDX document. Existing annotations are kept, so
// running it twice duplicates them.
func EnhanceSpdx(path string, vulns []scanresult.Vulnerability) error {
	if !strings.HasSuffix(path, ".json") {
		log.Printf("Tag-value SPDX %s is not supported, skipping", path)
		return nil
	}

	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	packs, ok := doc["packages"].([]interface{})
	if !ok {
		if _, exists := doc["packages"]; exists {
			return errors.New("packages is not a list")
		}
		packs = []interface{}{}
	}

	index := byPurl(vulns)
	now := time.Now().UTC().Format(time.RFC3339)
	added := 0

	for _, p := range packs {
		pack, ok := p.(map[string]interface{})
		if !ok {
			continue
		}

		purl := spdxPurl(pack)
		if purl == "" {
			continue
		}

		matched := index[purl]
		if len(matched) < 1 {
			continue
		}

		annotations, ok := pack["annotations"].([]interface{})
		if existing, exists := pack["annotations"]; !ok && exists && existing != nil {
			return fmt.Errorf("annotations of package %s is not a list", purl)
		}

		for _, v := range matched {
			annotations = append(annotations, map[string]interface{}{
				"annotationDate": now,
				"annotationType": annotationSecurity,
				"annotator":      "Tool: " + config.ToolName,
				"comment":        fmt.Sprintf("Vulnerability: %s, Severity: %s", v.ID, v.Severity),
			})
			added++
		}
		pack["annotations"] = annotations
	}

	if err := writeDocument(path, doc); err != nil {
		return err
	}

	log.Printf("Enhanced SPDX SBOM %s with %s annotations", config.Yellow(path), config.Yellow(added))
	return nil
}

// spdxPurl reads the locator of the first external reference.
func spdxPurl(pack map[string]interface{}) string {
	refs, _ := pack["externalRefs"].([]interface{})
	if len(refs) < 1 {
		return ""
	}

	ref, ok := refs[0].(map[string]interface{})
	if !ok {
		return ""
	}

	locator, _ := ref["referenceLocator"].(string)
	return locator
}
