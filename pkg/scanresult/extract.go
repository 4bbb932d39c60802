package scanresult

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Resources projects the packages, dependencies and files sections.
// Missing sections give empty slices.
func (s *ScanResult) Resources() ResourceBucket {
	bucket := ResourceBucket{
		Packages:     []Resource{},
		Dependencies: []Resource{},
		Files:        []FileRecord{},
	}

	for _, item := range s.array("packages") {
		bucket.Packages = append(bucket.Packages, Resource(toMap(item)))
	}

	for _, item := range s.array("dependencies") {
		bucket.Dependencies = append(bucket.Dependencies, Resource(toMap(item)))
	}

	for _, item := range s.array("files") {
		bucket.Files = append(bucket.Files, FileRecord(toMap(item)))
	}

	return bucket
}

// Vulnerabilities reads extra_data.vulnerabilities.
func (s *ScanResult) Vulnerabilities() []Vulnerability {
	vulns := []Vulnerability{}

	for _, item := range s.array("extra_data.vulnerabilities") {
		patchable := true
		if p := item.Get("is_patchable"); p.Exists() && p.Type != gjson.Null {
			patchable = p.Bool()
		}

		vulns = append(vulns, Vulnerability{
			ID:          item.Get("vulnerability_id").String(),
			Severity:    strings.TrimSpace(item.Get("severity").String()),
			PURL:        item.Get("package.purl").String(),
			IsPatchable: patchable,
		})
	}

	return vulns
}

func (s *ScanResult) array(path string) []gjson.Result {
	value := gjson.GetBytes(s.Raw, path)
	if !value.IsArray() {
		return nil
	}

	return value.Array()
}

func toMap(r gjson.Result) map[string]interface{} {
	m, ok := r.Value().(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}

	return m
}
