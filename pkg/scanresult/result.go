package scanresult

import "fmt"

// ScanResult is the raw scanner document. It is never mutated.
type ScanResult struct {
	Path string
	Raw  []byte
}

// Resource is an opaque package or dependency entry.
type Resource map[string]interface{}

type ResourceBucket struct {
	Packages     []Resource   `json:"packages"`
	Dependencies []Resource   `json:"dependencies"`
	Files        []FileRecord `json:"files"`
}

// FileRecord wraps one entry of the "files" section.
type FileRecord map[string]interface{}

type Vulnerability struct {
	ID          string `json:"vulnerability_id"`
	Severity    string `json:"severity"`
	PURL        string `json:"purl"`
	IsPatchable bool   `json:"is_patchable"`
}

// InputError reports a results file that cannot be used at all.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("cannot load scan results %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Path returns the file path, or "" when absent.
func (f FileRecord) Path() string {
	s, _ := f["path"].(string)
	return s
}

func (f FileRecord) DetectedLicenseExpression() string {
	s, _ := f["detected_license_expression"].(string)
	return s
}

// ClarityScores lists license_detections[*].matches[*].score in document
// order. Matches without a numeric score are skipped.
func (f FileRecord) ClarityScores() []float64 {
	scores := []float64{}

	detections, _ := f["license_detections"].([]interface{})
	for _, d := range detections {
		detection, ok := d.(map[string]interface{})
		if !ok {
			continue
		}

		matches, _ := detection["matches"].([]interface{})
		for _, m := range matches {
			match, ok := m.(map[string]interface{})
			if !ok {
				continue
			}

			if score, ok := toFloat(match["score"]); ok {
				scores = append(scores, score)
			}
		}
	}

	return scores
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
