package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kvesta/scanpost/config"

	log "github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/json"
)

func exists(path string) bool {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsExist(err) {
			return true
		}

		return false
	}
	return true
}

// SummaryToJson writes the summary as scan-summary.json inside dir.
func SummaryToJson(dir string, s *Summary) (string, error) {
	if !exists(dir) {
		err := os.MkdirAll(dir, os.FileMode(0755))
		if err != nil {
			return "", err
		}
	}

	filename := filepath.Join(dir, config.SummaryFile)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}

	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return "", err
	}

	fmt.Printf("\n")
	log.Printf("Summary file is saved in: %s", config.Yellow(filename))

	return filename, nil
}
