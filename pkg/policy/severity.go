package policy

import (
	"strings"

	"github.com/kvesta/scanpost/config"
)

// SeverityLevel ranks a vulnerability severity. Unknown values rank as none.
func SeverityLevel(severity string) int {
	return config.SeverityMap[strings.ToLower(strings.TrimSpace(severity))]
}

// CeilingLevel ranks a configured maximum severity. An empty or unknown
// ceiling is the most permissive one, critical.
func CeilingLevel(severity string) int {
	level, ok := config.SeverityMap[strings.ToLower(strings.TrimSpace(severity))]
	if !ok {
		return config.SeverityMap["critical"]
	}

	return level
}
