package scanresult

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const resultsPattern = "results-*.json"

// Locate resolves the results file named by input. An existing file is used
// as is. A directory, or a path that does not exist, is searched for the
// lexicographically last results-*.json.
func Locate(input string) (string, error) {
	if input == "" {
		return "", &InputError{Path: input, Err: errors.New("no results path given")}
	}

	dir := input

	info, err := os.Stat(input)
	switch {
	case err == nil && !info.IsDir():
		return input, nil
	case err == nil:
		// directory, search inside it
	case os.IsNotExist(err):
		dir = filepath.Dir(input)
	default:
		return "", &InputError{Path: input, Err: err}
	}

	matches, err := filepath.Glob(filepath.Join(dir, resultsPattern))
	if err != nil {
		return "", &InputError{Path: input, Err: err}
	}

	if len(matches) < 1 {
		return "", &InputError{
			Path: input,
			Err:  fmt.Errorf("no %s found in %s", resultsPattern, dir),
		}
	}

	sort.Strings(matches)
	found := matches[len(matches)-1]
	log.Debugf("Using results file %s", found)

	return found, nil
}

// Load reads and validates a scan results document.
func Load(path string) (*ScanResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}

	if !gjson.ValidBytes(data) {
		return nil, &InputError{Path: path, Err: errors.New("malformed JSON")}
	}

	if !gjson.ParseBytes(data).IsObject() {
		return nil, &InputError{Path: path, Err: errors.New("top level value is not an object")}
	}

	return &ScanResult{Path: path, Raw: data}, nil
}
