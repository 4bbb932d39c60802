package policy

import (
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Policy struct {
	License         *LicensePolicy       `yaml:"license" json:"license,omitempty"`
	Vulnerabilities *VulnerabilityPolicy `yaml:"vulnerabilities" json:"vulnerabilities,omitempty"`
}

type LicensePolicy struct {
	Allowed             []string `yaml:"allowed" json:"allowed"`
	Prohibited          []string `yaml:"prohibited" json:"prohibited"`
	MinimumClarityScore float64  `yaml:"minimum_clarity_score" json:"minimum_clarity_score"`
}

type VulnerabilityPolicy struct {
	MaximumSeverity   string `yaml:"maximum_severity" json:"maximum_severity"`
	FailOnUnpatchable bool   `yaml:"fail_on_unpatchable" json:"fail_on_unpatchable"`
}

// Load reads a YAML or JSON policy. A missing, empty or unreadable policy
// yields nil, which every check treats as "always pass".
func Load(path string) *Policy {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Policy file %s not found, skipping policy checks", path)
		} else {
			log.Printf("failed to read policy %s, error: %v", path, err)
		}
		return nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.Printf("failed to parse policy %s, error: %v", path, err)
		return nil
	}

	if len(doc.Content) < 1 {
		log.Printf("Policy file %s is empty, skipping policy checks", path)
		return nil
	}

	if doc.Content[0].Kind != yaml.MappingNode {
		log.Printf("Policy file %s is not a mapping, skipping policy checks", path)
		return nil
	}

	p := &Policy{}
	if err := doc.Content[0].Decode(p); err != nil {
		log.Printf("failed to decode policy %s, error: %v", path, err)
		return nil
	}

	return p
}
