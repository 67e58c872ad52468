package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TemplateProfile is a named destination-layout template.
type TemplateProfile struct {
	Name        string `yaml:"name"`
	Template    string `yaml:"template"`
	Description string `yaml:"description,omitempty"`
}

type profileFile struct {
	Profiles []TemplateProfile `yaml:"profiles"`
}

// LoadTemplateProfiles reads a YAML profile file. A missing file is not an
// error; the built-in templates still apply.
func LoadTemplateProfiles(path string) (map[string]TemplateProfile, error) {
	profiles := make(map[string]TemplateProfile)
	if path == "" {
		return profiles, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return profiles, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}

	var parsed profileFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file %s: %w", path, err)
	}
	for _, p := range parsed.Profiles {
		if p.Name == "" || p.Template == "" {
			return nil, fmt.Errorf("profile entries need both a name and a template (got name=%q)", p.Name)
		}
		profiles[p.Name] = p
	}
	return profiles, nil
}
