package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultOutputTemplate names the report file after the participating hosts
// and the generation time. It is rendered with sprig template functions.
const DefaultOutputTemplate = `report-{{join "-" .Hostnames}}-{{date "20060102-150405" .Timestamp}}.md`

// Profile describes how to reach the local appliance and where the report
// goes. Credentials may be left empty, in which case they are prompted for.
type Profile struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port,omitempty"`
	Scheme         string `yaml:"scheme,omitempty"`
	Username       string `yaml:"username,omitempty"`
	Password       string `yaml:"password,omitempty"`
	Insecure       bool   `yaml:"insecure,omitempty"`
	OutputTemplate string `yaml:"outputTemplate,omitempty"`
	// FetchLimit overrides the server-side default page limit on list
	// requests so large collections are not silently truncated.
	FetchLimit int `yaml:"fetchLimit,omitempty"`
}

// DefaultProfile returns the profile used when no profile file exists.
func DefaultProfile() Profile {
	return Profile{
		Host:           "localhost",
		Port:           8443,
		Scheme:         "https",
		OutputTemplate: DefaultOutputTemplate,
		FetchLimit:     8192,
	}
}

// LoadProfile reads the profile file, falling back to defaults when the file
// does not exist. A present-but-malformed file is an error.
func LoadProfile(path string) (Profile, error) {
	profile := DefaultProfile()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return profile, nil
		}
		return Profile{}, fmt.Errorf("reading profile %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return Profile{}, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	if profile.OutputTemplate == "" {
		profile.OutputTemplate = DefaultOutputTemplate
	}
	if profile.FetchLimit <= 0 {
		profile.FetchLimit = 8192
	}
	return profile, nil
}
