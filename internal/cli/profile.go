package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Profile holds CLI defaults; flags override every field.
type Profile struct {
	FunctionsURL string `yaml:"functions_url"`
	APIKey       string `yaml:"api_key"`
	Language     string `yaml:"language"`
	DownloadDir  string `yaml:"download_dir"`
}

func defaultProfile() Profile {
	return Profile{FunctionsURL: "http://localhost:8082"}
}

// DefaultProfilePath is <user config dir>/contentgen/profile.yaml.
func DefaultProfilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "contentgen", "profile.yaml")
}

// LoadProfile reads path over the defaults. A missing file is an error only
// when explicit is set.
func LoadProfile(path string, explicit bool) (Profile, error) {
	p := defaultProfile()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return p, nil
		}
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return p, nil
}
