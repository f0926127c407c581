package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedFile describes bootstrap data: languages and the users that author content.
type SeedFile struct {
	Languages []SeedLanguage `yaml:"languages"`
	Users     []SeedUser     `yaml:"users"`
	Tags      []SeedTag      `yaml:"tags"`
}

type SeedLanguage struct {
	Code       string `yaml:"code"`
	Name       string `yaml:"name"`
	NativeName string `yaml:"native_name"`
	RTL        bool   `yaml:"rtl"`
	Default    bool   `yaml:"default"`
	Inactive   bool   `yaml:"inactive"`
}

type SeedUser struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Role  string `yaml:"role"`
}

type SeedTag struct {
	Name         string            `yaml:"name"`
	Color        string            `yaml:"color"`
	Translations map[string]string `yaml:"translations"`
}

// LoadSeed reads a YAML seed file, expanding environment variables first.
func LoadSeed(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (*SeedFile, error) {
	expanded := os.ExpandEnv(string(data))

	var seed SeedFile
	if err := yaml.Unmarshal([]byte(expanded), &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	defaults := 0
	for _, lang := range seed.Languages {
		if lang.Code == "" {
			return nil, fmt.Errorf("seed language without code")
		}
		if lang.Default {
			defaults++
		}
	}
	if defaults > 1 {
		return nil, fmt.Errorf("seed file marks %d default languages, want at most 1", defaults)
	}

	return &seed, nil
}
