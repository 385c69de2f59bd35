package common

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// SeedUser is one record in a seed file. Debt stays raw text and goes through
// the same lenient parsing as interactive input.
type SeedUser struct {
	Name string `yaml:"name"`
	Debt string `yaml:"debt"`
}

type SeedFile struct {
	Users []SeedUser `yaml:"users"`
}

func LoadSeedFile(seedFile string) ([]SeedUser, error) {
	var seedPath string
	if filepath.IsAbs(seedFile) {
		seedPath = seedFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		seedPath = filepath.Join(wd, seedFile)
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", seedFile, err)
	}

	return ParseSeed(data, seedFile)
}

// ParseSeed decodes seed YAML; source only labels error messages.
func ParseSeed(data []byte, source string) ([]SeedUser, error) {
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", source, err)
	}

	for i, user := range seed.Users {
		if user.Name == "" {
			return nil, fmt.Errorf("user at index %d missing name", i)
		}
	}

	return seed.Users, nil
}
