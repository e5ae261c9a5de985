// Package config carries the built-in SEEK defaults and optional
// YAML overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Book   Book   `yaml:"book"`
	Scrape Scrape `yaml:"scrape"`
	Output Output `yaml:"output"`
}

type Book struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Language    string `yaml:"language"`
	Identifier  string `yaml:"identifier"`
	Description string `yaml:"description"`
}

type Scrape struct {
	SeedURL        string `yaml:"seed_url"`
	RequestDelayMS int    `yaml:"request_delay_ms"`
}

type Output struct {
	Path string `yaml:"path"`
}

func (s Scrape) Delay() time.Duration {
	return time.Duration(s.RequestDelayMS) * time.Millisecond
}

func Default() Config {
	return Config{
		Book: Book{
			Title:       "SEEK",
			Author:      "John C. McCrae (Wildbow)",
			Language:    "en",
			Identifier:  "seek-webserial",
			Description: "SEEK webserial by John C. McCrae (Wildbow)",
		},
		Scrape: Scrape{
			SeedURL: "https://seekwebserial.wordpress.com/2024/10/18/0-1-0-hack/",
		},
		Output: Output{
			Path: "SEEK.epub",
		},
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %v", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %v", err)
	}

	return cfg, nil
}
