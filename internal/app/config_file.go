package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Nested sections map
// naturally to the flag surface; zero values mean "not set" and leave the
// flag or built-in default in place.
type FileConfig struct {
	Search struct {
		URL  string `yaml:"url" json:"url"`
		File string `yaml:"file" json:"file"`
		UA   string `yaml:"ua" json:"ua"`
	} `yaml:"search" json:"search"`

	Wiki struct {
		API     string `yaml:"api" json:"api"`
		Article string `yaml:"article" json:"article"`
	} `yaml:"wiki" json:"wiki"`

	Max struct {
		Results      int `yaml:"results" json:"results"`
		Fetches      int `yaml:"fetches" json:"fetches"`
		ExcerptChars int `yaml:"excerptChars" json:"excerptChars"`
		Sentences    int `yaml:"sentences" json:"sentences"`
	} `yaml:"max" json:"max"`

	Fetch struct {
		Timeout Duration `yaml:"timeout" json:"timeout"`
		UA      string   `yaml:"ua" json:"ua"`
	} `yaml:"fetch" json:"fetch"`

	Concurrency int `yaml:"concurrency" json:"concurrency"`

	LLM struct {
		BaseURL string `yaml:"base" json:"base"`
		Model   string `yaml:"model" json:"model"`
		APIKey  string `yaml:"key" json:"key"`
	} `yaml:"llm" json:"llm"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// Duration accepts both Go duration strings ("3s") and integer nanoseconds
// in YAML and JSON config files.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	return d.set(raw)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	return d.set(raw)
}

func (d *Duration) set(raw any) error {
	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case int:
		*d = Duration(v)
	case int64:
		*d = Duration(v)
	case float64:
		*d = Duration(int64(v))
	default:
		return fmt.Errorf("unsupported duration value %v", raw)
	}
	return nil
}

// LoadConfigFile reads YAML or JSON into FileConfig, choosing the decoder
// by file extension (YAML parses JSON too, so unknown extensions fall back
// to YAML).
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse config: %w", err)
		}
	}
	return fc, nil
}

// Apply copies set file values onto cfg. Flags are bound after the file is
// applied, so explicit flags win over file values.
func (fc FileConfig) Apply(cfg *Config) {
	setString(&cfg.SearchBaseURL, fc.Search.URL)
	setString(&cfg.SearchFile, fc.Search.File)
	setString(&cfg.SearchUserAgent, fc.Search.UA)
	setString(&cfg.WikiAPIURL, fc.Wiki.API)
	setString(&cfg.WikiArticleURL, fc.Wiki.Article)
	setInt(&cfg.MaxResults, fc.Max.Results)
	setInt(&cfg.MaxFetches, fc.Max.Fetches)
	setInt(&cfg.MaxExcerptChars, fc.Max.ExcerptChars)
	setInt(&cfg.SummarySentences, fc.Max.Sentences)
	if fc.Fetch.Timeout > 0 {
		cfg.FetchTimeout = time.Duration(fc.Fetch.Timeout)
	}
	setString(&cfg.FetchUserAgent, fc.Fetch.UA)
	setInt(&cfg.Concurrency, fc.Concurrency)
	setString(&cfg.LLMBaseURL, fc.LLM.BaseURL)
	setString(&cfg.LLMModel, fc.LLM.Model)
	setString(&cfg.LLMAPIKey, fc.LLM.APIKey)
	if fc.Verbose {
		cfg.Verbose = true
	}
}

func setString(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}
