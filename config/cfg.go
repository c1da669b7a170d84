package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

// AppName names the program in logs and generated files.
const AppName = "notemark"

type (
	TemplateFieldName string

	ConverterConfig struct {
		Engine             string `yaml:"engine" validate:"oneof=native commonmark"`
		Extract            bool   `yaml:"extract"`
		OutputNameTemplate string `yaml:"output_name_template"`
	}

	FetchConfig struct {
		Timeout   time.Duration `yaml:"timeout"`
		UserAgent string        `yaml:"user_agent" validate:"required"`
	}

	RenderConfig struct {
		Typographer bool `yaml:"typographer"`
		UnsafeHTML  bool `yaml:"unsafe_html"`
		Standalone  bool `yaml:"standalone"`
		FrontMatter bool `yaml:"front_matter"`
	}

	TroveConfig struct {
		Dir string `yaml:"dir" sanitize:"path_clean" validate:"required"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Converter ConverterConfig `yaml:"converter"`
		Fetch     FetchConfig     `yaml:"fetch"`
		Render    RenderConfig    `yaml:"render"`
		Trove     TroveConfig     `yaml:"trove"`
		Logging   LoggingConfig   `yaml:"logging"`
	}
)

const (
	// NOTE: must match yaml field name above, expanded per note rather than
	// when the configuration is loaded
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
