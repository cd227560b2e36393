package config

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"

	"github.com/pedro-r-marques/devops-tutor/pkg/workflow"
)

type configValidator struct {
	namePattern *regexp.Regexp
}

func newConfigValidator() *configValidator {
	return &configValidator{
		namePattern: regexp.MustCompile(`[a-zA-Z][\w\-]*`),
	}
}

func fullMatchString(re *regexp.Regexp, str string) bool {
	locs := re.FindStringIndex(str)
	return reflect.DeepEqual(locs, []int{0, len(str)})
}

func validPort(port int) bool {
	return port >= 0 && port <= 65535
}

// validateSamples checks sample names the way the sample set looks them
// up: case-insensitively, and without replacing a built-in sample.
func (v *configValidator) validateSamples(samples []*Sample) error {
	builtin := make(map[string]bool)
	for _, name := range workflow.NewSampleSet().Names() {
		builtin[name] = true
	}
	names := make(map[string]bool, len(samples))
	for _, sample := range samples {
		if !fullMatchString(v.namePattern, sample.Name) {
			return fmt.Errorf("invalid sample name: %s", sample.Name)
		}
		key := strings.ToLower(sample.Name)
		if builtin[key] {
			return fmt.Errorf("sample %s: name reserved by a built-in sample", sample.Name)
		}
		if _, exists := names[key]; exists {
			return fmt.Errorf("duplicate sample: %s", sample.Name)
		}
		if sample.File == "" && sample.Content == "" {
			return fmt.Errorf("sample %s: file or content required", sample.Name)
		}
		if sample.File != "" && sample.Content != "" {
			return fmt.Errorf("sample %s: file and content are exclusive", sample.Name)
		}
		names[key] = true
	}
	return nil
}

func (v *configValidator) Validate(config *Config) error {
	if !validPort(config.Port) {
		return fmt.Errorf("invalid port: %d", config.Port)
	}
	if !validPort(config.DebugPort) {
		return fmt.Errorf("invalid debug port: %d", config.DebugPort)
	}
	if config.Language != "" {
		known := false
		for _, lang := range Languages {
			known = known || lang == config.Language
		}
		if !known {
			return fmt.Errorf("unsupported language: %s", config.Language)
		}
	}
	if config.LogLevel != "" {
		if _, err := zerolog.ParseLevel(config.LogLevel); err != nil {
			return fmt.Errorf("invalid log level %s: %w", config.LogLevel, err)
		}
	}
	if config.AMQP.Queue != "" && !fullMatchString(v.namePattern, config.AMQP.Queue) {
		return fmt.Errorf("invalid queue name: %s", config.AMQP.Queue)
	}
	if config.History.Retention < 0 {
		return fmt.Errorf("invalid history retention: %v", config.History.Retention)
	}
	return v.validateSamples(config.Samples)
}

func setDefaults(config *Config) {
	if config.Port == 0 {
		config.Port = DefaultPort
	}
	if config.DebugPort == 0 {
		config.DebugPort = DefaultDebugPort
	}
	if config.Language == "" {
		config.Language = DefaultLanguage
	}
	if config.LogLevel == "" {
		config.LogLevel = zerolog.InfoLevel.String()
	}
	if config.History.Retention == 0 {
		config.History.Retention = DefaultRetention
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	config := &Config{}
	setDefaults(config)
	return config
}

func ParseConfig(filename string) (*Config, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading %v: %w", filename, err)
	}
	var config Config
	err = yaml.UnmarshalStrict(data, &config)
	if err != nil {
		return nil, fmt.Errorf("error parsing %v: %w", filename, err)
	}

	v := newConfigValidator()
	if err := v.Validate(&config); err != nil {
		return nil, fmt.Errorf("error in %s: %w", filename, err)
	}
	setDefaults(&config)

	baseDir := filepath.Dir(filename)
	for _, sample := range config.Samples {
		if sample.File == "" {
			continue
		}
		path := sample.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		content, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("sample %s: %w", sample.Name, err)
		}
		sample.Content = string(content)
	}
	return &config, nil
}

// SampleSet returns the built-in samples extended with the configured ones.
func (c *Config) SampleSet() *workflow.SampleSet {
	samples := workflow.NewSampleSet()
	for _, sample := range c.Samples {
		samples.Add(sample.Name, sample.Content)
	}
	return samples
}
