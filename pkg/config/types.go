package config

import "time"

const (
	DefaultPort      = 8000
	DefaultDebugPort = 8090
	DefaultLanguage  = "en"
	DefaultRetention = 7 * 24 * time.Hour
)

var Languages = []string{"en", "si"}

type Sample struct {
	// Name the sample is selected by
	Name string
	// Path of a workflow file, relative to the config file
	File string
	// Inline workflow document; used when File is empty
	Content string
}

type AMQP struct {
	Server string
	VHost  string `yaml:"vhost"`
	Queue  string
}

type History struct {
	// sqlite database file; history is disabled when empty
	Database string
	// Analyses older than this are pruned
	Retention time.Duration
}

type Config struct {
	Port      int
	DebugPort int `yaml:"debugPort"`
	// Default explanation language
	Language string
	LogLevel string `yaml:"logLevel"`
	// Report dependency cycles as errors
	StrictCycles bool `yaml:"strictCycles"`
	AMQP         AMQP `yaml:"amqp"`
	History      History
	Samples      []*Sample
}
