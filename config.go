package srarq

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config holds the parameters of one simulation run.
type Config struct {
	// MessageCount is the number of application messages to generate.
	MessageCount int `yaml:"messageCount"`
	// LossProbability and CorruptProbability apply independently to
	// every packet put on the channel, in either direction.
	LossProbability    float64 `yaml:"lossProbability"`
	CorruptProbability float64 `yaml:"corruptProbability"`
	// MeanMessageInterval is the average simulated time between two
	// application messages becoming ready at the sender.
	MeanMessageInterval float64 `yaml:"meanMessageInterval"`
	Seed                int64   `yaml:"seed"`
	Verbose             bool    `yaml:"verbose"`
	// TraceDatabase, when set, names a SQLite file that records every
	// dispatched event for post-run inspection.
	TraceDatabase string `yaml:"traceDatabase"`
}

// DefaultConfig returns the parameters of a moderately lossy run.
func DefaultConfig() Config {
	return Config{
		MessageCount:        20,
		LossProbability:     0.1,
		CorruptProbability:  0.1,
		MeanMessageInterval: 50,
		Seed:                1,
	}
}

// LoadConfig reads a YAML configuration file. Fields absent from the
// file keep their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return config, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrap(err, "parse config")
	}
	if err := config.validate(); err != nil {
		return config, err
	}
	return config, nil
}

func (c Config) validate() error {
	if c.MessageCount <= 0 {
		return errors.Errorf("messageCount must be positive, got %d", c.MessageCount)
	}
	if c.LossProbability < 0 || c.LossProbability >= 1 {
		return errors.Errorf("lossProbability must be in [0,1), got %v", c.LossProbability)
	}
	if c.CorruptProbability < 0 || c.CorruptProbability >= 1 {
		return errors.Errorf("corruptProbability must be in [0,1), got %v", c.CorruptProbability)
	}
	if c.MeanMessageInterval <= 0 {
		return errors.Errorf("meanMessageInterval must be positive, got %v", c.MeanMessageInterval)
	}
	return nil
}
