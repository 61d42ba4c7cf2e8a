package config

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"neuroforge/internal/dataset"
	"neuroforge/internal/model"
)

// Config captures the runtime knobs for a training session.
type Config struct {
	HiddenLayers []int         `yaml:"hidden_layers"`
	LearningRate float64       `yaml:"learning_rate"`
	Speed        float64       `yaml:"speed"`
	Epochs       int           `yaml:"epochs"`
	LogEvery     int           `yaml:"log_every"`
	Seed         int64         `yaml:"seed"`
	BaseInterval time.Duration `yaml:"base_interval"`
	Examples     []Example     `yaml:"examples"`
}

// Example is one training row as written in YAML.
type Example struct {
	Input  []float64 `yaml:"input"`
	Output []float64 `yaml:"output"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	HiddenLayers []int
	LearningRate float64
	Speed        float64
	Epochs       int
	LogEvery     int
	Seed         int64
}

// Default returns the built-in configuration: two hidden layers of width 2
// trained on XOR.
func Default() *Config {
	cfg := &Config{
		HiddenLayers: []int{model.DefaultLayerSize, model.DefaultLayerSize},
		LearningRate: 0.5,
		Speed:        1,
		Epochs:       2000,
		LogEvery:     100,
		BaseInterval: 100 * time.Millisecond,
	}
	for _, ex := range dataset.XOR() {
		cfg.Examples = append(cfg.Examples, Example{Input: ex.Input, Output: ex.Output})
	}
	return cfg
}

// Load reads and validates a Config from YAML. Keys missing from the file
// keep their Default values. An empty path returns Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}

	cfg, err := parseYAML(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyOverrides updates c using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if len(o.HiddenLayers) > 0 {
		c.HiddenLayers = append([]int(nil), o.HiddenLayers...)
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Speed > 0 {
		c.Speed = o.Speed
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if len(c.HiddenLayers) == 0 {
		return errors.New("at least one hidden layer must be set")
	}
	for i, n := range c.HiddenLayers {
		if n < model.MinLayerSize || n > model.MaxLayerSize {
			return errors.Errorf("hidden_layers[%d] must be in [%d, %d] (got %d)",
				i, model.MinLayerSize, model.MaxLayerSize, n)
		}
	}
	if c.LearningRate <= 0 {
		return errors.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.Speed <= 0 {
		return errors.Errorf("speed must be > 0 (got %g)", c.Speed)
	}
	if c.Epochs < 0 {
		return errors.Errorf("epochs must be >= 0 (got %d)", c.Epochs)
	}
	if len(c.Examples) == 0 {
		return errors.New("at least one training example must be set")
	}
	for i, ex := range c.Examples {
		if len(ex.Input) != model.InputSize {
			return errors.Errorf("examples[%d].input must have %d values (got %d)", i, model.InputSize, len(ex.Input))
		}
		if len(ex.Output) != model.OutputSize {
			return errors.Errorf("examples[%d].output must have %d values (got %d)", i, model.OutputSize, len(ex.Output))
		}
		for _, v := range append(append([]float64(nil), ex.Input...), ex.Output...) {
			if v < 0 || v > 1 {
				return errors.Errorf("examples[%d] values must be in [0, 1] (got %g)", i, v)
			}
		}
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 100
	}
	if c.BaseInterval <= 0 {
		c.BaseInterval = 100 * time.Millisecond
	}
	return nil
}

// ModelExamples converts the configured rows into training examples.
func (c *Config) ModelExamples() []model.Example {
	out := make([]model.Example, len(c.Examples))
	for i, ex := range c.Examples {
		out[i] = model.Example{
			Input:  append([]float64(nil), ex.Input...),
			Output: append([]float64(nil), ex.Output...),
		}
	}
	return out
}

func parseYAML(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}
