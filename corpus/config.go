package corpus

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dendrascience/crosshash/crosshash"
	"gopkg.in/yaml.v3"
)

// GeneratorConfig controls the shape of randomly generated vectors.
type GeneratorConfig struct {
	NumCases  int    `yaml:"num_cases"`
	MaxDepth  int    `yaml:"max_depth"`
	MaxHeight int    `yaml:"max_height"`
	MaxStrLen int    `yaml:"max_str_len"`
	MaxNumber int64  `yaml:"max_number"`
	Seed      uint64 `yaml:"seed"` // 0 picks a time based seed
	UUIDKeys  bool   `yaml:"uuid_keys"`
}

// DefaultGeneratorConfig returns the settings used by the cross-language
// test suite.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		NumCases:  100,
		MaxDepth:  10,
		MaxHeight: 10,
		MaxStrLen: 10,
		MaxNumber: crosshash.MaxSafeInteger,
		UUIDKeys:  true,
	}
}

// LoadGeneratorConfig reads a YAML config file. Keys missing from the file
// keep their default values; unknown keys are an error.
func LoadGeneratorConfig(path string) (GeneratorConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return GeneratorConfig{}, err
	}
	return ParseGeneratorConfig(b)
}

// ParseGeneratorConfig is like LoadGeneratorConfig but reads from memory.
func ParseGeneratorConfig(b []byte) (GeneratorConfig, error) {
	cfg := DefaultGeneratorConfig()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return GeneratorConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that every limit is usable. MaxNumber must stay within
// the safe integer range or the generator would produce unhashable vectors.
func (c GeneratorConfig) Validate() error {
	switch {
	case c.NumCases < 0:
		return fmt.Errorf("%w: num_cases must not be negative", ErrInvalidConfig)
	case c.MaxDepth < 1:
		return fmt.Errorf("%w: max_depth must be at least 1", ErrInvalidConfig)
	case c.MaxHeight < 1:
		return fmt.Errorf("%w: max_height must be at least 1", ErrInvalidConfig)
	case c.MaxStrLen < 0:
		return fmt.Errorf("%w: max_str_len must not be negative", ErrInvalidConfig)
	case c.MaxNumber < 1 || c.MaxNumber > crosshash.MaxSafeInteger:
		return fmt.Errorf("%w: max_number must be in [1, %d]", ErrInvalidConfig, int64(crosshash.MaxSafeInteger))
	}
	return nil
}

func (c GeneratorConfig) String() string {
	return fmt.Sprintf("cases=%d depth=%d height=%d strlen=%d max=%d seed=%d uuid_keys=%t",
		c.NumCases, c.MaxDepth, c.MaxHeight, c.MaxStrLen, c.MaxNumber, c.Seed, c.UUIDKeys)
}
