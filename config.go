package paramvalidation

import (
	"errors"
	"fmt"
	"io"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Policy selects how strictly raw parameters are coerced.
type Policy string

const (
	// PolicyModern coerces only scalar fields; array and object fields are
	// passed to their rules as received.
	PolicyModern Policy = "modern"
	// PolicyLegacy coerces every field regardless of its type.
	PolicyLegacy Policy = "legacy"
)

// ErrInvalidConfig is returned when a Config fails validation or cannot be loaded.
var ErrInvalidConfig = errors.New("invalid paramvalidation config")

// Config is passed explicitly to New; nothing is read from process state
// during a validation pass.
type Config struct {
	Policy Policy `env:"PARAMVALIDATION_COERCION_POLICY" envDefault:"modern" yaml:"policy"`
}

// DefaultConfig returns the modern coercion policy.
func DefaultConfig() Config {
	return Config{Policy: PolicyModern}
}

// Validate checks the policy is one of the known values.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Policy, validation.Required, validation.In(PolicyModern, PolicyLegacy)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig reads the config from the environment, loading a .env file
// first when one exists.
func LoadConfig() (Config, error) {
	// The .env file is optional.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, cfg.Validate()
}

// LoadConfigYAML reads the config from a YAML document. A missing policy
// falls back to PolicyModern.
func LoadConfigYAML(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, cfg.Validate()
}
