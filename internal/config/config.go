package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/payfield/internal/amount"
	"github.com/cleared-dev/payfield/internal/currency"
	"github.com/cleared-dev/payfield/internal/model"
	"github.com/cleared-dev/payfield/internal/redact"
)

// FileName is the conventional config file name.
const FileName = "payfield.yaml"

// Config represents the top-level payfield.yaml configuration.
type Config struct {
	Amount      AmountConfig    `yaml:"amount"`
	Currencies  []string        `yaml:"currencies"`
	Frequencies []string        `yaml:"frequencies"`
	Expiry      ExpiryConfig    `yaml:"expiry"`
	Redaction   RedactionConfig `yaml:"redaction"`
	Format      FormatConfig    `yaml:"format"`
	Log         LogConfig       `yaml:"log"`
}

// AmountConfig holds amount bounds as decimal strings, e.g. "0.50".
type AmountConfig struct {
	CardMinimum string `yaml:"card_minimum"`
	ACHMinimum  string `yaml:"ach_minimum"`
	Maximum     string `yaml:"maximum"`
}

// ExpiryConfig bounds accepted card expiry years.
type ExpiryConfig struct {
	MaxYearsAhead int `yaml:"max_years_ahead"`
}

// RedactionConfig controls payload sanitization.
type RedactionConfig struct {
	Marker    string   `yaml:"marker"`
	ExtraKeys []string `yaml:"extra_keys,omitempty"`
	MaxDepth  int      `yaml:"max_depth"`
}

// FormatConfig controls display formatting.
type FormatConfig struct {
	Locale string `yaml:"locale"` // BCP 47 tag, e.g. "en-US"
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // console or json
}

// Load reads a payfield.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault reads path, falling back to Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the standard payment field policy.
func Default() *Config {
	currencies := make([]string, len(model.Currencies))
	for i, c := range model.Currencies {
		currencies[i] = string(c)
	}
	frequencies := make([]string, len(model.Frequencies))
	for i, f := range model.Frequencies {
		frequencies[i] = string(f)
	}
	return &Config{
		Amount: AmountConfig{
			CardMinimum: "0.50",
			ACHMinimum:  "1.00",
			Maximum:     "10000.00",
		},
		Currencies:  currencies,
		Frequencies: frequencies,
		Expiry: ExpiryConfig{
			MaxYearsAhead: 20,
		},
		Redaction: RedactionConfig{
			Marker:   redact.DefaultMarker,
			MaxDepth: redact.DefaultMaxDepth,
		},
		Format: FormatConfig{
			Locale: "en-US",
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	var errs []error

	names := []string{"amount.card_minimum", "amount.ach_minimum", "amount.maximum"}
	raw := []string{c.Amount.CardMinimum, c.Amount.ACHMinimum, c.Amount.Maximum}
	parsed := make([]decimal.Decimal, 0, len(raw))
	for i, name := range names {
		d, err := decimal.NewFromString(raw[i])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not a decimal", name, raw[i]))
			continue
		}
		switch {
		case !d.IsPositive():
			errs = append(errs, fmt.Errorf("%s: must be positive", name))
		case !amount.HasValidPrecision(d):
			errs = append(errs, fmt.Errorf("%s: %q has more than 2 decimal places", name, raw[i]))
		default:
			parsed = append(parsed, d)
		}
	}
	if len(parsed) == len(names) {
		maximum := parsed[2]
		for i, bound := range parsed[:2] {
			if bound.GreaterThan(maximum) {
				errs = append(errs, fmt.Errorf("%s: %s exceeds amount.maximum %s", names[i], raw[i], raw[2]))
			}
		}
	}

	if len(c.Currencies) == 0 {
		errs = append(errs, errors.New("currencies: at least one currency is required"))
	}
	for _, code := range c.Currencies {
		if err := currency.CheckISO(code); err != nil {
			errs = append(errs, fmt.Errorf("currencies: %w", err))
		}
	}

	if len(c.Frequencies) == 0 {
		errs = append(errs, errors.New("frequencies: at least one frequency is required"))
	}
	for _, f := range c.Frequencies {
		if !slices.Contains(model.Frequencies, model.Frequency(f)) {
			errs = append(errs, fmt.Errorf("frequencies: unknown frequency %q", f))
		}
	}

	if c.Expiry.MaxYearsAhead <= 0 {
		errs = append(errs, errors.New("expiry.max_years_ahead: must be positive"))
	}

	if c.Redaction.MaxDepth < 0 {
		errs = append(errs, errors.New("redaction.max_depth: must not be negative"))
	}

	if _, err := language.Parse(c.Format.Locale); err != nil {
		errs = append(errs, fmt.Errorf("format.locale: %w", err))
	}

	return errors.Join(errs...)
}
