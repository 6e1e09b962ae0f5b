package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/VladLeus/scytale-cipher/internal/cipher"
)

// Config captures the scytalectl configuration resolved from defaults,
// optional files, and environment overrides.
type Config struct {
	Key      int               `toml:"key"`
	Alphabet string            `toml:"alphabet"`
	Policy   string            `toml:"policy"`
	Fold     bool              `toml:"fold"`
	Charset  string            `toml:"charset"`
	AuditLog string            `toml:"audit_log"`
	Presets  map[string]Preset `toml:"presets"`
}

// Preset is a named chain of Scytale steps.
type Preset struct {
	Description string                   `toml:"description"`
	Steps       []cipher.OperationConfig `toml:"steps"`
}

// Pipeline converts the preset into an executable pipeline.
func (p Preset) Pipeline() *cipher.Pipeline {
	steps := make([]cipher.OperationConfig, len(p.Steps))
	copy(steps, p.Steps)
	return &cipher.Pipeline{Operations: steps, Reversible: true}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Key:      4,
		Alphabet: cipher.DefaultAlphabet,
		Policy:   string(cipher.PolicyStrict),
		Fold:     true,
		Charset:  "utf-8",
		AuditLog: "",
		Presets:  map[string]Preset{},
	}
}

// Load resolves the configuration using defaults, configuration files, and
// environment overrides. Files are read in this order, later ones winning:
//  1. ~/.scytale/config.toml
//  2. ./scytale.toml
//
// Environment variables prefixed with SCYTALE_ have the highest precedence.
func Load() (Config, error) {
	cfg := Default()

	if err := loadHomeConfig(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadLocalConfig(&cfg); err != nil {
		return Config{}, err
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFile resolves the configuration from defaults, the file at path and
// environment overrides. The home and working-directory files are skipped.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	if err := applyFile(&cfg, path, false); err != nil {
		return Config{}, err
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports the first setting that would make every cipher call fail.
func (c Config) Validate() error {
	if err := cipher.ValidateKey(c.Key); err != nil {
		return fmt.Errorf("config key: %w", err)
	}
	if err := cipher.ValidateAlphabet(cipher.NewAlphabet(c.Alphabet)); err != nil {
		return fmt.Errorf("config alphabet: %w", err)
	}
	if _, err := cipher.ParsePolicy(c.Policy); err != nil {
		return fmt.Errorf("config policy: %w", err)
	}
	for name, preset := range c.Presets {
		if len(preset.Steps) == 0 {
			return fmt.Errorf("preset %q has no steps", name)
		}
		for i, step := range preset.Steps {
			if _, ok := cipher.GetOperation(step.Name); !ok {
				return fmt.Errorf("preset %q step %d: unknown operation %q", name, i, step.Name)
			}
		}
	}
	return nil
}

func loadHomeConfig(cfg *Config) error {
	home, err := os.UserHomeDir()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("determine home directory: %w", err)
	}
	return applyFile(cfg, filepath.Join(home, ".scytale", "config.toml"), true)
}

func loadLocalConfig(cfg *Config) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determine working directory: %w", err)
	}
	return applyFile(cfg, filepath.Join(wd, "scytale.toml"), true)
}

type fileConfig struct {
	Key      *int              `toml:"key"`
	Alphabet *string           `toml:"alphabet"`
	Policy   *string           `toml:"policy"`
	Fold     *bool             `toml:"fold"`
	Charset  *string           `toml:"charset"`
	AuditLog *string           `toml:"audit_log"`
	Presets  map[string]Preset `toml:"presets"`
}

func applyFile(cfg *Config, path string, optional bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := applyFileConfig(cfg, data); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyFileConfig(cfg *Config, data []byte) error {
	var fc fileConfig
	md, err := toml.Decode(string(data), &fc)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	if fc.Key != nil {
		cfg.Key = *fc.Key
	}
	if fc.Alphabet != nil {
		cfg.Alphabet = *fc.Alphabet
	}
	if fc.Policy != nil {
		cfg.Policy = strings.TrimSpace(*fc.Policy)
	}
	if fc.Fold != nil {
		cfg.Fold = *fc.Fold
	}
	if fc.Charset != nil {
		cfg.Charset = strings.TrimSpace(*fc.Charset)
	}
	if fc.AuditLog != nil {
		cfg.AuditLog = strings.TrimSpace(*fc.AuditLog)
	}
	if len(fc.Presets) > 0 && cfg.Presets == nil {
		cfg.Presets = make(map[string]Preset, len(fc.Presets))
	}
	for name, preset := range fc.Presets {
		cfg.Presets[name] = preset
	}

	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if val := strings.TrimSpace(os.Getenv("SCYTALE_KEY")); val != "" {
		key, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("parse SCYTALE_KEY: %w", err)
		}
		cfg.Key = key
	}
	// The alphabet is taken verbatim: a trailing space is a member.
	if val, ok := os.LookupEnv("SCYTALE_ALPHABET"); ok && val != "" {
		cfg.Alphabet = val
	}
	if val := strings.TrimSpace(os.Getenv("SCYTALE_POLICY")); val != "" {
		cfg.Policy = val
	}
	if val := strings.TrimSpace(os.Getenv("SCYTALE_FOLD")); val != "" {
		parsed, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("parse SCYTALE_FOLD: %w", err)
		}
		cfg.Fold = parsed
	}
	if val := strings.TrimSpace(os.Getenv("SCYTALE_CHARSET")); val != "" {
		cfg.Charset = val
	}
	if val := strings.TrimSpace(os.Getenv("SCYTALE_AUDIT_LOG")); val != "" {
		cfg.AuditLog = val
	}
	return nil
}
