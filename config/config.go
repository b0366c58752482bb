package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"japaneseannotate/dictionary"
	"japaneseannotate/kana"
	"japaneseannotate/lookup"
	"japaneseannotate/render"
	"japaneseannotate/tokenize"
)

const (
	// DefaultWorkers is the batch fan-out used when Workers is unset.
	DefaultWorkers = 4

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "JAPANESEANNOTATE_"
)

// Config holds engine and CLI settings.
type Config struct {
	// Dictionary is the lexicon asset: builtin:ipa, a kagome .zip, a MeCab
	// .csv or a TSV lexicon.
	Dictionary string `yaml:"dictionary"`
	// Kanjidic is an optional kanjidic2 XML file for per-kanji furigana.
	Kanjidic    string `yaml:"kanjidic"`
	UnknownCost int    `yaml:"unknown_cost"`
	FoldWidth   bool   `yaml:"fold_width"`
	// MergeAuxiliaries folds auxiliaries into their verb before rendering.
	MergeAuxiliaries bool   `yaml:"merge_auxiliaries"`
	Mode             string `yaml:"mode"`
	Script           string `yaml:"script"`
	LinkBase         string `yaml:"link_base"`
	Workers          int    `yaml:"workers"`
	LogLevel         string `yaml:"log_level"`
	// LogDir receives JSON dumps of batch results when set.
	LogDir string `yaml:"log_dir"`
}

// applyDefaults fills in default values for unset config fields
func (c *Config) applyDefaults() {
	if c.Dictionary == "" {
		c.Dictionary = dictionary.BuiltinIPA
	}
	if c.UnknownCost == 0 {
		c.UnknownCost = tokenize.DefaultUnknownCost
	}
	if c.Mode == "" {
		c.Mode = render.Ruby.String()
	}
	if c.Script == "" {
		c.Script = kana.Hiragana.String()
	}
	if c.LinkBase == "" {
		c.LinkBase = lookup.DefaultBase
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Default returns a config with every default applied.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	if _, err := render.ParseMode(c.Mode); err != nil {
		return err
	}
	if _, err := kana.ParseScript(c.Script); err != nil {
		return err
	}
	if c.UnknownCost < 0 {
		return fmt.Errorf("unknown_cost must not be negative, got %d", c.UnknownCost)
	}
	return nil
}

// Load reads path (optional, YAML), then .env in the working directory,
// then JAPANESEANNOTATE_* environment variables, each layer overriding the
// previous one.
func Load(path string) (Config, error) {
	return LoadFiles(path, ".env")
}

// LoadFiles is Load with an explicit env file. A missing env file is not an
// error; a missing config file is.
func LoadFiles(path, envFile string) (Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	env := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read env file %s: %w", envFile, err)
		}
		for k, v := range m {
			env[k] = v
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}
	if err := c.override(env); err != nil {
		return Config{}, err
	}
	c.applyDefaults()
	return c, c.Validate()
}

func (c *Config) override(env map[string]string) error {
	str := map[string]*string{
		"DICT":      &c.Dictionary,
		"KANJIDIC":  &c.Kanjidic,
		"MODE":      &c.Mode,
		"SCRIPT":    &c.Script,
		"LINK_BASE": &c.LinkBase,
		"LOG_LEVEL": &c.LogLevel,
		"LOG_DIR":   &c.LogDir,
	}
	for k, p := range str {
		if v, ok := env[EnvPrefix+k]; ok {
			*p = v
		}
	}
	ints := map[string]*int{
		"UNKNOWN_COST": &c.UnknownCost,
		"WORKERS":      &c.Workers,
	}
	for k, p := range ints {
		v, ok := env[EnvPrefix+k]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, k, err)
		}
		*p = n
	}
	bools := map[string]*bool{
		"FOLD_WIDTH":        &c.FoldWidth,
		"MERGE_AUXILIARIES": &c.MergeAuxiliaries,
	}
	for k, p := range bools {
		v, ok := env[EnvPrefix+k]
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, k, err)
		}
		*p = b
	}
	return nil
}
