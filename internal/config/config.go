// Package config loads settings for the command line tools from flags,
// BPE_* environment variables and an optional config file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Vocab VocabConfig `mapstructure:"vocab"`
	Text  TextConfig  `mapstructure:"text"`
	Log   LogConfig   `mapstructure:"log"`
	Bench BenchConfig `mapstructure:"bench"`
}

type VocabConfig struct {
	Path      string `mapstructure:"path"`
	Format    string `mapstructure:"format"`
	Default   string `mapstructure:"default"`
	BundleDir string `mapstructure:"bundle_dir"`
}

type TextConfig struct {
	Normalize string `mapstructure:"normalize"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type BenchConfig struct {
	Corpus  string `mapstructure:"corpus"`
	Glob    string `mapstructure:"glob"`
	Workers int    `mapstructure:"workers"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Vocab: VocabConfig{
			Path:      "",
			Format:    FormatText,
			Default:   "",
			BundleDir: "",
		},
		Text: TextConfig{
			Normalize: "none",
		},
		Log: LogConfig{
			Level: "info",
		},
		Bench: BenchConfig{
			Corpus:  "testdata/corpus",
			Glob:    "**/*.txt",
			Workers: 4,
		},
	}
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"vocab-path":       "vocab.path",
	"vocab-format":     "vocab.format",
	"vocab-default":    "vocab.default",
	"vocab-bundle-dir": "vocab.bundle_dir",
	"text-normalize":   "text.normalize",
	"log-level":        "log.level",
	"corpus":           "bench.corpus",
	"glob":             "bench.glob",
	"workers":          "bench.workers",
}

// RegisterFlags registers the vocabulary, text and logging flags.
func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("vocab-path", defaults.Vocab.Path, "Path to vocabulary file")
	fs.String("vocab-format", defaults.Vocab.Format, "Vocabulary file format (text|sentencepiece)")
	fs.String("vocab-default", defaults.Vocab.Default, "Bundled default vocabulary (small|medium|large)")
	fs.String("vocab-bundle-dir", defaults.Vocab.BundleDir, "Directory holding default vocabulary bundles")
	fs.String("text-normalize", defaults.Text.Normalize, "Unicode normalization applied to input (none|nfc|nfd|nfkc|nfkd)")
	fs.String("log-level", defaults.Log.Level, "Log level (debug|info|warn|error)")
}

// RegisterBenchFlags registers the benchmark flags.
func RegisterBenchFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("corpus", defaults.Bench.Corpus, "Directory containing corpus files")
	fs.String("glob", defaults.Bench.Glob, "Glob selecting corpus files within the corpus directory")
	fs.Int("workers", defaults.Bench.Workers, "Documents tokenized concurrently")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("BPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("bpe")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("vocab.path", c.Vocab.Path)
	v.SetDefault("vocab.format", c.Vocab.Format)
	v.SetDefault("vocab.default", c.Vocab.Default)
	v.SetDefault("vocab.bundle_dir", c.Vocab.BundleDir)
	v.SetDefault("text.normalize", c.Text.Normalize)
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("bench.corpus", c.Bench.Corpus)
	v.SetDefault("bench.glob", c.Bench.Glob)
	v.SetDefault("bench.workers", c.Bench.Workers)
}
