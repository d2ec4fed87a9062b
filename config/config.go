package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/viper"

	"frankentokens/theme"
)

// FileName is the config file looked up in the config directory.
const FileName = "frankentokens.config"

// EnvPrefix prefixes environment overrides, e.g. FRANKENTOKENS_CSS_PATH.
const EnvPrefix = "FRANKENTOKENS"

type Config struct {
	CSSPath        string   `mapstructure:"css_path" json:"css_path"`
	OutputDir      string   `mapstructure:"output_dir" json:"output_dir"`
	JSONOut        string   `mapstructure:"json_out" json:"json_out"`
	CSVOut         string   `mapstructure:"csv_out" json:"csv_out"`
	ThemePrefix    string   `mapstructure:"theme_prefix" json:"theme_prefix"`
	IncludeDefault bool     `mapstructure:"include_default" json:"include_default"`
	DaisyDir       string   `mapstructure:"daisy_dir" json:"daisy_dir"`
	DaisyThemes    []string `mapstructure:"daisy_themes" json:"daisy_themes"`
	DaisyOut       string   `mapstructure:"daisy_out" json:"daisy_out"`
	BundleOut      string   `mapstructure:"bundle_out" json:"bundle_out"`
	ClassesCSS     string   `mapstructure:"classes_css" json:"classes_css"`
	ClassesOut     string   `mapstructure:"classes_out" json:"classes_out"`
	ListenAddr     string   `mapstructure:"listen_addr" json:"listen_addr"`
	LogLevel       string   `mapstructure:"log_level" json:"log_level"`
}

func Default() Config {
	return Config{
		CSSPath:        filepath.Join("node_modules", "franken-ui", "dist", "franken-ui.css"),
		OutputDir:      ".",
		JSONOut:        "franken-themes.json",
		CSVOut:         "franken-themes.csv",
		ThemePrefix:    theme.DefaultPrefix,
		IncludeDefault: false,
		DaisyDir:       filepath.Join("node_modules", "daisyui", "theme"),
		DaisyThemes:    append([]string(nil), theme.DaisyThemes...),
		DaisyOut:       "daisyui_themes.json",
		BundleOut:      "theme-extraction.json",
		ClassesCSS:     filepath.Join("outputs", "monsterui.css"),
		ClassesOut:     "tailwind_contract.txt",
		ListenAddr:     "127.0.0.1:8090",
		LogLevel:       "info",
	}
}

// Load reads dir/frankentokens.config when present and applies environment
// overrides on top of the defaults.
func Load(dir string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfgPath := filepath.Join(dir, FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read %s: %w", cfgPath, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	def := Default()
	if cfg.OutputDir == "" {
		cfg.OutputDir = def.OutputDir
	}
	if cfg.ThemePrefix == "" {
		cfg.ThemePrefix = def.ThemePrefix
	}
	if len(cfg.DaisyThemes) == 0 {
		cfg.DaisyThemes = def.DaisyThemes
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, def Config) {
	v.SetDefault("css_path", def.CSSPath)
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("json_out", def.JSONOut)
	v.SetDefault("csv_out", def.CSVOut)
	v.SetDefault("theme_prefix", def.ThemePrefix)
	v.SetDefault("include_default", def.IncludeDefault)
	v.SetDefault("daisy_dir", def.DaisyDir)
	v.SetDefault("daisy_themes", def.DaisyThemes)
	v.SetDefault("daisy_out", def.DaisyOut)
	v.SetDefault("bundle_out", def.BundleOut)
	v.SetDefault("classes_css", def.ClassesCSS)
	v.SetDefault("classes_out", def.ClassesOut)
	v.SetDefault("listen_addr", def.ListenAddr)
	v.SetDefault("log_level", def.LogLevel)
}

// Save writes cfg to dir/frankentokens.config.
func Save(dir string, cfg Config) error {
	cfgPath := filepath.Join(dir, FileName)

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := cfgPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, cfgPath)
}
