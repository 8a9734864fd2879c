package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name used for config files and directories
	AppName = "macro-cli"

	// EnvPrefix is the prefix for environment variables
	EnvPrefix = "MACRO_CLI"
)

// AppConfig holds the application configuration
type AppConfig struct {
	Debug     bool   `mapstructure:"debug"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"`

	Macro struct {
		File string `mapstructure:"file"` // default document path for editing commands
	} `mapstructure:"macro"`

	Launcher struct {
		Executable  string   `mapstructure:"executable"`
		Flag        string   `mapstructure:"flag"`
		SearchPaths []string `mapstructure:"search_paths"`
		TempDir     string   `mapstructure:"temp_dir"`
		Wait        bool     `mapstructure:"wait"`
	} `mapstructure:"launcher"`

	Render struct {
		Width  int `mapstructure:"width"`
		Height int `mapstructure:"height"`
	} `mapstructure:"render"`

	Snapshots struct {
		Dir    string        `mapstructure:"dir"`     // where pre-edit copies are kept
		MaxAge time.Duration `mapstructure:"max_age"` // older snapshots are pruned
	} `mapstructure:"snapshots"`

	Serve struct {
		Transport string `mapstructure:"transport"` // stdio or streamable-http
		Port      int    `mapstructure:"port"`
	} `mapstructure:"serve"`
}

// Global variables
var (
	// Global configuration instance
	Instance AppConfig

	// Status indicators
	ConfigLoaded bool
	ConfigFile   string

	v        = viper.New()
	initOnce sync.Once
)

// Initialize loads configuration into Instance once per process. Flags bound
// with BindFlag take precedence over the file and environment.
func Initialize(cfgFile string) error {
	var err error
	initOnce.Do(func() {
		var file string
		Instance, file, err = load(v, cfgFile)
		ConfigLoaded = file != ""
		ConfigFile = file
	})
	return err
}

// Load reads configuration into a fresh AppConfig without touching the
// global instance.
func Load(cfgFile string) (AppConfig, error) {
	cfg, _, err := load(viper.New(), cfgFile)
	return cfg, err
}

// BindFlag makes a command-line flag override the config key.
func BindFlag(key string, flag *pflag.Flag) error {
	return v.BindPFlag(key, flag)
}

func load(v *viper.Viper, cfgFile string) (AppConfig, string, error) {
	var cfg AppConfig
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		addSearchPaths(v)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	file := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, "", fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		file = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, "", fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, file, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("log_format", "human")
	v.SetDefault("log_file", "")

	v.SetDefault("macro.file", "macro.json")

	v.SetDefault("launcher.executable", "")
	v.SetDefault("launcher.flag", "/macro")
	v.SetDefault("launcher.search_paths", []string{})
	v.SetDefault("launcher.temp_dir", filepath.Join(os.TempDir(), AppName))
	v.SetDefault("launcher.wait", false)

	v.SetDefault("render.width", 1280)
	v.SetDefault("render.height", 800)

	v.SetDefault("snapshots.dir", filepath.Join(os.TempDir(), AppName, "snapshots"))
	v.SetDefault("snapshots.max_age", "24h")

	v.SetDefault("serve.transport", "stdio")
	v.SetDefault("serve.port", 8080)
}

// addSearchPaths adds config search paths
func addSearchPaths(v *viper.Viper) {
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, AppName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, "."+AppName))
	}
}
