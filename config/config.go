package config

import (
	"errors"
	"strings"
	"sync"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. QRSTUDIO_QR_BOX_SIZE.
const EnvPrefix = "QRSTUDIO"

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Preview PreviewConfig `mapstructure:"preview"`
	QR      QRConfig      `mapstructure:"qr"`
	Server  ServerConfig  `mapstructure:"server"`
	History HistoryConfig `mapstructure:"history"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Log     LogConfig     `mapstructure:"log"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

type AppConfig struct {
	Title     string `mapstructure:"title"`
	MinWidth  int    `mapstructure:"min_width"`
	MinHeight int    `mapstructure:"min_height"`
}

type PreviewConfig struct {
	Max int `mapstructure:"max"`
}

type QRConfig struct {
	BoxSize    int    `mapstructure:"box_size"`
	Border     int    `mapstructure:"border"`
	ErrorLevel string `mapstructure:"error_level"`
	FillColor  string `mapstructure:"fill_color"`
	Background string `mapstructure:"background"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type HistoryConfig struct {
	// DBPath is the SQLite file for export history. Empty disables history.
	DBPath string `mapstructure:"db_path"`
}

type CacheConfig struct {
	Size int `mapstructure:"size"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// IsProduction reports whether the JSON production logger should be used.
func (c LogConfig) IsProduction() bool {
	return strings.EqualFold(c.Level, "INFO")
}

var defaults = map[string]interface{}{
	"app.title":       "QR Code Studio",
	"app.min_width":   760,
	"app.min_height":  560,
	"preview.max":     360,
	"qr.box_size":     10,
	"qr.border":       4,
	"qr.error_level":  "M",
	"qr.fill_color":   "black",
	"qr.background":   "white",
	"server.port":     8080,
	"history.db_path": "qrstudio.db",
	"cache.size":      256,
	"log.level":       "INFO",
}

// FlagKeys maps command-line flag names onto config keys. Only flags that
// were set on the command line override the other sources.
var FlagKeys = map[string]string{
	"log-level":   "log.level",
	"port":        "server.port",
	"db":          "history.db_path",
	"cache-size":  "cache.size",
	"preview-max": "preview.max",
	"ec":          "qr.error_level",
	"box":         "qr.box_size",
	"border":      "qr.border",
	"fill":        "qr.fill_color",
	"bg":          "qr.background",
}

var (
	instance *Config
	once     sync.Once
	initErr  error
)

// Init loads the process-wide config on first call. Later calls return the
// same config and ignore their arguments.
func Init(path string, flags *pflag.FlagSet) (*Config, error) {
	once.Do(func() {
		instance, initErr = Load(path, flags)
		if initErr != nil {
			instance = Defaults()
		}
	})
	return instance, initErr
}

// Get returns the process-wide config, loading it from the default
// locations if Init was never called.
func Get() *Config {
	cfg, _ := Init("", nil)
	return cfg
}

// Defaults returns a config holding only the built-in defaults.
func Defaults() *Config {
	cfg, _ := build(newViper(), nil)
	return cfg
}

// Load builds a fresh config from defaults, the config file, QRSTUDIO_*
// environment variables and flags, in increasing precedence. With an empty
// path, qrstudio.yaml is looked up in . and $HOME/.qrstudio and may be absent.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("qrstudio")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.qrstudio")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return build(v, flags)
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func build(v *viper.Viper, flags *pflag.FlagSet) (*Config, error) {
	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.File = v.ConfigFileUsed()
	return &cfg, nil
}
