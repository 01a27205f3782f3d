package config

import (
	"fmt"
	"geokit/geodesy"
	"geokit/validate"
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"strings"
)

const (
	EnvPrefix      = "GEOKIT"
	configFileName = "geokit"
)

type Config struct {
	Logging  string         `mapstructure:"logging"`
	Server   ServerConfig   `mapstructure:"server"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	CertFile     string `mapstructure:"cert_file"`
	KeyFile      string `mapstructure:"key_file"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

// UseTls is true when a certificate and a key are configured.
func (s ServerConfig) UseTls() bool {
	return s.CertFile != "" && s.KeyFile != ""
}

// DefaultsConfig contains the values used when a request or command doesn't specify them.
type DefaultsConfig struct {
	Precision int    `mapstructure:"precision"`
	Bits      int    `mapstructure:"bits"`
	BigBits   int    `mapstructure:"big_bits"`
	Unit      string `mapstructure:"unit"`
}

// Load reads the configuration from the given YAML file and the environment. Without a file, an optional
// "geokit.yaml" in the working directory is used. Environment variables like GEOKIT_SERVER_PORT take precedence.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("logging", "info")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cert_file", "")
	v.SetDefault("server.key_file", "")
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("defaults.precision", 9)
	v.SetDefault("defaults.bits", 52)
	v.SetDefault("defaults.big_bits", 64)
	v.SetDefault("defaults.unit", string(geodesy.Meters))

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "Unable to read config file %s", configFile)
		}
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFoundError viper.ConfigFileNotFoundError
			if !errors.As(err, &notFoundError) {
				return nil, errors.Wrap(err, "Unable to read config file")
			}
		}
	}

	if v.ConfigFileUsed() != "" {
		sigolo.Debugf("Use config file %s", v.ConfigFileUsed())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "Unable to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks all values and reports every invalid one at once.
func (c *Config) Validate() error {
	var errs []string

	switch c.Logging {
	case "info", "debug", "trace":
	default:
		errs = append(errs, fmt.Sprintf("logging must be one of info, debug, trace, got '%s'", c.Logging))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if (c.Server.CertFile == "") != (c.Server.KeyFile == "") {
		errs = append(errs, "server.cert_file and server.key_file must be set together")
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}

	if _, err := validate.Precision(c.Defaults.Precision); err != nil {
		errs = append(errs, "defaults.precision: "+err.Error())
	}
	if _, err := validate.Bits(c.Defaults.Bits); err != nil {
		errs = append(errs, "defaults.bits: "+err.Error())
	}
	if _, err := validate.BigBits(c.Defaults.BigBits); err != nil {
		errs = append(errs, "defaults.big_bits: "+err.Error())
	}
	if _, err := geodesy.ParseUnit(c.Defaults.Unit); err != nil {
		errs = append(errs, "defaults.unit: "+err.Error())
	}

	if len(errs) > 0 {
		return errors.Errorf("Config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
