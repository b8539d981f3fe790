package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/concave-dev/crpt/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none are
// given) into the process environment. Missing files are ignored; variables that
// are already set win over file values.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
		logging.Debug("Loaded environment from %s", p)
	}
	return nil
}

// NewViper returns a viper instance where every flag in flags can be overridden
// by a CRPT_* environment variable ("request-limit" -> CRPT_REQUEST_LIMIT) or a
// key in configFile. Explicitly set flags take precedence over both.
func NewViper(flags *pflag.FlagSet, configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		logging.Debug("Using config file %s", v.ConfigFileUsed())
	}

	return v, nil
}
