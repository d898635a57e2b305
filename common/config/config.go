package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/trustcentric/requestlog/common/env"
	"github.com/trustcentric/requestlog/common/logger"
)

const (
	fileFormat   = ".yaml"        // File format of the config files
	relativePath = "./cmd/config" // Default relative path for config files (base path)
	envVarPrefix = "env://"       // Prefix for environment variable indirection
)

// Config holds the tunables of the request logging middleware stack.
type Config struct {
	// HTTPDebug enables a per-request summary log line.
	HTTPDebug bool `mapstructure:"httpDebug"`
	// HTTPTrace additionally logs request and response bodies. Implies HTTPDebug.
	HTTPTrace bool `mapstructure:"httpTrace"`
	// TrustProxy resolves X-Forwarded-For into the remote address before
	// enrichment. Only enable behind a proxy you control.
	TrustProxy bool `mapstructure:"trustProxy"`
	// Timeout bounds request handling; zero disables the timeout middleware.
	Timeout time.Duration `mapstructure:"timeout"`
}

// YamlReadConfig holds the configuration paths (relative and absolute).
type YamlReadConfig struct {
	RelativePath string // Path relative to the current directory
	AbsolutePath string // Absolute path if provided
}

// ReadConfigOption is a function signature used to set configuration options.
type ReadConfigOption func(*YamlReadConfig)

// WithRelativePath sets a relative path for the config file.
func WithRelativePath(path string) ReadConfigOption {
	return func(config *YamlReadConfig) {
		config.RelativePath = path
	}
}

// WithAbsolutePath sets an absolute path for the config file.
func WithAbsolutePath(path string) ReadConfigOption {
	return func(config *YamlReadConfig) {
		config.AbsolutePath = path
	}
}

// Load reads the environment-named YAML configuration file (e.g.
// development.yaml) into conf. Values of the form "env://NAME" are replaced
// with the named environment variable, and any key can be overridden directly
// through the environment.
func Load(conf interface{}, log *logger.Logger, options ...ReadConfigOption) error {
	config := &YamlReadConfig{RelativePath: relativePath}
	for _, option := range options {
		option(config)
	}

	pathToConfigDir := config.RelativePath
	if config.AbsolutePath != "" {
		pathToConfigDir = config.AbsolutePath
	}

	// Get the current environment (like 'development', 'production')
	currentEnv, err := env.GetApplicationEnv()
	if err != nil {
		return errors.Wrap(err, "invalid environment")
	}

	filePath := fmt.Sprintf("%s/%s%s", pathToConfigDir, currentEnv, fileFormat)
	log.Info("Reading config file from path", logger.String("path", filePath))

	viper.SetConfigFile(filePath)
	viper.SetEnvPrefix("")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // Automatically map environment variables

	if err := viper.ReadInConfig(); err != nil {
		return errors.Wrap(err, "failed to read configuration file")
	}

	// Replace any environment variable placeholders (e.g. "env://VAR") with actual values
	for _, key := range viper.AllKeys() {
		setEnvVariableFromString(key, viper.Get(key), log)
	}

	if err := viper.Unmarshal(conf); err != nil {
		return errors.Wrap(err, "failed to unmarshal configuration")
	}

	return nil
}

func setEnvVariableFromString(key string, value interface{}, log *logger.Logger) {
	if str, ok := value.(string); ok && strings.HasPrefix(str, envVarPrefix) {
		// Extract the environment variable name (everything after "env://")
		envVar := str[len(envVarPrefix):]

		envValue, exists := os.LookupEnv(envVar)
		if exists {
			viper.Set(key, envValue)
			log.Info("set environment variable", logger.String("variableName", envVar))
		} else {
			viper.Set(key, "") // Set to empty string if env var is missing
			log.Warn("environment variable not found", logger.String("variableName", envVar))
		}
	}
}
