package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds CLI settings.
type Config struct {
	Source   string       `mapstructure:"source"` // default declaration path
	Format   string       `mapstructure:"format" validate:"oneof=auto json yaml hcl sqlite catalog"`
	Selector string       `mapstructure:"select"`
	Log      LogConfig    `mapstructure:"log"`
	Export   ExportConfig `mapstructure:"export"`
}

// LogConfig selects zap's level and encoder.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// ExportConfig holds defaults for the export command.
type ExportConfig struct {
	Ext string `mapstructure:"ext" validate:"required,startswith=."`
}

var validate = validator.New()

// New returns a viper instance carrying folio's defaults and env binding.
// Env overrides use the FOLIO_ prefix, e.g. FOLIO_LOG_LEVEL.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("source", "")
	v.SetDefault("format", "auto")
	v.SetDefault("select", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("export.ext", ".html")

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and returns the validated result.
// With cfgFile empty, folio.yaml is looked up in the working directory and
// the user config dir; a missing file there is not an error.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "folio"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks field constraints and reports them in one message.
func Validate(c Config) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(strings.TrimPrefix(e.Namespace(), "Config."))
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (got %q)", field, e.Param(), e.Value())
	case "startswith":
		return fmt.Sprintf("%s must start with %q", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
