package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"instafilter/internal/filters"
)

// Config holds application configuration.
type Config struct {
	Library LibraryConfig
	Filter  FilterConfig
	Window  WindowConfig
}

// LibraryConfig holds where saved photos go.
type LibraryConfig struct {
	Dir string
}

// FilterConfig holds the startup filter and slider values.
type FilterConfig struct {
	Default   string
	Intensity float64
	Radius    float64
	Scale     float64
}

// WindowConfig holds presentation settings.
type WindowConfig struct {
	Width  float32
	Height float32
}

// Kind resolves the configured default filter, falling back to the catalog default.
func (f FilterConfig) Kind() filters.Kind {
	if k, ok := filters.ParseKind(f.Default); ok {
		return k
	}
	return filters.DefaultKind
}

// Parameters returns the configured slider values clamped to their bounds.
func (f FilterConfig) Parameters() filters.Parameters {
	return filters.Parameters{
		Intensity: f.Intensity,
		Radius:    f.Radius,
		Scale:     f.Scale,
	}.Clamp()
}

// Load reads configuration from file and env. Env var overrides use prefix INSTAFILTER_.
// An explicit path wins over INSTAFILTER_CONFIG; a missing default file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	defaults := filters.DefaultParameters()
	v.SetDefault("library.dir", filepath.Join(homeDir(), "Pictures", "Instafilter"))
	v.SetDefault("filter.default", filters.DefaultKind.String())
	v.SetDefault("filter.intensity", defaults.Intensity)
	v.SetDefault("filter.radius", defaults.Radius)
	v.SetDefault("filter.scale", defaults.Scale)
	v.SetDefault("window.width", 480)
	v.SetDefault("window.height", 760)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("INSTAFILTER_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(homeDir(), ".config", "instafilter"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("INSTAFILTER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
