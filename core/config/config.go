package config

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"

	"i18n-sync/core/database"
	"i18n-sync/core/logger"
	"i18n-sync/core/remote"
	"i18n-sync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileName is the optional project configuration file, without extension.
const FileName = ".i18n-sync"

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Remote holds configuration for the translation service.
	Remote remote.Config `mapstructure:"remote"`
	// Sync holds configuration for the local translation files and workflows.
	Sync SyncConfig `mapstructure:"sync"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Storage holds configuration for the optional snapshot mirror.
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the optional run history.
	Database database.Config `mapstructure:"database"`
}

// SyncConfig holds configuration for the local side of a sync.
type SyncConfig struct {
	// BaseLanguage is the language every other language is completed against.
	BaseLanguage string `mapstructure:"base_language" default:"en-US"`
	// Include lists glob patterns selecting translation files below BasePath.
	Include []string `mapstructure:"include" default:"**/*.json"`
	// Exclude lists glob patterns removed from the included files.
	Exclude []string `mapstructure:"exclude" default:""`
	// BasePath is the directory holding the translation files.
	BasePath string `mapstructure:"base_path" default:"."`
	// WorkDir holds the cache and preview directories.
	WorkDir string `mapstructure:"work_dir" default:".i18n-sync"`
	// FetchConcurrency bounds parallel downloads of remote files.
	FetchConcurrency int `mapstructure:"fetch_concurrency" default:"4"`
	// WriteBackfill writes base-language placeholders into local files on push.
	WriteBackfill bool `mapstructure:"write_backfill" default:"false"`
	// Cache keeps a copy of every fetched remote language in WorkDir/cache.
	Cache bool `mapstructure:"cache" default:"true"`
}

// CacheDir is the directory remote snapshots are written to.
func (s SyncConfig) CacheDir() string {
	return filepath.Join(s.WorkDir, "cache")
}

// PreviewDir is the default download target.
func (s SyncConfig) PreviewDir() string {
	return filepath.Join(s.WorkDir, "preview")
}

// LoadConfig loads configuration from the .env file, the optional
// .i18n-sync.yaml file in path and environment variables, in that order of
// increasing precedence.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// Map environment variables to nested keys (e.g. SYNC_BASE_LANGUAGE -> sync.base_language)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
