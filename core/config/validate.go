package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Validate reports every setting that would make a run fail.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Remote.Host) == "" {
		errs = append(errs, errors.New("remote.host is required"))
	}
	if _, err := language.Parse(c.Sync.BaseLanguage); err != nil {
		errs = append(errs, fmt.Errorf("sync.base_language %q is not a valid language tag: %w", c.Sync.BaseLanguage, err))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be console or json", c.Log.Format))
	}

	return errors.Join(errs...)
}
