package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by WriteDefault when the file is already present.
var ErrConfigExists = errors.New("config file already exists")

// WriteDefault writes a configuration file holding every default value to
// dir and returns its path. An existing file is never overwritten.
func WriteDefault(dir string) (string, error) {
	path := filepath.Join(dir, FileName+".yaml")

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(defaults(reflect.TypeOf(Config{}))); err != nil {
		return "", fmt.Errorf("encoding defaults: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding defaults: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return "", fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

// defaults builds a nested map of typed default values from the struct tags of t.
func defaults(t reflect.Type) map[string]any {
	out := make(map[string]any)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}
		if field.Type.Kind() == reflect.Struct {
			out[key] = defaults(field.Type)
			continue
		}
		out[key] = typedDefault(field.Type.Kind(), field.Tag.Get("default"))
	}
	return out
}

func typedDefault(kind reflect.Kind, raw string) any {
	switch kind {
	case reflect.Bool:
		b, _ := strconv.ParseBool(raw)
		return b
	case reflect.Int, reflect.Int64:
		n, _ := strconv.Atoi(raw)
		return n
	case reflect.Slice:
		items := []string{}
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items
	default:
		return raw
	}
}
