package utils

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// EnvSource resolves settings from a dotenv file, process environment takes precedence.
type EnvSource struct {
	file map[string]string
}

// ReadEnvSource parses dotenv file at path. Missing or unreadable file is an error.
func ReadEnvSource(path string) (*EnvSource, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read config file %s", path)
	}
	return &EnvSource{file: values}, nil
}

// NewEnvSource creates source from already known values, useful in tests.
func NewEnvSource(values map[string]string) *EnvSource {
	if values == nil {
		values = map[string]string{}
	}
	return &EnvSource{file: values}
}

func (s *EnvSource) lookup(key string) (string, bool) {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value), true
	}
	value, ok := s.file[key]
	return strings.TrimSpace(value), ok
}

func (s *EnvSource) GetString(key, defval string) string {
	if value, ok := s.lookup(key); ok && value != "" {
		return value
	}
	return defval
}

func (s *EnvSource) GetInt(key string, defval int) (int, error) {
	value, ok := s.lookup(key)
	if !ok || value == "" {
		return defval, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Errorf("unable to convert %s value '%s' to int", key, value)
	}
	return parsed, nil
}

func (s *EnvSource) GetBool(key string, defval bool) (bool, error) {
	value, ok := s.lookup(key)
	if !ok || value == "" {
		return defval, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.Errorf("unable to convert %s value '%s' to bool", key, value)
	}
	return parsed, nil
}

func (s *EnvSource) GetDuration(key string, defval time.Duration) (time.Duration, error) {
	value, ok := s.lookup(key)
	if !ok || value == "" {
		return defval, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.Errorf("unable to convert %s value '%s' to duration", key, value)
	}
	return parsed, nil
}

// SplitList splits comma delimited value, trims items and skips empty ones.
// Duplicates are dropped, first occurrence wins.
func SplitList(value string) []string {
	items := []string{}
	seen := map[string]bool{}
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		items = append(items, item)
	}
	return items
}
