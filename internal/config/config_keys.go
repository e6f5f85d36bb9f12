// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. This separation allows config.go to focus on YAML structure
// and loading, while this file handles the CLI interface where config is
// accessed by string keys (e.g., "limits.context_chars").
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero/false". This enables proper
// defaulting - we only apply defaults when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name", "author.email",
		"track.record",
		"export.overwrite",
		"log.audit",
		"limits.context_chars", "limits.max_matches",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "track.record":
		return strconv.FormatBool(c.TrackRecord()), nil
	case "export.overwrite":
		return strconv.FormatBool(c.ExportOverwrite()), nil
	case "log.audit":
		return strconv.FormatBool(c.AuditEnabled()), nil
	case "limits.context_chars":
		return strconv.Itoa(c.ContextChars()), nil
	case "limits.max_matches":
		return strconv.Itoa(c.MaxMatches()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "track.record":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Track.Record = &b
	case "export.overwrite":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Export.Overwrite = &b
	case "log.audit":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Log.Audit = &b
	case "limits.context_chars":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: limits.context_chars must be a positive integer", ErrInvalidValue)
		}
		c.Limits.ContextChars = &n
	case "limits.max_matches":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: limits.max_matches must be a positive integer", ErrInvalidValue)
		}
		c.Limits.MaxMatches = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

func parseBool(key, value string) (bool, error) {
	v := strings.ToLower(value)
	if v != "true" && v != "false" {
		return false, fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
	}
	return v == "true", nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"author.name":          c.Author.Name,
		"author.email":         c.Author.Email,
		"track.record":         strconv.FormatBool(c.TrackRecord()),
		"export.overwrite":     strconv.FormatBool(c.ExportOverwrite()),
		"log.audit":            strconv.FormatBool(c.AuditEnabled()),
		"limits.context_chars": strconv.Itoa(c.ContextChars()),
		"limits.max_matches":   strconv.Itoa(c.MaxMatches()),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "track.record":
		return c.Track.Record != nil
	case "export.overwrite":
		return c.Export.Overwrite != nil
	case "log.audit":
		return c.Log.Audit != nil
	case "limits.context_chars":
		return c.Limits.ContextChars != nil
	case "limits.max_matches":
		return c.Limits.MaxMatches != nil
	default:
		return false
	}
}
