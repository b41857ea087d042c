// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. config.go handles YAML structure and loading; this file
// handles the CLI and MCP interface where config is accessed by string keys
// (e.g., "server.frontend_origin").
//
// Design: Get and All report effective values, so environment overrides and
// defaults show up. IsSet only reports what the file itself holds.

package config

import (
	"fmt"
	"slices"
	"strconv"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"user.email",
		"server.addr", "server.frontend_origin", "server.static_dir",
		"store.backend", "store.mongo_url",
		"limits.max_name", "limits.max_content",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the effective value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "user.email":
		return c.User.Email, nil
	case "server.addr":
		return c.Addr(), nil
	case "server.frontend_origin":
		return c.FrontendOrigin(), nil
	case "server.static_dir":
		return c.StaticDir(), nil
	case "store.backend":
		return c.Backend(), nil
	case "store.mongo_url":
		return c.MongoURL(), nil
	case "limits.max_name":
		return strconv.Itoa(c.MaxName()), nil
	case "limits.max_content":
		return strconv.FormatInt(c.MaxContent(), 10), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "user.email":
		c.User.Email = value
	case "server.addr":
		c.Server.Addr = value
	case "server.frontend_origin":
		c.Server.FrontendOrigin = value
	case "server.static_dir":
		c.Server.StaticDir = value
	case "store.backend":
		if value != BackendSQLite && value != BackendMongo {
			return fmt.Errorf("%w: store.backend must be %s or %s", ErrInvalidValue, BackendSQLite, BackendMongo)
		}
		c.Store.Backend = value
	case "store.mongo_url":
		c.Store.MongoURL = value
	case "limits.max_name":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinMaxName || n > MaxMaxName {
			return fmt.Errorf("%w: limits.max_name must be between %d and %d", ErrInvalidValue, MinMaxName, MaxMaxName)
		}
		c.Limits.MaxName = &n
	case "limits.max_content":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < MinMaxContent || n > MaxMaxContent {
			return fmt.Errorf("%w: limits.max_content must be between %d and %d", ErrInvalidValue, MinMaxContent, MaxMaxContent)
		}
		c.Limits.MaxContent = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all effective configuration values as a map.
func (c *Config) All() map[string]string {
	out := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		v, _ := c.Get(k)
		out[k] = v
	}
	return out
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "user.email":
		return c.User.Email != ""
	case "server.addr":
		return c.Server.Addr != ""
	case "server.frontend_origin":
		return c.Server.FrontendOrigin != ""
	case "server.static_dir":
		return c.Server.StaticDir != ""
	case "store.backend":
		return c.Store.Backend != ""
	case "store.mongo_url":
		return c.Store.MongoURL != ""
	case "limits.max_name":
		return c.Limits.MaxName != nil
	case "limits.max_content":
		return c.Limits.MaxContent != nil
	default:
		return false
	}
}
