package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is the root configuration for dw, stored in ~/.dietwatch/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	API     APIConfig     `json:"api"`
	Display DisplayConfig `json:"display"`
}

// APIConfig holds the diet backend connection settings.
type APIConfig struct {
	// BaseURL is the REST API root, e.g. "https://api.example.com/v1".
	BaseURL string `json:"base_url"`
	// Token is a static bearer token. Leave empty when using client credentials.
	Token string `json:"token"`
	// ClientID, ClientSecret and TokenURL enable the OAuth2 client credentials grant.
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	TokenURL     string `json:"token_url"`
}

// DisplayConfig controls how warnings are rendered.
type DisplayConfig struct {
	// Locale selects the message language: "en" or "pl".
	Locale string `json:"locale"`
	// Timezone is the IANA timezone that defines "today" (e.g. "Europe/Warsaw"). Empty = system local time.
	Timezone string `json:"timezone"`
}

const (
	// DefaultLocale is the message language used when none is configured.
	DefaultLocale = "en"

	// EnvAPIURL and EnvAPIToken override the file's API settings.
	EnvAPIURL   = "DIETWATCH_API_URL"
	EnvAPIToken = "DIETWATCH_API_TOKEN"
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			Locale: DefaultLocale,
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// dw configuration – ~/.dietwatch/config.json
//
// Point "base_url" at your diet backend and provide either a static token or
// client credentials. DIETWATCH_API_URL and DIETWATCH_API_TOKEN override the
// values below.
{
  // ── Diet backend ─────────────────────────────────────────────────────────
  "api": {
    // REST API root, e.g. "https://api.example.com/v1".
    "base_url": "",

    // Static bearer token sent as "Authorization: Bearer <token>".
    "token": "",

    // OAuth2 client credentials. When token_url is set these are used
    // instead of the static token, and issued tokens are cached in
    // ~/.dietwatch/auth/token.json.
    "client_id": "",
    "client_secret": "",
    "token_url": ""
  },

  // ── Display ──────────────────────────────────────────────────────────────
  "display": {
    // Message language: "en" (default) or "pl".
    "locale": "en",

    // IANA timezone that defines "today", e.g. "Europe/Warsaw".
    // Leave empty to use the system's local time. Override with --timezone.
    "timezone": ""
  }
}
`

// Dir returns the dw data directory (~/.dietwatch).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".dietwatch"), nil
}

// TokenFile returns the path used to cache OAuth2 tokens.
func TokenFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "auth", "token.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.dietwatch/config.json, creating it with annotated defaults on
// first run.
func Load() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return withEnv(defaultConfig()), err
	}
	return LoadFrom(filepath.Join(dir, "config.json"))
}

// LoadFrom reads the config file at path, creating it with annotated defaults
// if it does not exist. Lines starting with // are treated as comments and
// stripped before JSON parsing. Environment overrides are applied last.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return withEnv(defaultConfig()), nil
	}
	if err != nil {
		return withEnv(defaultConfig()), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return withEnv(defaultConfig()), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	if cfg.Display.Locale == "" {
		cfg.Display.Locale = DefaultLocale
	}

	return withEnv(cfg), nil
}

// withEnv applies DIETWATCH_* environment overrides.
func withEnv(cfg Config) Config {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv(EnvAPIToken); v != "" {
		cfg.API.Token = v
	}
	return cfg
}

// Location resolves the configured timezone. An empty name is the system's
// local zone.
func (c DisplayConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
