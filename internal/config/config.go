// Package config loads server settings and job files from YAML or TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/hyperdual"
)

// Format is a configuration file encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

type Config struct {
	Server Server `yaml:"server" toml:"server"`
	Log    Log    `yaml:"log" toml:"log"`
}

type Server struct {
	Addr              string   `yaml:"addr" toml:"addr"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout" toml:"read_header_timeout"`
	ReadTimeout       Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout      Duration `yaml:"write_timeout" toml:"write_timeout"`
	IdleTimeout       Duration `yaml:"idle_timeout" toml:"idle_timeout"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
	MaxBodyBytes      int64    `yaml:"max_body_bytes" toml:"max_body_bytes"`
}

type Log struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level" toml:"level"`
}

// Duration is a time.Duration written as a string such as "15s".
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) { return []byte(time.Duration(d).String()), nil }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", b, err)
	}
	*d = Duration(v)
	return nil
}

// Default returns the settings used when no file overrides them.
func Default() Config {
	return Config{
		Server: Server{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration(5 * time.Second),
			ReadTimeout:       Duration(15 * time.Second),
			WriteTimeout:      Duration(15 * time.Second),
			IdleTimeout:       Duration(60 * time.Second),
			ShutdownTimeout:   Duration(10 * time.Second),
			MaxBodyBytes:      1 << 20,
		},
		Log: Log{Level: "info"},
	}
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server.addr must not be empty")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	for name, d := range map[string]Duration{
		"read_header_timeout": c.Server.ReadHeaderTimeout,
		"read_timeout":        c.Server.ReadTimeout,
		"write_timeout":       c.Server.WriteTimeout,
		"idle_timeout":        c.Server.IdleTimeout,
		"shutdown_timeout":    c.Server.ShutdownTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("config: server.%s must not be negative", name)
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := decode(content, DetectFormat(path), &cfg, true); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadJob reads a tool request from a YAML or TOML job file.
func LoadJob(path string) (hyperdual.ToolRequest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return hyperdual.ToolRequest{}, fmt.Errorf("job: read %s: %w", path, err)
	}
	var req hyperdual.ToolRequest
	if err := decode(content, DetectFormat(path), &req, false); err != nil {
		return hyperdual.ToolRequest{}, fmt.Errorf("job: parse %s: %w", path, err)
	}
	if req.Tool == "" {
		return hyperdual.ToolRequest{}, fmt.Errorf("job: %s: missing tool", path)
	}
	req.Params = normalize(req.Params).(map[string]interface{})
	return req, nil
}

// DetectFormat picks the decoder from the file extension; TOML is the
// default.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// decode unmarshals content into v. strict rejects keys v has no field for.
func decode(content []byte, format Format, v interface{}, strict bool) error {
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(strict)
		if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		md, err := toml.Decode(string(content), v)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); strict && len(undecoded) > 0 {
			return fmt.Errorf("unknown keys %v", undecoded)
		}
		return nil
	}
}

// normalize rewrites decoder-specific containers into the shapes
// encoding/json produces: map[string]interface{}, []interface{}, float64.
func normalize(v interface{}) interface{} {
	switch x := v.(type) {
	case nil:
		return map[string]interface{}{}
	case map[string]interface{}:
		out := make(map[string]interface{}, len(x))
		for k, e := range x {
			out[k] = normalizeValue(e)
		}
		return out
	}
	return v
}

func normalizeValue(v interface{}) interface{} {
	switch x := v.(type) {
	case map[string]interface{}:
		return normalize(x)
	case []map[string]interface{}:
		out := make([]interface{}, len(x))
		for i, e := range x {
			out[i] = normalize(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(x))
		for i, e := range x {
			out[i] = normalizeValue(e)
		}
		return out
	case int:
		return float64(x)
	case int64:
		return float64(x)
	}
	return v
}
