// Package config loads bce settings from a CUE file.
//
// The file is unified with the embedded #Config schema, which supplies a
// default for every field, so an empty or missing file yields a usable
// configuration. Unknown fields are rejected because #Config is closed.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/go-playground/validator/v10"

	"github.com/bce-toolkit/bce/internal/balance"
)

//go:embed schema.cue
var schemaSource string

// ErrNotFound is returned when an explicitly named config file is missing.
var ErrNotFound = errors.New("config: file not found")

// Config is the decoded configuration.
type Config struct {
	AutoCorrect  bool          `json:"auto_correct"`
	SymbolHeader string        `json:"symbol_header" validate:"required,max=16"`
	Language     string        `json:"language" validate:"required,bcp47_language_tag"`
	History      HistoryConfig `json:"history"`
	Server       ServerConfig  `json:"server"`
}

// HistoryConfig locates the balance history database.
type HistoryConfig struct {
	Path string `json:"path"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `json:"addr" validate:"required,hostname_port"`
}

// BalanceOptions returns the balancer options carried by c.
func (c *Config) BalanceOptions() balance.Options {
	return balance.Options{AutoCorrect: c.AutoCorrect, SymbolHeader: c.SymbolHeader}
}

var validate = validator.New()

// Default returns the schema defaults.
func Default() (*Config, error) {
	return decode(nil, "")
}

// Load reads and validates the CUE file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return decode(data, path)
}

// Parse validates CUE source held in memory. name is used in error
// positions.
func Parse(src []byte, name string) (*Config, error) {
	return decode(src, name)
}

func decode(src []byte, name string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("config: compile schema: %w", err)
	}
	v := schema.LookupPath(cue.ParsePath("#Config"))

	if src != nil {
		file := ctx.CompileBytes(src, cue.Filename(name))
		if err := file.Err(); err != nil {
			return nil, fmt.Errorf("config: compile %s: %w", name, err)
		}
		v = v.Unify(file)
	}
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", name, err)
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", name, err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", name, err)
	}
	return &cfg, nil
}
