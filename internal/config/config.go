// Package config loads the toolkit configuration from a CUE file and
// validates it against an embedded schema. Command-line flags override
// whatever the file says; with no file at all the defaults apply.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaCUE string

// Config is the resolved toolkit configuration.
type Config struct {
	AccountsDB      string `json:"accounts_db"`
	ArchiveDB       string `json:"archive_db"`
	ConsoleBinary   string `json:"console_binary"`
	MaxReportGroups int    `json:"max_report_groups"`
}

// Default returns the configuration an empty file resolves to.
func Default() Config {
	return Config{
		AccountsDB:      "tandem-secret.db",
		ArchiveDB:       "tandem.db",
		ConsoleBinary:   "tandem-console",
		MaxReportGroups: 10,
	}
}

// Load reads and validates the CUE configuration file at path. The file is
// unified with the embedded schema, so unknown fields and out-of-range
// values fail here rather than surfacing mid-batch.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("load config: internal schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(value)
	if err := unified.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
