// internal/config/config.go
// Package config resolves isoeval options from flags, environment variables
// and an optional config file through viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Keys shared by the cobra flags, the config file and ISOEVAL_* variables.
const (
	KeyConfig          = "config"
	KeyReferenceRoot   = "reference-root"
	KeyComparedRoot    = "compared-root"
	KeyDatasets        = "datasets"
	KeyReferenceSuffix = "reference-suffix"
	KeyVerbose         = "verbose"
	KeyDebug           = "debug"
)

// EnvPrefix prefixes environment overrides, e.g. ISOEVAL_COMPARED_ROOT.
const EnvPrefix = "ISOEVAL"

// DefaultDatasets are the datasets of the original CockroachDB and Galera runs.
var DefaultDatasets = []string{
	"galera_all_writes",
	"galera_partition_writes",
	"roachdb_general_all_writes",
	"roachdb_general_partition_writes",
}

// Config holds everything a report run needs.
type Config struct {
	// ReferenceRoot contains one <dataset><ReferenceSuffix> directory per dataset.
	ReferenceRoot string
	// ComparedRoot contains one <dataset> directory per dataset.
	ComparedRoot string
	// Datasets are evaluated and reported in this order.
	Datasets []string
	// ReferenceSuffix is appended to dataset names under ReferenceRoot.
	ReferenceSuffix string
	// Verbose adds the per-bucket latency tables.
	Verbose bool
	// Debug dumps the resolved config and logs progress to stderr.
	Debug bool
}

// SetDefaults registers default values and environment lookup on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatasets, DefaultDatasets)
	v.SetDefault(KeyReferenceSuffix, "_inc")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// ReadFile loads the config file named by the "config" key, if any.
func ReadFile(v *viper.Viper) error {
	path := v.GetString(KeyConfig)
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("could not read config file %s: %w", path, err)
	}
	return nil
}

// FromViper builds a validated Config from v.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		ReferenceRoot:   v.GetString(KeyReferenceRoot),
		ComparedRoot:    v.GetString(KeyComparedRoot),
		Datasets:        splitList(v.GetStringSlice(KeyDatasets)),
		ReferenceSuffix: v.GetString(KeyReferenceSuffix),
		Verbose:         v.GetBool(KeyVerbose),
		Debug:           v.GetBool(KeyDebug),
	}
	return cfg, cfg.Validate()
}

// Validate reports the first missing required option.
func (c Config) Validate() error {
	if c.ReferenceRoot == "" {
		return errors.New("reference-root is required")
	}
	if c.ComparedRoot == "" {
		return errors.New("compared-root is required")
	}
	if len(c.Datasets) == 0 {
		return errors.New("at least one dataset is required")
	}
	return nil
}

// splitList accepts both repeated values and comma separated ones, which is
// how a list arrives from an environment variable.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
