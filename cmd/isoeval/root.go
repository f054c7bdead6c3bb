// cmd/isoeval/root.go
package isoeval

import (
	"io"
	"log"
	"os"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/isoeval/internal/config"
)

// rootCmd is the base Cobra command for the isoeval application.
// All subcommands are attached to this root to form the complete CLI.
var rootCmd = &cobra.Command{
	Use:   "isoeval",
	Short: "Compare isolation checker verdicts against a reference checker",
	Long: `isoeval reads the logs of an isolation checker under evaluation and of a reference checker,
joins them per recorded history and reports confusion matrices and latency tables per dataset.`,
	SilenceUsage: true,
}

// Execute runs the root Cobra command and all registered subcommands.
// Cobra prints the returned error; the process exits with a non-zero
// status code on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.SetDefaults(viper.GetViper())

	flags := rootCmd.PersistentFlags()
	flags.StringP(config.KeyConfig, "c", "", "config file (yaml, json or toml)")
	flags.String(config.KeyReferenceRoot, "", "root directory of the reference checker logs")
	flags.String(config.KeyComparedRoot, "", "root directory of the compared checker logs")
	flags.StringSlice(config.KeyDatasets, config.DefaultDatasets, "datasets to evaluate, in report order")
	flags.String(config.KeyReferenceSuffix, "_inc", "suffix of dataset directories under the reference root")
	flags.Bool(config.KeyDebug, false, "dump the resolved config and log progress to stderr")

	for _, key := range []string{
		config.KeyConfig,
		config.KeyReferenceRoot,
		config.KeyComparedRoot,
		config.KeyDatasets,
		config.KeyReferenceSuffix,
		config.KeyDebug,
	} {
		viper.BindPFlag(key, flags.Lookup(key))
	}
}

// loadConfig resolves the config from flags, environment and config file.
var loadConfig = func() (config.Config, error) {
	if err := config.ReadFile(viper.GetViper()); err != nil {
		return config.Config{}, err
	}
	return config.FromViper(viper.GetViper())
}

// newLogger returns a stderr progress logger in debug mode and a silent one otherwise.
func newLogger(cmd *cobra.Command, cfg config.Config) *log.Logger {
	if !cfg.Debug {
		return log.New(io.Discard, "", 0)
	}
	w := cmd.ErrOrStderr()
	pp.Fprintln(w, cfg)
	return log.New(w, "isoeval: ", log.LstdFlags)
}
