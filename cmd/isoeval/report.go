// cmd/isoeval/report.go
package isoeval

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/isoeval/internal/config"
	"github.com/mwiater/isoeval/internal/results"
)

// reportCmd implements 'report', which prints the confusion matrix of every
// dataset and, with --verbose, the per-params latency tables.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print confusion matrices and latency tables as markdown",
	Long: `The 'report' command parses both checkers' logs for every configured dataset, joins them per history
and prints a markdown confusion matrix per dataset. Nothing is printed unless every dataset is evaluated successfully.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return results.Run(cfg, cmd.OutOrStdout(), newLogger(cmd, cfg))
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().BoolP(config.KeyVerbose, "v", false, "also print per-params latency tables")
	viper.BindPFlag(config.KeyVerbose, reportCmd.Flags().Lookup(config.KeyVerbose))
}
