// cmd/isoeval/view.go
package isoeval

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/mwiater/isoeval/internal/tui"
)

var startBrowser = tui.Start

// viewCmd implements 'view', an interactive browser over the evaluated datasets.
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse dataset reports interactively",
	Long:  `The 'view' command evaluates every configured dataset and opens a terminal browser to inspect each dataset's tables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		var logger *log.Logger
		if cfg.Debug {
			logger = log.Default()
		}
		return startBrowser(cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
