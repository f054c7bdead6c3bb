// cmd/isoeval/list_datasets.go
package isoeval

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mwiater/isoeval/internal/config"
	"github.com/mwiater/isoeval/internal/results"
)

// listDatasetsCmd implements 'list datasets', which shows the dataset
// directories under the compared root and whether each one can be joined.
var listDatasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List datasets found under the log roots",
	Long:  `The 'datasets' subcommand lists every dataset directory under the compared root, marking those without reference logs and those selected by the current config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return listDatasets(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	listCmd.AddCommand(listDatasetsCmd)
}

func listDatasets(w io.Writer, cfg config.Config) error {
	entries, err := results.DiscoverDatasets(cfg.ComparedRoot, cfg.ReferenceRoot, cfg.ReferenceSuffix)
	if err != nil {
		return err
	}

	rootStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	datasetStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	missingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	selected := make(map[string]struct{}, len(cfg.Datasets))
	for _, ds := range cfg.Datasets {
		selected[ds] = struct{}{}
	}

	fmt.Fprintln(w, rootStyle.Render(fmt.Sprintf("%s:", cfg.ComparedRoot)))
	for _, e := range entries {
		line := fmt.Sprintf("- %s", e.Name)
		switch {
		case !e.HasReference:
			line = missingStyle.Render(line + " (NO REFERENCE LOGS)")
		case isSelected(selected, e.Name):
			line = selectedStyle.Render(line + " (SELECTED)")
		default:
			line = datasetStyle.Render(line)
		}
		fmt.Fprintln(w, "  >>> "+line)
	}
	return nil
}

func isSelected(set map[string]struct{}, name string) bool {
	_, ok := set[name]
	return ok
}
