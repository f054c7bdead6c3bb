// internal/tui/browser.go
// Package tui provides an interactive terminal browser for evaluated datasets.
package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/isoeval/internal/config"
	"github.com/mwiater/isoeval/internal/results"
)

// viewState represents the current state of the browser.
type viewState int

const (
	// viewLoading is shown while logs are parsed and aggregated.
	viewLoading viewState = iota
	// viewDatasetSelector lists the evaluated datasets.
	viewDatasetSelector
	// viewReport shows the tables of the selected dataset.
	viewReport
)

// evaluateFunc produces the dataset reports shown by the browser.
type evaluateFunc func(config.Config, *log.Logger) ([]results.DatasetReport, error)

// model is the Bubble Tea model of the report browser.
type model struct {
	config   config.Config
	evaluate evaluateFunc
	logger   *log.Logger
	state    viewState
	err      error

	datasetList list.Model
	viewport    viewport.Model
	spinner     spinner.Model
	reports     []results.DatasetReport
	selected    int
	rendered    string

	width, height int
	startTime     time.Time
}

// item is a dataset entry in the selector list.
type item struct {
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

// reportsReadyMsg carries the finished evaluation.
type reportsReadyMsg struct {
	reports []results.DatasetReport
}

// reportsErr is sent when the evaluation fails.
type reportsErr error

func initialModel(cfg config.Config, evaluate evaluateFunc, logger *log.Logger) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	datasetList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	datasetList.Title = "Select a Dataset"

	return &model{
		config:      cfg,
		evaluate:    evaluate,
		logger:      logger,
		state:       viewLoading,
		datasetList: datasetList,
		viewport:    viewport.New(100, 5),
		spinner:     s,
		startTime:   time.Now(),
	}
}

// evaluateCmd runs the evaluation off the UI loop.
func evaluateCmd(cfg config.Config, evaluate evaluateFunc, logger *log.Logger) tea.Cmd {
	return func() tea.Msg {
		reports, err := evaluate(cfg, logger)
		if err != nil {
			return reportsErr(err)
		}
		return reportsReadyMsg{reports: reports}
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, evaluateCmd(m.config, m.evaluate, m.logger))
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		filtering := m.state == viewDatasetSelector && m.datasetList.FilterState() == list.Filtering
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if !filtering {
				return m, tea.Quit
			}
		case "esc", "tab":
			if m.state == viewReport {
				m.state = viewDatasetSelector
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.datasetList.SetSize(msg.Width-2, msg.Height-4)
		headerHeight := 3
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight

	case reportsReadyMsg:
		m.reports = msg.reports
		items := make([]list.Item, len(msg.reports))
		for i, r := range msg.reports {
			c := r.Confusion
			items[i] = item{
				title: r.Dataset,
				desc:  fmt.Sprintf("%d histories, TP %d FP %d TN %d FN %d", r.Pairs(), c.TruePos, c.FalsePos, c.TrueNeg, c.FalseNeg),
			}
		}
		m.state = viewDatasetSelector
		return m, m.datasetList.SetItems(items)

	case reportsErr:
		m.err = msg
		return m, nil
	}

	switch m.state {
	case viewLoading:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case viewDatasetSelector:
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" && m.datasetList.FilterState() != list.Filtering {
			if _, ok := m.datasetList.SelectedItem().(item); ok {
				// Index is relative to the filtered view; reports follow the full item list.
				m.selected = m.datasetList.GlobalIndex()
				m.rendered = renderReport(m.reports[m.selected])
				m.viewport.SetContent(m.rendered)
				m.viewport.GotoTop()
				m.state = viewReport
				return m, nil
			}
		}
		m.datasetList, cmd = m.datasetList.Update(msg)
		cmds = append(cmds, cmd)

	case viewReport:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	switch m.state {
	case viewLoading:
		timer := fmt.Sprintf("%.1f", time.Since(m.startTime).Seconds())
		return fmt.Sprintf("\n  %s Reading logs... %ss\n", m.spinner.View(), timer)
	case viewDatasetSelector:
		return lipgloss.NewStyle().Margin(1, 2).Render(m.datasetList.View())
	case viewReport:
		return m.reportView()
	default:
		return "Unknown state"
	}
}

// reportView renders the header of the selected dataset above the scrollable tables.
func (m *model) reportView() string {
	headerStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	r := m.reports[m.selected]
	status := lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render(fmt.Sprintf("Dataset: %s", r.Dataset)),
		headerStyle.MarginLeft(1).Render(fmt.Sprintf("Histories: %d", r.Pairs())),
	)
	help := lipgloss.NewStyle().Faint(true).Render(" (esc to go back, q to quit)")
	return status + help + "\n\n" + m.viewport.View()
}

// renderReport renders the confusion matrix and latency tables of one dataset.
func renderReport(r results.DatasetReport) string {
	var sb strings.Builder
	if err := results.Write(&sb, []results.DatasetReport{r}, true); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return sb.String()
}

// Start runs the browser until the user quits.
func Start(cfg config.Config, logger *log.Logger) error {
	if cfg.Debug {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			return fmt.Errorf("could not open log file: %w", err)
		}
		defer f.Close()
	}

	m := initialModel(cfg, results.Evaluate, logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
