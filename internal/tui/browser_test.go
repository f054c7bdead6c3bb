package tui

import (
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwiater/isoeval/internal/config"
	"github.com/mwiater/isoeval/internal/results"
)

func sampleReports() []results.DatasetReport {
	p := results.Params{Vars: 5, Txns: 5, Events: 5}
	key := results.ExperimentKey{Dataset: "galera", Params: p}
	return []results.DatasetReport{
		results.Aggregate("galera", []results.Pair{{
			Key:       key,
			Reference: results.ReferenceRecord{Accepted: false, DurationMs: 1200},
			Compared:  results.ComparedRecord{Accepted: false, TotalMs: 1000},
		}}),
		results.Aggregate("roachdb", []results.Pair{{
			Key:       results.ExperimentKey{Dataset: "roachdb", Params: p},
			Reference: results.ReferenceRecord{Accepted: true, DurationMs: 10},
			Compared:  results.ComparedRecord{Accepted: true, TotalMs: 20},
		}}),
	}
}

func TestBrowser_StateTransitions_And_View(t *testing.T) {
	reports := sampleReports()
	calls := 0
	evaluate := func(config.Config, *log.Logger) ([]results.DatasetReport, error) {
		calls++
		return reports, nil
	}
	m := initialModel(config.Config{Datasets: []string{"galera", "roachdb"}}, evaluate, nil)

	// Set a window size so View() renders
	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.state != viewLoading {
		t.Fatalf("expected loading state; got %v", m.state)
	}
	if !strings.Contains(m.View(), "Reading logs") {
		t.Fatalf("expected loading view, got %q", m.View())
	}

	// Run the evaluation command directly and deliver its message
	msg := evaluateCmd(m.config, m.evaluate, m.logger)()
	if calls != 1 {
		t.Fatalf("expected one evaluation, got %d", calls)
	}
	m2, _ := m.Update(msg)
	m = m2.(*model)
	if m.state != viewDatasetSelector || len(m.datasetList.Items()) != 2 {
		t.Fatalf("expected selector with 2 items; state=%v count=%d", m.state, len(m.datasetList.Items()))
	}
	first := m.datasetList.Items()[0].(item)
	if first.title != "galera" || !strings.Contains(first.desc, "TP 1") {
		t.Fatalf("unexpected first item: %+v", first)
	}

	// Open the first dataset
	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = m2.(*model)
	if m.state != viewReport {
		t.Fatalf("expected report view; got %v", m.state)
	}
	if !strings.Contains(m.rendered, "|Positive|1|0|") {
		t.Fatalf("expected confusion matrix in report, got %q", m.rendered)
	}
	if !strings.Contains(m.View(), "Dataset: galera") {
		t.Fatalf("expected dataset header in view")
	}

	// Back to the selector
	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = m2.(*model)
	if m.state != viewDatasetSelector {
		t.Fatalf("expected selector after esc; got %v", m.state)
	}
}

func TestBrowser_SelectWhileFiltered(t *testing.T) {
	evaluate := func(config.Config, *log.Logger) ([]results.DatasetReport, error) {
		return sampleReports(), nil
	}
	m := initialModel(config.Config{}, evaluate, nil)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m2, _ := m.Update(evaluateCmd(m.config, m.evaluate, m.logger)())
	m = m2.(*model)

	m.datasetList.SetFilterText("roachdb")
	if m.datasetList.FilterState() != list.FilterApplied {
		t.Fatalf("expected an applied filter, got %v", m.datasetList.FilterState())
	}
	if sel, ok := m.datasetList.SelectedItem().(item); !ok || sel.title != "roachdb" {
		t.Fatalf("expected roachdb to be selected, got %+v", m.datasetList.SelectedItem())
	}

	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = m2.(*model)
	if m.state != viewReport {
		t.Fatalf("expected report view; got %v", m.state)
	}
	if got := m.reports[m.selected].Dataset; got != "roachdb" {
		t.Fatalf("opened report for dataset %q, want roachdb", got)
	}
	if !strings.Contains(m.View(), "Dataset: roachdb") {
		t.Fatalf("expected roachdb header in view")
	}
}

func TestBrowser_ErrorView(t *testing.T) {
	m := initialModel(config.Config{}, nil, nil)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})

	m2, _ := m.Update(reportsErr(errors.New("no reference record for x/5_5_5/hist-0")))
	m = m2.(*model)
	if !strings.Contains(m.View(), "no reference record") {
		t.Fatalf("expected error in view, got %q", m.View())
	}
}

func TestBrowser_Quit(t *testing.T) {
	m := initialModel(config.Config{}, nil, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}
