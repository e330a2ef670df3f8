// Package tui shows a stepping run live in the terminal while the
// scheme advances in a background goroutine.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkvern/pdestep/internal/viz"
)

// Snapshot is one accepted (time, state) pair streamed from the
// stepping loop.
type Snapshot struct {
	T     float64
	State []float64
}

type doneMsg struct{ err error }

type model struct {
	scheme  string
	endTime float64
	ch      <-chan Snapshot
	last    Snapshot
	steps   int
	done    bool
	err     error
}

func (m model) Init() tea.Cmd { return m.wait() }

func (m model) wait() tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-m.ch
		if !ok {
			return doneMsg{}
		}
		return snap
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case Snapshot:
		m.last = msg
		m.steps++
		return m, m.wait()
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	status := "stepping"
	if m.done {
		status = "finished"
	}
	return fmt.Sprintf(
		"%s  t=%.4f / %g  (%d records)  [%s]\n\n%s\n%s\n\npress q to quit\n",
		m.scheme, m.last.T, m.endTime, m.steps, status,
		viz.Sparkline(m.last.State, 60),
		viz.ProgressBar(m.last.T/m.endTime, 60),
	)
}

// Run displays snapshots until ch closes or the user quits. The
// producer must close ch when stepping ends.
func Run(scheme string, endTime float64, ch <-chan Snapshot) error {
	m := model{scheme: scheme, endTime: endTime, ch: ch}
	_, err := tea.NewProgram(m).Run()
	return err
}
