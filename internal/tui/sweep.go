// Package tui shows sweep progress with Bubble Tea.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/emsolve/internal/export"
	"github.com/san-kum/emsolve/internal/sweep"
	"github.com/san-kum/emsolve/internal/viz"
)

var spinner = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type progressMsg struct {
	done, total int
	point       sweep.Point
}

type doneMsg struct {
	points []sweep.Point
	err    error
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	title    string
	total    int
	done     int
	frame    int
	start    time.Time
	z0       []float64
	last     *sweep.Point
	points   []sweep.Point
	err      error
	finished bool
	aborted  bool
	cancel   context.CancelFunc
}

func newModel(title string, total int, cancel context.CancelFunc) model {
	return model{title: title, total: total, start: time.Now(), cancel: cancel}
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case tickMsg:
		if m.finished {
			return m, nil
		}
		m.frame++
		return m, tick()
	case progressMsg:
		m.done = msg.done
		m.total = msg.total
		pt := msg.point
		m.last = &pt
		m.z0 = append(m.z0, pt.Params.Z0)
	case doneMsg:
		m.finished = true
		m.points = msg.points
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var s strings.Builder
	s.WriteString(viz.Title.Render(m.title) + "\n\n")

	status := spinner[m.frame%len(spinner)]
	if m.finished {
		status = viz.Good.Render("✓")
		if m.err != nil {
			status = viz.Bad.Render("✗")
		}
	}
	s.WriteString(fmt.Sprintf("%s %s %d/%d  %s\n", status, viz.ProgressBar(m.done, m.total, 40),
		m.done, m.total, viz.Subtle.Render(time.Since(m.start).Round(100*time.Millisecond).String())))

	if m.last != nil {
		p := m.last.Params
		s.WriteString(fmt.Sprintf("\n%s  Z0 %.2f Ω  εeff %.3f\n",
			viz.Value.Render(export.FormatFrequency(m.last.Frequency)), p.Z0, p.EpsilonEff))
	}
	if len(m.z0) > 1 {
		s.WriteString(viz.Subtle.Render("Z0 ") + viz.Sparkline(m.z0, 40) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + viz.Bad.Render(m.err.Error()) + "\n")
	}
	s.WriteString("\n" + viz.Subtle.Render("q to abort") + "\n")
	return s.String()
}

// RunFunc runs a sweep and reports each finished point through progress.
type RunFunc func(ctx context.Context, progress func(done, total int, p sweep.Point)) ([]sweep.Point, error)

// RunSweep drives run while rendering its progress. Aborting from the
// keyboard cancels ctx and returns context.Canceled.
func RunSweep(ctx context.Context, title string, total int, run RunFunc) ([]sweep.Point, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newModel(title, total, cancel))
	go func() {
		points, err := run(ctx, func(done, total int, pt sweep.Point) {
			p.Send(progressMsg{done: done, total: total, point: pt})
		})
		p.Send(doneMsg{points: points, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(model)
	if m.aborted {
		return nil, context.Canceled
	}
	return m.points, m.err
}
