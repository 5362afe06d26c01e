package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/emsolve/internal/rlgc"
	"github.com/san-kum/emsolve/internal/sweep"
)

func point(i int, f float64) sweep.Point {
	return sweep.Point{Index: i, Frequency: f, Params: rlgc.NewParameters(1, 300e-9, 0, 150e-12, f)}
}

func TestModel_Progress(t *testing.T) {
	var m tea.Model = newModel("sweep", 2, nil)

	m, _ = m.Update(progressMsg{done: 1, total: 2, point: point(0, 1e9)})
	view := m.View()
	if !strings.Contains(view, "1/2") || !strings.Contains(view, "1 GHz") {
		t.Errorf("unexpected view:\n%s", view)
	}

	m, cmd := m.Update(doneMsg{points: []sweep.Point{point(0, 1e9), point(1, 2e9)}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("done should quit the program")
	}
	if got := m.(model).points; len(got) != 2 {
		t.Errorf("expected 2 points, got %d", len(got))
	}
}

func TestModel_Abort(t *testing.T) {
	canceled := false
	var m tea.Model = newModel("sweep", 3, func() { canceled = true })

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !canceled || !m.(model).aborted {
		t.Error("q should cancel the sweep")
	}
}

func TestModel_Error(t *testing.T) {
	var m tea.Model = newModel("sweep", 1, nil)
	m, _ = m.Update(doneMsg{err: errors.New("solve failed")})
	if !strings.Contains(m.View(), "solve failed") {
		t.Errorf("error not shown:\n%s", m.View())
	}
}
