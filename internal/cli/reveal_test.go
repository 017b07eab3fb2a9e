package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/mazer/pkg/cue"
	"github.com/matzehuels/mazer/pkg/errors"
	"github.com/matzehuels/mazer/pkg/maze"
	"github.com/matzehuels/mazer/pkg/reveal"
	"github.com/matzehuels/mazer/pkg/style"
)

func corridor() *maze.Snapshot {
	d := maze.NewDirections
	return maze.NewSnapshot([]maze.Cell{
		{X: 0, Y: 0, Topology: maze.Orthogonal, IsStart: true, OnSolutionPath: true, Linked: d(maze.Right)},
		{X: 1, Y: 0, Topology: maze.Orthogonal, OnSolutionPath: true, Distance: 1, Linked: d(maze.Left, maze.Right)},
		{X: 2, Y: 0, Topology: maze.Orthogonal, IsGoal: true, OnSolutionPath: true, Distance: 2, Linked: d(maze.Left)},
	})
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// newTestModel returns a model on a manual clock whose messages are
// collected instead of sent to a program.
func newTestModel(frames []*maze.Snapshot) (*revealModel, *reveal.ManualScheduler, *[]tea.Msg) {
	sched := reveal.NewManualScheduler()
	m := newRevealModel(corridor(), style.NewResolver(style.OptionsFor(corridor())), 1, cue.Silent, frames,
		reveal.WithScheduler(sched))
	var msgs []tea.Msg
	m.bind(func(msg tea.Msg) { msgs = append(msgs, msg) })
	return m, sched, &msgs
}

func TestRevealModelReveal(t *testing.T) {
	m, sched, msgs := newTestModel(nil)

	m.Update(key(" "))
	if m.total != 3 {
		t.Fatalf("total = %d, want 3", m.total)
	}

	sched.Advance(time.Hour)
	if len(*msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(*msgs))
	}
	for _, msg := range *msgs {
		m.Update(msg)
	}
	if len(m.revealed) != 3 || m.status != "solved" {
		t.Errorf("revealed = %d, status = %q", len(m.revealed), m.status)
	}

	m.Update(key("c"))
	if len(m.revealed) != 0 || m.status != "cancelled" {
		t.Errorf("after cancel: revealed = %d, status = %q", len(m.revealed), m.status)
	}
}

func TestRevealModelStop(t *testing.T) {
	m, sched, msgs := newTestModel(nil)

	m.Update(key(" "))
	sched.Advance(0)
	for _, msg := range *msgs {
		m.Update(msg)
	}
	m.Update(key("x"))
	if !strings.HasPrefix(m.status, "stopped after 1") {
		t.Errorf("status = %q, want stopped after 1", m.status)
	}
	if m.anim.State() != reveal.Cancelled {
		t.Errorf("State() = %v, want Cancelled", m.anim.State())
	}
	if len(m.revealed) != 1 {
		t.Errorf("revealed = %d, want 1 kept after stop", len(m.revealed))
	}
}

func TestRevealModelPlaybackWithoutFrames(t *testing.T) {
	m, _, _ := newTestModel(nil)
	m.Update(key("p"))
	if m.status != "no generation steps loaded" {
		t.Errorf("status = %q", m.status)
	}
}

func TestRevealModelFrames(t *testing.T) {
	step := maze.NewSnapshot([]maze.Cell{{X: 0, Y: 0, Topology: maze.Orthogonal, IsActive: true}})
	m, _, _ := newTestModel([]*maze.Snapshot{step, corridor()})

	m.Update(frameMsg{index: 0})
	if m.current() != step {
		t.Error("current() should show the first frame")
	}
	if !strings.Contains(m.View(), "@") {
		t.Error("View() should mark the active cell")
	}
	m.Update(playEndMsg{})
	if m.current() != m.snap || m.status != "playback finished" {
		t.Errorf("after playback: status = %q", m.status)
	}
}

func TestRevealModelQuit(t *testing.T) {
	m, _, _ := newTestModel(nil)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestRenderGrid(t *testing.T) {
	s := corridor()
	out := renderGrid(s, style.NewResolver(style.OptionsFor(s)), nil)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if !strings.Contains(out, "S") || !strings.Contains(out, "G") {
		t.Errorf("grid should mark start and goal: %q", out)
	}
}

func TestReadFrames(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "steps.json")
	data := `[{"cells":[{"x":0,"y":0,"mazeType":"Orthogonal"}]}, [{"x":0,"y":0,"mazeType":"Orthogonal","isStart":true}]]`
	if err := os.WriteFile(good, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	frames, err := readFrames(good)
	if err != nil {
		t.Fatalf("readFrames: %v", err)
	}
	if len(frames) != 2 || frames[1].Len() != 1 {
		t.Errorf("frames = %d", len(frames))
	}

	bad := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(bad, []byte("{"), 0o644)
	if _, err := readFrames(bad); !errors.Is(err, errors.ErrCodeInvalidSnapshot) {
		t.Errorf("bad file: err = %v", err)
	}
	if _, err := readFrames(filepath.Join(dir, "missing.json")); !errors.IsNotFound(err) {
		t.Errorf("missing file: err = %v", err)
	}
}
