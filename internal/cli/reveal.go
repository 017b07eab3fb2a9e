package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mazer/pkg/cue"
	"github.com/matzehuels/mazer/pkg/errors"
	"github.com/matzehuels/mazer/pkg/maze"
	"github.com/matzehuels/mazer/pkg/pipeline"
	"github.com/matzehuels/mazer/pkg/reveal"
	"github.com/matzehuels/mazer/pkg/style"
)

// revealCommand animates a snapshot's solution path in the terminal.
func (c *CLI) revealCommand() *cobra.Command {
	var (
		stepsFile string
		speed     float64
		sound     bool
		bell      bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "reveal [snapshot.json]",
		Short: "Animate the solution path in the terminal",
		Long: `Animate the solution path in the terminal.

Cells are drawn as coloured blocks on their grid coordinates. The solution
is revealed from the start cell one step at a time.

Keys:
  space   start or restart the reveal
  x       stop, keeping what is revealed
  c       cancel and clear
  p       play the generation steps (--steps)
  q       quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.config.apply(cmd.Flags(), &opts)
			if !cmd.Flags().Changed("sound") {
				sound = c.config.Reveal.Sound
			}
			if !cmd.Flags().Changed("bell") {
				bell = c.config.Reveal.Bell
			}
			opts.Input = args[0]
			return c.runReveal(cmd.Context(), opts, stepsFile, speed, sound, bell)
		},
	}

	cmd.Flags().StringVar(&stepsFile, "steps", "", "JSON array of generation snapshots to play with 'p'")
	cmd.Flags().Float64Var(&speed, "speed", 0, "delay multiplier (default: derived from the cell size)")
	cmd.Flags().BoolVar(&sound, "sound", false, "click on every reveal step")
	cmd.Flags().BoolVar(&bell, "bell", false, "ring the terminal bell on every reveal step")
	renderFlags(cmd, &opts)
	cmd.Flags().StringVar(&opts.Palette, "palette", "", "heat-map palette")
	cmd.Flags().BoolVar(&opts.HeatMap, "heatmap", false, "colour cells by distance from the start")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background name or #rrggbb")
	registerCompletions(cmd)

	return cmd
}

func (c *CLI) runReveal(ctx context.Context, opts pipeline.Options, stepsFile string, speed float64, sound, bell bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	s, err := pipeline.Load(ctx, opts)
	if err != nil {
		return err
	}
	if s.Empty() {
		return errors.New(errors.ErrCodeInvalidSnapshot, "%s has no cells", opts.Input)
	}
	resolver, err := pipeline.NewResolver(s.Cells(), opts)
	if err != nil {
		return err
	}
	if speed <= 0 {
		m, err := pipeline.Fit(s, opts)
		if err != nil {
			return err
		}
		speed = reveal.SpeedFactor(m.CellSize)
	}

	var frames []*maze.Snapshot
	if stepsFile != "" {
		if frames, err = readFrames(stepsFile); err != nil {
			return err
		}
	}

	var cues []cue.Cue
	if sound {
		sp := cue.NewSpeaker(c.config.Reveal.Volume)
		if err := sp.Init(); err != nil {
			c.Logger.Warn("audio unavailable", "error", err)
		} else {
			defer sp.Close()
			cues = append(cues, sp)
		}
	}
	if bell {
		cues = append(cues, cue.NewBell(os.Stdout))
	}

	m := newRevealModel(s, resolver, speed, cue.Multi(cues...), frames)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	m.bind(p.Send)

	_, err = p.Run()
	m.anim.Cancel()
	m.player.Stop()
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func readFrames(path string) ([]*maze.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "steps %s", path)
		}
		return nil, err
	}
	var frames []*maze.Snapshot
	if err := json.Unmarshal(data, &frames); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode steps %s", path)
	}
	return frames, nil
}

// =============================================================================
// revealModel - bubbletea model for the terminal reveal
// =============================================================================

type (
	revealMsg  struct{ at maze.Coordinates }
	frameMsg   struct{ index int }
	playEndMsg struct{ err error }
)

// sender forwards messages into the running program. It is bound after
// the program is created.
type sender struct {
	send func(tea.Msg)
}

func (s *sender) Send(msg tea.Msg) {
	if s.send != nil {
		s.send(msg)
	}
}

type revealModel struct {
	snap     *maze.Snapshot
	resolver *style.Resolver
	speed    float64
	cue      cue.Cue

	anim   *reveal.Animator
	player *reveal.Player
	frames []*maze.Snapshot
	frame  int // index into frames while playing, -1 otherwise
	out    *sender

	revealed maze.CoordinateSet
	total    int
	status   string
}

func newRevealModel(s *maze.Snapshot, r *style.Resolver, speed float64, c cue.Cue, frames []*maze.Snapshot, opts ...reveal.Option) *revealModel {
	return &revealModel{
		snap:     s,
		resolver: r,
		speed:    speed,
		cue:      c,
		anim:     reveal.NewAnimator(opts...),
		player:   reveal.NewPlayer(),
		frames:   frames,
		frame:    -1,
		out:      &sender{},
		revealed: make(maze.CoordinateSet),
		status:   "ready",
	}
}

func (m *revealModel) bind(send func(tea.Msg)) {
	m.out.send = send
}

func (m *revealModel) Init() tea.Cmd {
	return nil
}

func (m *revealModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.anim.Cancel()
			m.player.Stop()
			return m, tea.Quit
		case " ", "enter":
			m.startReveal()
		case "x":
			n := m.anim.Stop()
			m.status = fmt.Sprintf("stopped after %d of %d", n, m.total)
		case "c":
			m.anim.Cancel()
			m.revealed = make(maze.CoordinateSet)
			m.status = "cancelled"
		case "p":
			m.startPlayback()
		}
	case revealMsg:
		m.revealed.Add(msg.at)
		m.status = fmt.Sprintf("revealing %d/%d", len(m.revealed), m.total)
		if len(m.revealed) >= m.total {
			m.status = "solved"
		}
	case frameMsg:
		m.frame = msg.index
		m.status = fmt.Sprintf("generation step %d/%d", msg.index+1, len(m.frames))
	case playEndMsg:
		m.frame = -1
		if msg.err != nil {
			m.status = "playback stopped"
		} else {
			m.status = "playback finished"
		}
	}
	return m, nil
}

func (m *revealModel) startReveal() {
	m.player.Stop()
	m.frame = -1
	m.revealed = make(maze.CoordinateSet)
	m.total = m.anim.Start(m.snap.Cells(), m.speed, reveal.Callbacks{
		OnReveal: func(at maze.Coordinates) { m.out.Send(revealMsg{at: at}) },
		OnCue:    m.cue.Play,
	})
	m.status = fmt.Sprintf("revealing 0/%d", m.total)
	if m.total == 0 {
		m.status = "no solution path"
	}
}

func (m *revealModel) startPlayback() {
	if len(m.frames) == 0 {
		m.status = "no generation steps loaded"
		return
	}
	m.anim.Cancel()
	m.revealed = make(maze.CoordinateSet)
	frames := m.frames
	go func() {
		err := m.player.Play(context.Background(), frames, func(i int, _ *maze.Snapshot) {
			m.out.Send(frameMsg{index: i})
		})
		m.out.Send(playEndMsg{err: err})
	}()
}

// current is the snapshot on screen.
func (m *revealModel) current() *maze.Snapshot {
	if m.frame >= 0 && m.frame < len(m.frames) {
		return m.frames[m.frame]
	}
	return m.snap
}

func (m *revealModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s maze · %d cells", m.snap.Topology(), m.snap.Len())))
	b.WriteString("\n\n")
	b.WriteString(renderGrid(m.current(), m.resolver, m.revealed))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(m.status))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("space reveal  x stop  c cancel  p play steps  q quit"))
	b.WriteString("\n")
	return b.String()
}

// renderGrid draws one two-column block per cell at its grid coordinates.
func renderGrid(s *maze.Snapshot, r *style.Resolver, revealed maze.CoordinateSet) string {
	var b strings.Builder
	for y := range s.Rows() {
		for x := range s.Columns() {
			cell, ok := s.Lookup(maze.Coordinates{X: x, Y: y})
			if !ok {
				b.WriteString("  ")
				continue
			}
			mark := "  "
			switch {
			case cell.IsStart:
				mark = "S "
			case cell.IsGoal:
				mark = "G "
			case cell.IsActive:
				mark = "@ "
			}
			fill := r.Resolve(cell, revealed)
			b.WriteString(lipgloss.NewStyle().
				Background(lipgloss.Color(fill.Hex())).
				Foreground(lipgloss.Color("0")).
				Render(mark))
		}
		b.WriteString("\n")
	}
	return b.String()
}
