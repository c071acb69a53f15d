package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubetwist"
	"github.com/SeamusWaldron/cubetwist/internal/sessionlog"
)

var replayCmd = &cobra.Command{
	Use:   "replay [log-file]",
	Short: "Replay a recorded session log",
	Long: `Replay a session log written by 'cubetwist play' with session_logs on.

If no log file is specified, lists available log files.

Usage:
  cubetwist replay                    # List available logs
  cubetwist replay <log-file>         # Replay specific log
  cubetwist replay --speed 2.0        # Replay at 2x speed
  cubetwist replay --step             # Step through events manually
  cubetwist replay --print <log-file> # Print the final state only`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

var (
	replaySpeed float64
	replayStep  bool
	replayPrint bool
)

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Float64VarP(&replaySpeed, "speed", "s", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVarP(&replayStep, "step", "t", false, "Step through events manually")
	replayCmd.Flags().BoolVar(&replayPrint, "print", false, "Print the final state without the TUI")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return listLogs(cfg.LogDir)
	}

	logPath := args[0]
	if !filepath.IsAbs(logPath) && filepath.Dir(logPath) == "." {
		logPath = filepath.Join(cfg.LogDir, logPath)
	}

	log, err := sessionlog.Load(logPath)
	if err != nil {
		return fmt.Errorf("failed to load log: %w", err)
	}

	if replayPrint {
		return printReplay(log)
	}

	model, err := newReplayModel(log, replaySpeed, replayStep)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("replay error: %w", err)
	}
	return nil
}

func listLogs(logDir string) error {
	logs, err := sessionlog.List(logDir)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Println("No log files found. Enable session_logs and play with: cubetwist play")
		return nil
	}

	fmt.Println("Available log files:")
	fmt.Println()
	for _, l := range logs {
		fmt.Printf("  %s\n", l)
	}
	fmt.Println()
	fmt.Println("Usage: cubetwist replay <filename>")
	return nil
}

func printReplay(log *sessionlog.Log) error {
	moves, err := log.AppliedMoves()
	if err != nil {
		return err
	}
	size := log.Size
	for _, e := range log.Events {
		if e.EventType == sessionlog.EventReset && e.Size != 0 {
			size = e.Size
		}
	}

	p, err := cubetwist.NewPuzzle(size)
	if err != nil {
		return err
	}
	cubetwist.ApplyAll(p, moves)

	fmt.Printf("Created: %s\n", log.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Events:  %d\n", len(log.Events))
	fmt.Printf("Moves since last reset: %d\n\n", len(moves))
	fmt.Print(renderNet(cubetwist.Net(p, cubetwist.Resolve(cubetwist.DefaultCamera()))))
	fmt.Printf("Solved: %v\n", cubetwist.IsSolved(p))
	return nil
}

// Replay model
type replayModel struct {
	log           *sessionlog.Log
	eventIndex    int
	speed         float64
	stepMode      bool
	paused        bool
	puzzle        *cubetwist.Puzzle
	moves         []cubetwist.Move
	solveTime     string
	elapsed       time.Duration
	lastEventTime int64
	quitting      bool

	// gen invalidates event ticks scheduled before a pause or restart.
	gen int
}

func newReplayModel(log *sessionlog.Log, speed float64, stepMode bool) (*replayModel, error) {
	if speed <= 0 {
		speed = 1
	}
	p, err := cubetwist.NewPuzzle(log.Size)
	if err != nil {
		return nil, fmt.Errorf("log size: %w", err)
	}
	return &replayModel{
		log:      log,
		speed:    speed,
		stepMode: stepMode,
		paused:   stepMode,
		puzzle:   p,
	}, nil
}

type replayEventMsg struct{ gen int }

func (m *replayModel) Init() tea.Cmd {
	if m.stepMode {
		return nil
	}
	return m.scheduleNextEvent()
}

func (m *replayModel) scheduleNextEvent() tea.Cmd {
	if m.eventIndex >= len(m.log.Events) {
		return nil
	}

	event := m.log.Events[m.eventIndex]
	m.gen++
	gen := m.gen

	var delay time.Duration
	if m.lastEventTime > 0 {
		delayMs := event.ElapsedMs - m.lastEventTime
		delay = time.Duration(float64(delayMs)/m.speed) * time.Millisecond
	}

	return tea.Tick(delay, func(time.Time) tea.Msg {
		return replayEventMsg{gen: gen}
	})
}

func (m *replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "n":
			if m.paused {
				m.step()
			}

		case "p":
			if m.stepMode {
				break
			}
			m.paused = !m.paused
			if !m.paused {
				return m, m.scheduleNextEvent()
			}

		case "r":
			m.restart()
			if !m.paused {
				return m, m.scheduleNextEvent()
			}

		case "+", "=":
			m.speed = min(m.speed*2, 16)

		case "-":
			m.speed = max(m.speed/2, 0.25)
		}

	case replayEventMsg:
		if !m.paused && msg.gen == m.gen {
			m.step()
			return m, m.scheduleNextEvent()
		}
	}

	return m, nil
}

func (m *replayModel) step() {
	if m.eventIndex >= len(m.log.Events) {
		return
	}
	m.processEvent(m.log.Events[m.eventIndex])
	m.eventIndex++
}

func (m *replayModel) restart() {
	m.eventIndex = 0
	m.puzzle = cubetwist.MustPuzzle(m.log.Size)
	m.moves = nil
	m.solveTime = ""
	m.elapsed = 0
	m.lastEventTime = 0
}

func (m *replayModel) processEvent(event sessionlog.Event) {
	m.lastEventTime = event.ElapsedMs
	m.elapsed = time.Duration(event.ElapsedMs) * time.Millisecond

	switch event.EventType {
	case sessionlog.EventMoveApplied:
		if event.Move == nil {
			return
		}
		mv, err := event.Move.Move()
		if err != nil {
			return
		}
		cubetwist.Apply(m.puzzle, mv)
		m.moves = append(m.moves, mv)

	case sessionlog.EventReset:
		size := event.Size
		if size == 0 {
			size = m.puzzle.Size()
		}
		if p, err := cubetwist.NewPuzzle(size); err == nil {
			m.puzzle = p
		}
		m.moves = nil
		m.solveTime = ""

	case sessionlog.EventSolved:
		m.solveTime = event.SolveTime
	}
}

func (m *replayModel) View() string {
	if m.quitting {
		return "Replay ended.\n"
	}

	var b strings.Builder

	n := m.puzzle.Size()
	b.WriteString(titleStyle.Render(fmt.Sprintf("cubetwist replay %dx%dx%d", n, n, n)))
	b.WriteString("\n\n")

	progress := fmt.Sprintf("Event %d/%d", m.eventIndex, len(m.log.Events))
	if m.paused {
		progress += " [PAUSED]"
	}
	if m.stepMode {
		progress += " [STEP MODE]"
	}
	b.WriteString(statusStyle.Render(progress))
	b.WriteString(fmt.Sprintf(" (%.2gx speed)\n", m.speed))
	b.WriteString(fmt.Sprintf("Time: %s\n\n", formatDuration(m.elapsed)))

	b.WriteString(renderNet(cubetwist.Net(m.puzzle, cubetwist.Resolve(cubetwist.DefaultCamera()))))
	b.WriteString("\n")

	if m.solveTime != "" {
		b.WriteString(fmt.Sprintf("Solved in %s\n", timerStyle.Render(m.solveTime)))
	}
	b.WriteString(fmt.Sprintf("Moves: %d\n", len(m.moves)))
	if len(m.moves) > 0 {
		start := 0
		if len(m.moves) > 12 {
			start = len(m.moves) - 12
			b.WriteString("... ")
		}
		var names []string
		for _, mv := range m.moves[start:] {
			names = append(names, mv.String())
		}
		b.WriteString(moveStyle.Render(strings.Join(names, " ")))
		b.WriteString("\n")
	}

	if m.eventIndex < len(m.log.Events) {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(fmt.Sprintf("Next: %s", m.log.Events[m.eventIndex].EventType)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "SPACE/n=next  p=pause  r=restart  +/-=speed  q=quit"
	if m.stepMode {
		help = "SPACE/n=next event  r=restart  q=quit"
	}
	b.WriteString(statusStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}
