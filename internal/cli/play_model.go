package cli

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/SeamusWaldron/cubetwist"
	"github.com/SeamusWaldron/cubetwist/internal/metrics"
	"github.com/SeamusWaldron/cubetwist/internal/recorder"
	"github.com/SeamusWaldron/cubetwist/internal/sessionlog"
	"github.com/SeamusWaldron/cubetwist/internal/storage"
)

const (
	frameInterval = 16 * time.Millisecond
	orbitStep     = math.Pi / 12

	// Terminal cells are converted to pixels for the drag threshold.
	pxPerCol = 6.0
	pxPerRow = 12.0

	// The net starts below the title line and a blank line.
	netTop = 2
)

// Messages
type tickMsg time.Time
type smartMoveMsg struct {
	move cubetwist.Move
	face string
}
type smartStatusMsg struct {
	text      string
	connected bool
	err       error
}

type dragStart struct {
	x, y int
	pos  cubetwist.Vec3
}

// playDeps are the optional collaborators of the play screen. Any of them
// may be nil.
type playDeps struct {
	db        *storage.DB
	session   *recorder.Session
	stateFile *recorder.StateFile
	events    *sessionlog.Logger
	metrics   *metrics.Metrics
	logger    *slog.Logger
	player    string
	smartCube bool
}

// Model
type playModel struct {
	ctx  context.Context
	game *cubetwist.Game
	cam  *cubetwist.OrbitCamera
	keys playKeys
	help help.Model
	deps playDeps

	// Sources of queued non-scramble moves, oldest first. The scheduler is
	// FIFO so they line up with applied moves.
	sources []string
	// Moves applied since the last reset.
	history []cubetwist.Move

	lastTick time.Time
	drag     *dragStart
	lastMove string
	status   string
	smart    string
	err      error

	// Win dialog
	form        *huh.Form
	formStarted bool
	name        string
	solvedIn    time.Duration
	debugWin    bool
	ranking     []cubetwist.Score
	rankPos     int

	quitting bool
}

func newPlayModel(ctx context.Context, game *cubetwist.Game, deps playDeps) *playModel {
	if deps.events == nil {
		deps.events = sessionlog.NewLogger()
	}
	if deps.logger == nil {
		deps.logger = slog.Default()
	}

	m := &playModel{
		ctx:      ctx,
		game:     game,
		cam:      cubetwist.DefaultCamera(),
		keys:     newPlayKeys(),
		help:     help.New(),
		deps:     deps,
		lastTick: time.Now(),
		rankPos:  -1,
	}

	game.OnMoveApplied(func(mv cubetwist.Move, _ []int) { m.moveApplied(mv) })
	game.OnSettled(func() {
		m.deps.events.LogSettled()
		m.deps.metrics.Settled()
	})
	game.OnTimerStarted(func() { m.status = "Timer started" })
	game.OnSolved(m.solved)
	game.OnReset(func(size int) {
		m.sources = nil
		m.history = nil
		m.deps.events.LogReset(size)
	})

	m.loadRanking()
	return m
}

func (m *playModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *playModel) tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *playModel) scoreStore() cubetwist.ScoreStore {
	if m.deps.db == nil {
		return nil
	}
	return storage.NewScoreRepository(m.deps.db, m.game.Size())
}

func (m *playModel) loadRanking() {
	m.ranking = nil
	m.rankPos = -1
	store := m.scoreStore()
	if store == nil {
		return
	}
	ranking, err := store.Rank(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	m.ranking = ranking
}

func (m *playModel) moveApplied(mv cubetwist.Move) {
	source := storage.SourceScramble
	if !m.game.Scrambling() {
		source = storage.SourcePlayer
		if len(m.sources) > 0 {
			source = m.sources[0]
			m.sources = m.sources[1:]
		}
	}

	m.history = append(m.history, mv)
	m.lastMove = mv.String()
	m.deps.events.LogMoveApplied(mv)
	m.deps.metrics.MoveApplied(mv, source)

	if source != storage.SourceScramble && m.deps.session != nil {
		if err := m.deps.session.RecordMove(m.ctx, mv, source); err != nil {
			m.err = err
		}
	}
}

func (m *playModel) solved(elapsed time.Duration) {
	m.solvedIn = elapsed
	m.status = "Solved!"
	if !m.debugWin {
		m.deps.metrics.Solved(m.game.Size(), elapsed)
	}
	m.deps.events.LogSolved(cubetwist.FormatElapsed(elapsed))

	m.name = m.deps.player
	m.form = newNameForm(&m.name, cubetwist.FormatElapsed(elapsed))
	m.formStarted = false
}

func newNameForm(name *string, solveTime string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Solved in " + solveTime).
				Description("Name for the ranking").
				Placeholder(cubetwist.DefaultPlayerName).
				CharLimit(12).
				Value(name),
		),
	).WithShowHelp(false).WithWidth(40)
}

// startForm returns the init command of a freshly opened win dialog.
func (m *playModel) startForm() tea.Cmd {
	if m.form == nil || m.formStarted {
		return nil
	}
	m.formStarted = true
	return m.form.Init()
}

// finishGame saves the score when save is set and closes the recording.
func (m *playModel) finishGame(save bool) {
	name := cubetwist.PlayerName(m.name)
	if save {
		if store := m.scoreStore(); store != nil {
			ranking, err := store.SaveScore(m.ctx, name, cubetwist.FormatElapsed(m.solvedIn))
			if err != nil {
				m.err = err
			} else {
				m.ranking = ranking
				m.rankPos = rankIndex(ranking, name, cubetwist.FormatElapsed(m.solvedIn))
			}
		}
		m.deps.player = name
	}

	if m.deps.session != nil && m.deps.session.State() == recorder.StateRecording {
		if err := m.deps.session.End(m.ctx, m.solvedIn, !m.debugWin, name); err != nil {
			m.err = err
		}
	} else if m.deps.stateFile != nil {
		_ = m.deps.stateFile.SetLastGame(m.game.Size(), name)
	}
	m.debugWin = false
}

func rankIndex(ranking []cubetwist.Score, name, t string) int {
	for i, s := range ranking {
		if s.Name == name && s.Time == t {
			return i
		}
	}
	return -1
}

// abandon closes an unfinished recording.
func (m *playModel) abandon() {
	if m.deps.session == nil || m.deps.session.State() != recorder.StateRecording {
		return
	}
	if err := m.deps.session.End(m.ctx, m.game.Elapsed(), false, ""); err != nil {
		m.err = err
	}
}

func (m *playModel) scramble() {
	if m.deps.smartCube {
		// The physical cube is scrambled by hand; arm the timer on it.
		if !m.game.MarkScrambled() {
			m.status = "Turn the cube to scramble it first"
			return
		}
		m.abandon()
		m.startRecording(append([]cubetwist.Move(nil), m.history...))
		return
	}

	if m.game.Scheduler().IsAnimating() {
		m.status = "Wait for the puzzle to settle"
		return
	}
	m.abandon()
	moves, err := m.game.Scramble()
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = "Scrambling"
	m.deps.events.LogScramble(m.game.Size(), len(moves))
	m.startRecording(moves)
}

func (m *playModel) startRecording(scramble []cubetwist.Move) {
	m.deps.metrics.Scrambled(m.game.Size())
	if m.deps.session == nil {
		return
	}
	if _, err := m.deps.session.Start(m.ctx, m.game.Size(), scramble); err != nil {
		m.err = err
	}
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := time.Time(msg)
		dt := now.Sub(m.lastTick)
		m.lastTick = now
		m.game.Tick(dt)
		m.deps.metrics.QueueDepth(m.game.Scheduler().Pending())
		return m, tea.Batch(m.tickCmd(), m.startForm())

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case smartMoveMsg:
		mv := m.game.Enqueue(msg.move)
		m.sources = append(m.sources, storage.SourceSmartCube)
		m.deps.events.LogMoveQueued(mv)
		m.smart = msg.face

	case smartStatusMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.status = msg.text
		}
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *playModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tickMsg); ok {
		return m, nil
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.finishGame(true)
		m.form = nil
	case huh.StateAborted:
		m.finishGame(false)
		m.form = nil
	}
	return m, cmd
}

func (m *playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	m.deps.events.LogKeyPress(k)
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.abandon()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Scramble):
		m.scramble()

	case key.Matches(msg, m.keys.Reset):
		m.abandon()
		m.game.Reset()
		m.status = ""
		if m.deps.smartCube {
			m.status = "Reset; solve the physical cube to match"
		}

	case key.Matches(msg, m.keys.Size):
		if m.deps.smartCube {
			m.status = "Smart cube play is 3x3x3 only"
			break
		}
		m.abandon()
		if err := m.game.SetSize(int(k[0] - '0')); err != nil {
			m.err = err
		}
		m.status = ""
		m.loadRanking()

	case key.Matches(msg, m.keys.Orbit):
		if k == "left" {
			m.cam.Orbit(-orbitStep)
		} else {
			m.cam.Orbit(orbitStep)
		}

	case key.Matches(msg, m.keys.Tilt):
		if k == "up" {
			m.cam.Tilt(-orbitStep)
		} else {
			m.cam.Tilt(orbitStep)
		}

	case key.Matches(msg, m.keys.Spin):
		if k == "," {
			m.cam.Spin(-orbitStep)
		} else {
			m.cam.Spin(orbitStep)
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.DebugWin):
		m.abandon()
		m.debugWin = true
		m.game.DebugWin()
		return m, m.startForm()

	default:
		if _, bound := m.game.Translator().Layout().Lookup(k); !bound {
			break
		}
		if mv, ok := m.game.HandleKey(k, m.cam); ok {
			m.sources = append(m.sources, storage.SourcePlayer)
			m.deps.events.LogMoveQueued(mv)
		} else {
			m.deps.metrics.InputDropped()
		}
	}
	return m, nil
}

func (m *playModel) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		size := m.game.Size()
		row, col, ok := netLayout{size: size, top: netTop}.frontCell(msg.X, msg.Y)
		if !ok {
			return
		}
		f := cubetwist.FrameOf(cubetwist.Resolve(m.cam))
		m.drag = &dragStart{x: msg.X, y: msg.Y, pos: f.CellPosition(size, row, col)}

	case tea.MouseActionRelease:
		if m.drag == nil {
			return
		}
		d := m.drag
		m.drag = nil

		dx := float64(msg.X-d.x) * pxPerCol
		dy := float64(msg.Y-d.y) * pxPerRow
		if math.Abs(dx) < cubetwist.DragThreshold && math.Abs(dy) < cubetwist.DragThreshold {
			return
		}
		if mv, ok := m.game.HandleDrag(d.pos, dx, dy, m.cam); ok {
			m.sources = append(m.sources, storage.SourcePlayer)
			m.deps.events.LogDrag(mv)
		} else {
			m.deps.metrics.InputDropped()
		}
	}
}

func (m *playModel) View() string {
	if m.quitting {
		return ""
	}

	n := m.game.Size()
	var b strings.Builder

	// Title
	b.WriteString(titleStyle.Render(fmt.Sprintf("cubetwist %dx%dx%d", n, n, n)))
	if m.status != "" {
		b.WriteString("  ")
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n\n")

	b.WriteString(renderNet(cubetwist.Net(m.game.Puzzle(), cubetwist.Resolve(m.cam))))
	b.WriteString("\n")

	// Timer
	b.WriteString(timerStyle.Render(cubetwist.FormatElapsed(m.game.Elapsed())))
	switch {
	case m.game.Scrambling():
		b.WriteString(statusStyle.Render("  scrambling..."))
	case m.game.Running():
		b.WriteString(statusStyle.Render("  solving"))
	}
	b.WriteString("\n")

	// Moves
	if cur, ok := m.game.Scheduler().Current(); ok {
		b.WriteString(fmt.Sprintf("Turning %s", moveStyle.Render(cur.String())))
		if p := m.game.Scheduler().Pending(); p > 0 {
			b.WriteString(statusStyle.Render(fmt.Sprintf(" (+%d queued)", p)))
		}
	} else if m.lastMove != "" {
		b.WriteString("Last: " + moveStyle.Render(m.lastMove))
	}
	if m.smart != "" {
		b.WriteString(statusStyle.Render("  cube: " + m.smart))
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(layoutHelp(m.game.Translator().Layout()) + "  drag the front face with the mouse"))
	b.WriteString("\n\n")

	if m.form != nil {
		b.WriteString(m.form.View())
		b.WriteString("\n")
	} else {
		b.WriteString(titleStyle.Render("Top times"))
		b.WriteString("\n")
		b.WriteString(renderRanking(m.ranking, m.rankPos))
		b.WriteString("\n")
	}

	// Error
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}
