package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/cubetwist"
	"github.com/SeamusWaldron/cubetwist/internal/metrics"
	"github.com/SeamusWaldron/cubetwist/internal/recorder"
	"github.com/SeamusWaldron/cubetwist/internal/sessionlog"
	"github.com/SeamusWaldron/cubetwist/internal/smartcube"
)

var (
	playSize      int
	playSmartCube string
	playMetrics   string
	playNoRecord  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the interactive puzzle.

The net shows the face you look at in the middle, with its neighbours
unfolded around it. Move keys follow what you see on screen:

  2x2x2   q e       columns   a d       rows
  3x3x3   q w e     columns   a s d     rows
  4x4x4   q w e r   columns   a s d f   rows

Drag across the middle face with the mouse to turn the grabbed layer.
Arrow keys and , . turn the camera. Press space to scramble; the timer
starts once the scramble has played, and a solve records your time.

With --smartcube, turns of a GoCube are mirrored onto a 3x3x3. Scramble
the physical cube, then press space to start the timer.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntVarP(&playSize, "size", "n", 0, "Puzzle size 2-4 (default: last played, then config)")
	playCmd.Flags().StringVar(&playSmartCube, "smartcube", "", `Mirror a GoCube by address, or "last" for the last used cube`)
	playCmd.Flags().StringVar(&playMetrics, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9120")
	playCmd.Flags().BoolVar(&playNoRecord, "no-record", false, "Do not record games in the database")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("play needs a terminal; use 'cubetwist scramble' for plain output")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	switch {
	case playSize != 0:
		cfg.Size = playSize
	case stateFile.LastSize() != 0:
		cfg.Size = stateFile.LastSize()
	}
	if playMetrics != "" {
		cfg.MetricsAddr = playMetrics
	}
	if cfg.PlayerName == "" {
		cfg.PlayerName = stateFile.LastPlayer()
	}

	address := playSmartCube
	if address == "last" {
		address = stateFile.LastDeviceID()
		if address == "" {
			return fmt.Errorf("no smart cube used yet; find one with 'cubetwist smartcube scan'")
		}
	}
	if address != "" {
		cfg.Size = 3
	}

	logger, logFile, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	game, err := cubetwist.NewGame(cfg.Size, cfg.GameOptions(logger)...)
	if err != nil {
		return err
	}

	var met *metrics.Metrics
	if cfg.MetricsAddr != "" {
		met = metrics.New()
	}

	events := sessionlog.NewLogger()
	if cfg.SessionLogs {
		if err := events.Start(cfg.LogDir, cfg.Size, ""); err != nil {
			logger.Warn("session log disabled", "error", err)
		}
	}
	logPath := events.FilePath()
	defer events.Close()

	var session *recorder.Session
	if !playNoRecord {
		session = recorder.NewSession(db, stateFile)
		closeInterrupted(cmd.Context(), session, stateFile, logger)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	model := newPlayModel(gctx, game, playDeps{
		db:        db,
		session:   session,
		stateFile: stateFile,
		events:    events,
		metrics:   met,
		logger:    logger,
		player:    cfg.PlayerName,
		smartCube: address != "",
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(gctx))

	logger.Info("play started", "size", cfg.Size, "smartcube", address, "metrics", cfg.MetricsAddr)

	g.Go(func() error {
		defer cancel()
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("tui error: %w", err)
		}
		return nil
	})
	if met != nil {
		g.Go(func() error {
			return met.Serve(gctx, cfg.MetricsAddr)
		})
	}
	if address != "" {
		g.Go(func() error {
			mirrorSmartCube(gctx, p, address, stateFile, logger)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if logPath != "" {
		fmt.Printf("Session log saved to: %s\n", logPath)
	}
	return nil
}

// mirrorSmartCube connects to the cube and forwards its turns to the TUI
// until ctx ends. Failures are shown in the TUI rather than ending play.
func mirrorSmartCube(ctx context.Context, p *tea.Program, address string, stateFile *recorder.StateFile, logger *slog.Logger) {
	h := smartcube.NewHandler(3, logger)
	h.OnMove(func(m cubetwist.Move, r smartcube.Rotation) {
		p.Send(smartMoveMsg{move: m, face: r.Notation()})
	})
	h.OnBattery(func(level int) {
		p.Send(smartStatusMsg{text: fmt.Sprintf("Smart cube battery %d%%", level)})
	})

	client, err := smartcube.NewClient(h)
	if err != nil {
		p.Send(smartStatusMsg{err: err})
		return
	}

	p.Send(smartStatusMsg{text: "Looking for " + address})
	d, err := client.Find(ctx, address, 10*time.Second)
	if err != nil {
		p.Send(smartStatusMsg{err: err})
		return
	}
	if err := client.Connect(d); err != nil {
		p.Send(smartStatusMsg{err: err})
		return
	}
	defer client.Disconnect()

	if err := stateFile.SetLastDevice(d.Address, d.Name); err != nil {
		logger.Warn("failed to remember smart cube", "error", err)
	}

	// The virtual puzzle starts solved, so the cube must agree.
	if err := client.Send(smartcube.CmdResetSolved); err != nil {
		logger.Warn("failed to reset smart cube state", "error", err)
	}
	p.Send(smartStatusMsg{text: "Connected to " + d.Name, connected: true})
	logger.Info("smart cube connected", "name", d.Name, "address", d.Address)

	<-ctx.Done()
}

// closeInterrupted ends a game left recording by a run that did not exit
// cleanly. Its moves are kept; the game is marked abandoned.
func closeInterrupted(ctx context.Context, session *recorder.Session, stateFile *recorder.StateFile, logger *slog.Logger) {
	id := stateFile.ActiveGameID()
	if id == "" {
		return
	}
	if err := session.Resume(ctx, id); err != nil {
		logger.Warn("dropping interrupted game", "game_id", id, "error", err)
		_ = stateFile.ClearActiveGame()
		return
	}
	if err := session.End(ctx, 0, false, ""); err != nil {
		logger.Warn("failed to close interrupted game", "game_id", id, "error", err)
		return
	}
	logger.Info("closed interrupted game", "game_id", id)
}
