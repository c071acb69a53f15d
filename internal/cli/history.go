package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubetwist"
	"github.com/SeamusWaldron/cubetwist/internal/analysis"
	"github.com/SeamusWaldron/cubetwist/internal/notation"
	"github.com/SeamusWaldron/cubetwist/internal/recorder"
	"github.com/SeamusWaldron/cubetwist/internal/storage"
)

var (
	historyLimit int
	historyLast  bool
	statsSize    int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded games",
	Long: `List recorded games, newest first.

Examples:
  cubetwist history
  cubetwist history --limit 50
  cubetwist history show --last
  cubetwist history show <game_id>`,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [game_id]",
	Short: "Show the moves and final state of a game",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryShow,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show solve time statistics and repeated move sequences",
	Long: `Summarize recorded games of one puzzle size: best and mean time,
average of the last five (ao5), and the move sequences you repeat most.`,
	RunE: runHistoryStats,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.PersistentFlags().IntVar(&historyLimit, "limit", 20, "Number of games to list or analyze")
	historyShowCmd.Flags().BoolVar(&historyLast, "last", false, "Show the most recent game")
	historyStatsCmd.Flags().IntVarP(&statsSize, "size", "n", 3, "Puzzle size 2-4")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	games, err := storage.NewGameRepository(db).List(context.Background(), historyLimit)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Println("No games recorded.")
		return nil
	}

	fmt.Printf("%-36s  %-5s  %-16s  %-9s  %5s  %s\n", "GAME", "SIZE", "STARTED", "TIME", "MOVES", "RESULT")
	for _, g := range games {
		fmt.Printf("%-36s  %dx%dx%d  %-16s  %-9s  %5d  %s\n",
			g.GameID, g.Size, g.Size, g.Size,
			g.StartedAt.Local().Format("2006-01-02 15:04"),
			gameTime(g), g.MoveCount, gameResult(g))
	}
	return nil
}

func gameTime(g storage.Game) string {
	if g.EndedAt == nil {
		return "-"
	}
	return formatDuration(g.Duration())
}

func gameResult(g storage.Game) string {
	switch {
	case g.EndedAt == nil:
		return "in progress"
	case !g.Solved:
		return "abandoned"
	case g.PlayerName != nil:
		return "solved by " + *g.PlayerName
	default:
		return "solved"
	}
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !historyLast {
		return fmt.Errorf("specify a game id or --last")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	games := storage.NewGameRepository(db)

	var game *storage.Game
	if historyLast {
		game, err = games.GetLast(ctx)
	} else {
		game, err = games.Get(ctx, args[0])
	}
	if err != nil {
		return err
	}

	moveRepo := storage.NewMoveRepository(db)
	scramble, err := moveRepo.Moves(ctx, game.GameID, storage.SourceScramble)
	if err != nil {
		return err
	}
	played, err := moveRepo.Moves(ctx, game.GameID, storage.SourcePlayer, storage.SourceSmartCube)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Game %s", game.GameID)))
	fmt.Printf("Size:     %dx%dx%d\n", game.Size, game.Size, game.Size)
	fmt.Printf("Started:  %s\n", game.StartedAt.Local().Format(time.RFC1123))
	fmt.Printf("Time:     %s\n", gameTime(*game))
	fmt.Printf("Result:   %s\n", gameResult(*game))
	fmt.Println()
	fmt.Printf("Scramble (%d): %s\n", len(scramble), recorder.FormatMoves(scramble))
	fmt.Printf("Moves (%d):    %s\n", len(played), recorder.FormatMoves(played))
	fmt.Printf("Notation:      %s\n", notation.FormatSequence(played, game.Size))
	fmt.Println()

	records, err := moveRepo.GetByGame(ctx, game.GameID)
	if err != nil {
		return err
	}
	sum := analysis.Summarize(*game, records)
	fmt.Printf("TPS:           %.2f\n", sum.TPSOverall)
	fmt.Printf("Efficiency:    %.0f%% (%d moves after cancelling)\n", sum.Efficiency*100, sum.OptimizedMoves)
	fmt.Printf("Longest pause: %s (%d over %s)\n",
		formatDuration(time.Duration(sum.LongestPauseMs)*time.Millisecond),
		sum.PauseCountOver1500,
		formatDuration(analysis.PauseThresholdMs*time.Millisecond))
	fmt.Println()

	p, err := cubetwist.NewPuzzle(game.Size)
	if err != nil {
		return err
	}
	cubetwist.ApplyAll(p, scramble)
	cubetwist.ApplyAll(p, played)

	fmt.Println("Final state:")
	fmt.Print(renderNet(cubetwist.Net(p, cubetwist.Resolve(cubetwist.DefaultCamera()))))
	fmt.Printf("Solved: %v\n", cubetwist.IsSolved(p))
	return nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	if statsSize < cubetwist.MinSize || statsSize > cubetwist.MaxSize {
		return cubetwist.ErrInvalidSize
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	all, err := storage.NewGameRepository(db).List(ctx, historyLimit)
	if err != nil {
		return err
	}

	var games []storage.Game
	for _, g := range all {
		if g.Size == statsSize {
			games = append(games, g)
		}
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Statistics %dx%dx%d", statsSize, statsSize, statsSize)))
	fmt.Println()

	st := analysis.SolveTimes(games)
	if st.Solves == 0 {
		fmt.Println("No solves recorded.")
		return nil
	}
	fmt.Printf("Solves: %d of %d games\n", st.Solves, len(games))
	fmt.Printf("Best:   %s\n", timerStyle.Render(cubetwist.FormatElapsed(st.Best)))
	fmt.Printf("Mean:   %s\n", cubetwist.FormatElapsed(st.Mean))
	if st.Ao5 > 0 {
		fmt.Printf("Ao5:    %s\n", cubetwist.FormatElapsed(st.Ao5))
	}
	fmt.Println()

	moveRepo := storage.NewMoveRepository(db)
	var sequences [][]cubetwist.Move
	for _, g := range games {
		moves, err := moveRepo.Moves(ctx, g.GameID, storage.SourcePlayer, storage.SourceSmartCube)
		if err != nil {
			return err
		}
		sequences = append(sequences, moves)
	}

	report := analysis.MineNGrams(sequences, 4, 6, 3)
	if len(report.TopNGrams) == 0 {
		return nil
	}
	fmt.Println("Repeated sequences:")
	for n := 4; n <= 6; n++ {
		for _, ng := range report.TopNGrams[n] {
			fmt.Printf("  %2dx  %s\n", ng.Count, moveStyle.Render(strings.Join(ng.Sequence, " ")))
		}
	}
	return nil
}
