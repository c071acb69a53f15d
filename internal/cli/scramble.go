package cli

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubetwist"
	"github.com/SeamusWaldron/cubetwist/internal/notation"
	"github.com/SeamusWaldron/cubetwist/internal/recorder"
)

var (
	scrambleSize   int
	scrambleSeed   uint64
	scrambleLength int
	scramblePlain  bool
	scrambleApply  string
)

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Print a scramble and the state it produces",
	Long: `Generate a random scramble without the TUI.

Moves are printed as axis@slice and direction, e.g. x@1- turns the x
slice at +1 clockwise. Face notation (R U' F2 ...) is printed alongside
where every move has a name. With --seed the same scramble is produced
every time. --apply shows the state after a sequence of your own instead.

Examples:
  cubetwist scramble
  cubetwist scramble --size 4 --seed 42
  cubetwist scramble --plain
  cubetwist scramble --apply "R U R' U'"`,
	RunE: runScramble,
}

func init() {
	rootCmd.AddCommand(scrambleCmd)
	scrambleCmd.Flags().IntVarP(&scrambleSize, "size", "n", 3, "Puzzle size 2-4")
	scrambleCmd.Flags().Uint64Var(&scrambleSeed, "seed", 0, "Random seed (default: random)")
	scrambleCmd.Flags().IntVar(&scrambleLength, "length", 0, "Number of moves (default: 20 + 5 x size)")
	scrambleCmd.Flags().BoolVar(&scramblePlain, "plain", false, "Print the net as letters instead of colors")
	scrambleCmd.Flags().StringVar(&scrambleApply, "apply", "", "Apply a face notation sequence instead of a random scramble")
}

func runScramble(cmd *cobra.Command, args []string) error {
	seed := scrambleSeed
	if !cmd.Flags().Changed("seed") {
		seed = uint64(time.Now().UnixNano())
	}

	game, err := cubetwist.NewGame(scrambleSize,
		cubetwist.WithRand(rand.New(rand.NewPCG(seed, seed))),
		cubetwist.WithScrambleLength(scrambleLength),
	)
	if err != nil {
		return err
	}

	var moves []cubetwist.Move
	if scrambleApply != "" {
		moves, err = notation.ParseSequence(scrambleApply, scrambleSize)
		if err != nil {
			return err
		}
		cubetwist.ApplyAll(game.Puzzle(), moves)
	} else {
		moves, err = game.Scramble()
		if err != nil {
			return err
		}
		game.Scheduler().Flush()
		fmt.Printf("Seed: %d\n", seed)
	}

	fmt.Printf("Moves (%d): %s\n", len(moves), recorder.FormatMoves(moves))
	fmt.Printf("Notation:   %s\n\n", notation.FormatSequence(moves, scrambleSize))

	net := cubetwist.Net(game.Puzzle(), cubetwist.Resolve(cubetwist.DefaultCamera()))
	if scramblePlain {
		fmt.Print(net.String())
	} else {
		fmt.Print(renderNet(net))
	}
	return nil
}
