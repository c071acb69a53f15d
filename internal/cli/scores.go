package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubetwist"
	"github.com/SeamusWaldron/cubetwist/internal/storage"
)

var scoresSize int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best times",
	Long: `Show the top 5 solve times for a puzzle size.

Examples:
  cubetwist scores
  cubetwist scores --size 4
  cubetwist scores clear --size 2`,
	RunE: runScores,
}

var scoresClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the ranking of a puzzle size",
	RunE:  runScoresClear,
}

func init() {
	rootCmd.AddCommand(scoresCmd)
	scoresCmd.AddCommand(scoresClearCmd)
	scoresCmd.PersistentFlags().IntVarP(&scoresSize, "size", "n", 3, "Puzzle size 2-4")
}

func scoreRepository() (*storage.DB, *storage.ScoreRepository, error) {
	if scoresSize < cubetwist.MinSize || scoresSize > cubetwist.MaxSize {
		return nil, nil, cubetwist.ErrInvalidSize
	}
	db, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	return db, storage.NewScoreRepository(db, scoresSize), nil
}

func runScores(cmd *cobra.Command, args []string) error {
	db, repo, err := scoreRepository()
	if err != nil {
		return err
	}
	defer db.Close()

	ranking, err := repo.Rank(context.Background())
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Top times %dx%dx%d", scoresSize, scoresSize, scoresSize)))
	fmt.Println()
	if len(ranking) == 0 {
		fmt.Println("No times yet.")
		return nil
	}
	for i, s := range ranking {
		fmt.Printf("%d. %s %s\n", i+1, padRight(s.Name, 12), s.Time)
	}
	return nil
}

func runScoresClear(cmd *cobra.Command, args []string) error {
	db, repo, err := scoreRepository()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repo.Clear(context.Background()); err != nil {
		return err
	}
	fmt.Printf("Cleared %dx%dx%d ranking.\n", scoresSize, scoresSize, scoresSize)
	return nil
}
