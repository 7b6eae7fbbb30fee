package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/literature-engine/literature-server-go/internal/bot"
	"github.com/literature-engine/literature-server-go/internal/game"
)

var (
	simGames int
	simRate  float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Train a move policy by bot self-play",
	Long: `Simulate plays the requested number of full games with every seat
driven by a single shared linear model, updating it after each move and at
the end of each game.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rng := newRNG()
		model := bot.NewLinearModel(simRate)
		out := cmd.OutOrStdout()

		wins := make(map[game.Team]int)
		for i := 0; i < simGames; i++ {
			g, err := game.New(playersFlag, game.RandomDeal(rng), game.RandomPicker(rng), nil)
			if err != nil {
				return err
			}
			runner := bot.NewRunner(g, rng, nil)
			if err := runner.RunFullGame(model); err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			if g.Completed() {
				winner, err := g.Winner()
				if err != nil {
					return err
				}
				wins[winner]++
			} else {
				wins[game.TeamNeither]++
			}
		}

		fmt.Fprintf(out, "played %d games with %d players\n", simGames, playersFlag)
		fmt.Fprintf(out, "%s: %d wins\n", teamText(game.TeamEven), wins[game.TeamEven])
		fmt.Fprintf(out, "%s: %d wins\n", teamText(game.TeamOdd), wins[game.TeamOdd])
		if wins[game.TeamNeither] > 0 {
			fmt.Fprintf(out, "ties or stalled: %d\n", wins[game.TeamNeither])
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().IntVar(&simGames, "games", 100, "number of games to play")
	simulateCmd.Flags().Float64Var(&simRate, "rate", 1e-7, "model learning rate")
}
