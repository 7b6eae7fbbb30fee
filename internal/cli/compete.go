package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/literature-engine/literature-server-go/internal/bot"
	"github.com/literature-engine/literature-server-go/internal/game"
)

var (
	competeGames int
	competeTrain int
	competeRate  float64
)

var competeCmd = &cobra.Command{
	Use:   "compete",
	Short: "Pit a trained policy against an untrained one",
	Long: `Compete first trains a linear model by self-play, then plays the
requested number of games with the trained model choosing for the even
team and a fresh model for the odd team, reporting the win tally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rng := newRNG()
		out := cmd.OutOrStdout()

		trained := bot.NewLinearModel(competeRate)
		for i := 0; i < competeTrain; i++ {
			g, err := game.New(playersFlag, game.RandomDeal(rng), game.RandomPicker(rng), nil)
			if err != nil {
				return err
			}
			if err := bot.NewRunner(g, rng, nil).RunFullGame(trained); err != nil {
				return fmt.Errorf("training game %d: %w", i+1, err)
			}
		}
		fmt.Fprintf(out, "trained on %d games\n", competeTrain)

		fresh := bot.NewLinearModel(0)
		wins := make(map[game.Team]int)
		for i := 0; i < competeGames; i++ {
			g, err := game.New(playersFlag, game.RandomDeal(rng), game.RandomPicker(rng), nil)
			if err != nil {
				return err
			}
			winner, err := bot.NewRunner(g, rng, nil).Compete(trained, fresh)
			if err != nil {
				return fmt.Errorf("competition game %d: %w", i+1, err)
			}
			wins[winner]++
		}

		fmt.Fprintf(out, "trained (%s): %d wins\n", teamText(game.TeamEven), wins[game.TeamEven])
		fmt.Fprintf(out, "untrained (%s): %d wins\n", teamText(game.TeamOdd), wins[game.TeamOdd])
		if wins[game.TeamNeither] > 0 {
			fmt.Fprintf(out, "ties or stalled: %d\n", wins[game.TeamNeither])
		}
		return nil
	},
}

func init() {
	competeCmd.Flags().IntVar(&competeGames, "games", 100, "number of competition games")
	competeCmd.Flags().IntVar(&competeTrain, "train", 100, "number of training games")
	competeCmd.Flags().Float64Var(&competeRate, "rate", 1e-7, "model learning rate")
}
