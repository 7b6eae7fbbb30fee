package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/literature-engine/literature-server-go/internal/bot"
	"github.com/literature-engine/literature-server-go/internal/game"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play an interactive game against bot opponents",
	Long: `Play deals a fresh game and seats you as player 0. On your turn,
enter a move as "<player_id> <card>" (for example "1 5C") or claim a
half-suit with "claim <player_id> <card> ..." listing all six cards.
Enter "quit" to abandon the game.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rng := newRNG()
		g, err := game.New(playersFlag, game.RandomDeal(rng), game.RandomPicker(rng), nil)
		if err != nil {
			return err
		}
		runner := bot.NewRunner(g, rng, nil)
		model := bot.NewLinearModel(0)

		const human = 0
		out := cmd.OutOrStdout()
		scanner := bufio.NewScanner(cmd.InOrStdin())

		for !g.Completed() {
			if err := runner.MakeClaims(human); err != nil {
				return err
			}
			if g.Completed() {
				break
			}
			if len(g.Ledger()) >= bot.MoveLimit {
				fmt.Fprintln(out, "move limit reached, calling the game")
				break
			}

			if g.Turn() != human {
				if _, err := runner.MakeMove(model); err != nil {
					return err
				}
				renderLastMove(out, g)
				continue
			}

			renderState(out, g, human)
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			switch {
			case line == "":
				continue
			case strings.EqualFold(line, "quit"):
				fmt.Fprintln(out, "game abandoned")
				return nil
			}
			success, err := g.CommitText(line)
			if err != nil {
				color.New(color.FgRed).Fprintf(out, "rejected: %v\n", err)
				continue
			}
			if success {
				color.New(color.FgGreen).Fprintln(out, "success")
			} else {
				color.New(color.FgYellow).Fprintln(out, "missed, turn passes")
			}
		}

		renderResult(out, g)
		return nil
	},
}
