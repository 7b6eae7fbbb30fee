package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/literature-engine/literature-server-go/internal/game"
	"github.com/literature-engine/literature-server-go/internal/game/card"
)

var (
	redCard   = color.New(color.FgRed)
	blackCard = color.New(color.FgHiWhite)
	teamEven  = color.New(color.FgCyan, color.Bold)
	teamOdd   = color.New(color.FgMagenta, color.Bold)
	faint     = color.New(color.Faint)
)

func cardText(c card.Name) string {
	if c.Suit == card.Hearts || c.Suit == card.Diamonds {
		return redCard.Sprint(c.String())
	}
	return blackCard.Sprint(c.String())
}

func teamText(t game.Team) string {
	switch t {
	case game.TeamEven:
		return teamEven.Sprint(t.String())
	case game.TeamOdd:
		return teamOdd.Sprint(t.String())
	default:
		return faint.Sprint(t.String())
	}
}

func renderHand(w io.Writer, p *game.Player) {
	byHalf := make(map[card.HalfSuit][]card.Name)
	for _, c := range p.Hand() {
		byHalf[c.HalfSuit()] = append(byHalf[c.HalfSuit()], c)
	}
	for _, hs := range card.HalfSuits() {
		cards, ok := byHalf[hs]
		if !ok {
			continue
		}
		rendered := make([]string, len(cards))
		for i, c := range cards {
			rendered[i] = cardText(c)
		}
		fmt.Fprintf(w, "  %-16s %s\n", hs.String(), strings.Join(rendered, " "))
	}
}

func renderState(w io.Writer, g *game.Game, viewer int) {
	fmt.Fprintf(w, "\nturn: player %d (%s)\n", g.Turn(), teamText(game.TeamOf(g.Turn())))
	for id := 0; id < g.NumPlayers(); id++ {
		p, err := g.Player(id)
		if err != nil {
			continue
		}
		marker := " "
		if id == viewer {
			marker = "*"
		}
		fmt.Fprintf(w, "%s player %d (%s): %d cards\n", marker, id, teamText(p.Team()), p.HandSize())
	}
	for _, hs := range card.HalfSuits() {
		if status := g.ClaimStatus(hs); status != game.TeamNeither {
			fmt.Fprintf(w, "  %s claimed by %s\n", hs, teamText(status))
		}
	}
	if viewer >= 0 {
		if p, err := g.Player(viewer); err == nil {
			fmt.Fprintln(w, "your hand:")
			renderHand(w, p)
		}
	}
}

func renderLastMove(w io.Writer, g *game.Game) {
	ledger := g.Ledger()
	if len(ledger) == 0 {
		return
	}
	rec := ledger[len(ledger)-1]
	outcome := color.RedString("no")
	if rec.Success {
		outcome = color.GreenString("yes")
	}
	fmt.Fprintf(w, "player %d asks player %d for %s: %s\n",
		rec.Move.Interrogator, rec.Move.Respondent, cardText(rec.Move.Card), outcome)
}

func renderResult(w io.Writer, g *game.Game) {
	scores := g.Scores()
	fmt.Fprintf(w, "\nfinal score: %s %d, %s %d",
		teamText(game.TeamEven), scores[game.TeamEven],
		teamText(game.TeamOdd), scores[game.TeamOdd])
	if discarded := scores[game.TeamDiscard]; discarded > 0 {
		fmt.Fprintf(w, ", discarded %d", discarded)
	}
	fmt.Fprintln(w)
	if winner, err := g.Winner(); err == nil {
		if winner == game.TeamNeither {
			fmt.Fprintln(w, "the game is a tie")
		} else {
			fmt.Fprintf(w, "%s wins\n", teamText(winner))
		}
	}
}
