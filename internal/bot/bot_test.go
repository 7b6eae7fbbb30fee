package bot

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/literature-engine/literature-server-go/internal/game"
	"github.com/literature-engine/literature-server-go/internal/game/card"
	"github.com/literature-engine/literature-server-go/internal/game/knowledge"
)

var missingCard = card.MustName(3, card.Clubs)

// twoHandDeal concentrates the deck on players 0 and 1: player 0 holds the
// minors except the 3C, player 1 the majors plus the 3C.
func twoHandDeal(int) ([][]card.Name, error) {
	var p0, p1 []card.Name
	for _, s := range card.Suits() {
		for _, r := range card.Ranks(card.Minor) {
			c := card.Name{Rank: r, Suit: s}
			if c != missingCard {
				p0 = append(p0, c)
			}
		}
		for _, r := range card.Ranks(card.Major) {
			p1 = append(p1, card.Name{Rank: r, Suit: s})
		}
	}
	p1 = append(p1, missingCard)
	return [][]card.Name{p0, p1, nil, nil}, nil
}

func firstPicker(int) int { return 0 }

func TestValidMoves(t *testing.T) {
	g, err := game.New(4, twoHandDeal, firstPicker, nil)
	require.NoError(t, err)

	moves, err := ValidMoves(g, 0, true)
	require.NoError(t, err)
	// Player 0's only unknown minor card is the 3C, and only player 1 has
	// any cards to be asked for it.
	require.Len(t, moves, 1)
	assert.Equal(t, missingCard, moves[0].Card)
	assert.Equal(t, 1, moves[0].Respondent)

	// Once player 0 can prove the ask would fail, the knowledge filter
	// drops it; ignoring knowledge brings the signaling ask back.
	p0, err := g.Player(0)
	require.NoError(t, err)
	require.NoError(t, p0.Beliefs().Record(1, missingCard, knowledge.DoesNotPossess))

	strict, err := ValidMoves(g, 0, true)
	require.NoError(t, err)
	assert.Empty(t, strict)

	loose, err := ValidMoves(g, 0, false)
	require.NoError(t, err)
	require.Len(t, loose, 1)
	assert.Equal(t, missingCard, loose[0].Card)
}

func TestFeatures_Length(t *testing.T) {
	g, err := game.New(4, twoHandDeal, firstPicker, nil)
	require.NoError(t, err)
	p, err := g.Player(0)
	require.NoError(t, err)

	moves, err := ValidMoves(g, 0, true)
	require.NoError(t, err)
	require.NotEmpty(t, moves)

	features := Features(p, moves[0])
	assert.Len(t, features, FeatureLen(4))
	assert.Equal(t, 1149, len(features), "4-player feature length is fixed")
}

func TestRunner_Compete_Fixture(t *testing.T) {
	g, err := game.New(4, twoHandDeal, firstPicker, nil)
	require.NoError(t, err)
	r := NewRunner(g, rand.New(rand.NewPCG(7, 11)), nil)

	// Player 1 holds the 3C and can win every remaining minor club from
	// player 0; the odd team should take the game 5-3.
	winner, err := r.Compete(NewLinearModel(0), NewLinearModel(0))
	require.NoError(t, err)
	assert.Equal(t, game.TeamOdd, winner)
	assert.True(t, g.Completed())
}

func TestRunner_RunFullGame_RandomDeal(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))
	g, err := game.New(4, game.RandomDeal(rng), game.RandomPicker(rng), nil)
	require.NoError(t, err)

	r := NewRunner(g, rng, nil)
	model := NewLinearModel(1e-7)
	require.NoError(t, r.RunFullGame(model))

	// Whether the game finished or hit the move limit, the deck must still
	// be conserved.
	total := 0
	for id := 0; id < g.NumPlayers(); id++ {
		p, err := g.Player(id)
		require.NoError(t, err)
		total += p.HandSize()
	}
	assert.Equal(t, card.DeckSize, total)
}

func TestLinearModel_Learns(t *testing.T) {
	m := NewLinearModel(0.05)
	x := [][]float64{{1, 0}, {0, 1}}
	y := []float64{1, -1}
	for i := 0; i < 200; i++ {
		m.PartialFit(x, y)
	}
	assert.Greater(t, m.Predict([]float64{1, 0}), m.Predict([]float64{0, 1}))
}

func TestLinearModel_ConcurrentFit(t *testing.T) {
	m := NewLinearModel(0.01)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.PartialFit([][]float64{{1, 2, 3}}, []float64{1})
				m.Predict([]float64{1, 2, 3})
			}
		}()
	}
	wg.Wait()
}
