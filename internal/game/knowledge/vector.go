package knowledge

import "github.com/literature-engine/literature-server-go/internal/game/card"

// storeVectorLen is the flat size of one store's own section: owner id, then
// per player 48 card states, 8 half-suit minimums, and a hand count.
func storeVectorLen(nPlayers int) int {
	return 1 + nPlayers*(card.DeckSize+card.NumHalfSuits+1)
}

// VectorLen returns the length of the encoding produced by Vector for a real
// store in a game of nPlayers: the store's own section followed by one
// section per dummy sub-store.
func VectorLen(nPlayers int) int {
	return storeVectorLen(nPlayers) * (1 + nPlayers)
}

// Vector flattens the store into a fixed-length integer encoding for
// consumption by external learned models. Layout: the owner id; then for
// each player in id order their 48 card states (in card.Name.Index order),
// 8 half-suit minimums (in card.HalfSuit.Index order) and believed hand
// size; then the same section for each dummy sub-store in player order.
func (s *Store) Vector() []int {
	size := storeVectorLen(s.nPlayers)
	if s.dummies != nil {
		size = VectorLen(s.nPlayers)
	}
	out := make([]int, 0, size)
	out = append(out, s.owner)
	for p := 0; p < s.nPlayers; p++ {
		for i := 0; i < card.DeckSize; i++ {
			out = append(out, int(s.possession[p][i]))
		}
		for h := 0; h < card.NumHalfSuits; h++ {
			out = append(out, s.suitMin[p][h])
		}
		out = append(out, s.handSize[p])
	}
	for _, d := range s.dummies {
		out = append(out, d.Vector()...)
	}
	return out
}
