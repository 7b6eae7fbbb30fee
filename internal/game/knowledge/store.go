// Package knowledge implements the belief state each Literature player keeps
// about every player's hand, and the inference rules that propagate the
// consequences of observed moves and claims through that state.
//
// Each player owns one Store. A real Store additionally carries one depth-1
// dummy Store per player in the game: a model of what that player can have
// deduced from public events alone. Dummy stores never nest further.
package knowledge

import (
	"errors"
	"fmt"

	"github.com/literature-engine/literature-server-go/internal/game/card"
)

// ErrInvalidAssertion is returned when a caller tries to record
// MightPossess as a fact. Unknown is the default, never an assertion; hitting
// this error indicates a bug in the calling code rather than bad user input.
var ErrInvalidAssertion = errors.New("cannot record MIGHT_POSSESS as a fact")

// deckByIndex maps card.Name.Index() back to the card, for rules that scan
// the whole deck.
var deckByIndex = card.Deck()

// Store tracks one player's beliefs about every player's hand.
//
// All maps of the original design are fixed-size slices indexed by dense
// player and card indexes, so full coverage of every (player, card) pair is
// guaranteed at construction instead of relying on lazy defaults.
type Store struct {
	owner    int
	nPlayers int

	// possession[p][card.Index()] is the tri-state belief about player p
	// holding the card.
	possession [][]State
	// suitMin[p][halfSuit.Index()] is the minimum number of cards player p
	// is known to hold in that half-suit.
	suitMin [][]int
	// handSize[p] is the believed size of player p's hand.
	handSize []int
	// claimed[halfSuit.Index()] marks half-suits already resolved.
	claimed []bool

	// dummies[p] models what player p can know from public events. Nil for
	// dummy stores themselves; second-order models are bounded at depth 1.
	dummies []*Store
}

// NewStore builds the belief store for a real player holding the given hand.
// Every (player, card) pair starts at MightPossess, then the owner's own
// hand is recorded card by card so that self-knowledge is certain from the
// start.
func NewStore(owner, nPlayers int, hand []card.Name) (*Store, error) {
	s, err := newBlankStore(owner, nPlayers)
	if err != nil {
		return nil, err
	}
	s.dummies = make([]*Store, nPlayers)
	for p := 0; p < nPlayers; p++ {
		// Dummy stores hold no private knowledge; they start fully unknown
		// and learn only through the facts and moves forwarded to them.
		s.dummies[p], _ = newBlankStore(p, nPlayers)
	}

	held := make(map[card.Name]bool, len(hand))
	for _, c := range hand {
		held[c] = true
	}
	for _, c := range deckByIndex {
		if held[c] {
			continue
		}
		if err := s.Record(owner, c, DoesNotPossess); err != nil {
			return nil, err
		}
	}
	for _, c := range hand {
		if err := s.Record(owner, c, DoesPossess); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func newBlankStore(owner, nPlayers int) (*Store, error) {
	if nPlayers <= 0 || card.DeckSize%nPlayers != 0 {
		return nil, fmt.Errorf("player count %d must evenly divide %d cards", nPlayers, card.DeckSize)
	}
	if owner < 0 || owner >= nPlayers {
		return nil, fmt.Errorf("owner %d out of range for %d players", owner, nPlayers)
	}
	s := &Store{
		owner:      owner,
		nPlayers:   nPlayers,
		possession: make([][]State, nPlayers),
		suitMin:    make([][]int, nPlayers),
		handSize:   make([]int, nPlayers),
		claimed:    make([]bool, card.NumHalfSuits),
	}
	for p := 0; p < nPlayers; p++ {
		s.possession[p] = make([]State, card.DeckSize)
		for i := range s.possession[p] {
			s.possession[p][i] = MightPossess
		}
		s.suitMin[p] = make([]int, card.NumHalfSuits)
		s.handSize[p] = card.DeckSize / nPlayers
	}
	return s, nil
}

// Owner returns the player this store belongs to.
func (s *Store) Owner() int {
	return s.owner
}

// NumPlayers returns the number of players modeled by the store.
func (s *Store) NumPlayers() int {
	return s.nPlayers
}

// KnowledgeOf returns the belief about whether subject holds the card.
func (s *Store) KnowledgeOf(subject int, c card.Name) State {
	return s.possession[subject][c.Index()]
}

// SuitMinimum returns the minimum number of cards subject is known to hold
// in the half-suit.
func (s *Store) SuitMinimum(subject int, h card.HalfSuit) int {
	return s.suitMin[subject][h.Index()]
}

// HandSize returns the believed hand size of the player.
func (s *Store) HandSize(p int) int {
	return s.handSize[p]
}

// Claimed reports whether the half-suit has already been resolved by a
// claim.
func (s *Store) Claimed(h card.HalfSuit) bool {
	return s.claimed[h.Index()]
}

// Dummy returns the depth-1 model of what player p knows, or nil when s is
// itself a dummy store.
func (s *Store) Dummy(p int) *Store {
	if s.dummies == nil {
		return nil
	}
	return s.dummies[p]
}

// Record asserts that subject does or does not possess the card, then runs
// every inference rule that the new fact unlocks, recursing for each derived
// fact. Recording an already-known fact is a no-op, which both guarantees
// idempotence and terminates the recursion: each (player, card) pair moves
// away from MightPossess at most once.
//
// The fact is forwarded to subject's dummy sub-store before local inference
// runs. Any true possession fact about subject is necessarily known to
// subject themselves, so second-order models may absorb it.
func (s *Store) Record(subject int, c card.Name, st State) error {
	if !st.Certain() {
		return fmt.Errorf("%w: player %d, card %s", ErrInvalidAssertion, subject, c)
	}
	if err := s.checkPlayer(subject); err != nil {
		return err
	}
	if s.possession[subject][c.Index()] == st {
		return nil
	}
	if s.dummies != nil {
		if err := s.dummies[subject].Record(subject, c, st); err != nil {
			return err
		}
	}
	s.possession[subject][c.Index()] = st

	s.tightenSuitMinimum(subject, c.HalfSuit())
	if err := s.deduceRemaining(subject, c.HalfSuit()); err != nil {
		return err
	}
	if err := s.closeCompleteInfo(subject); err != nil {
		return err
	}
	return s.crossPlayerClosure(subject, c, st)
}

// tightenSuitMinimum raises the known minimum holding in the half-suit to at
// least the number of cards subject certainly holds there. The minimum never
// decreases here; the only permitted decrement happens in ObserveMove when a
// card actually leaves the respondent's hand.
func (s *Store) tightenSuitMinimum(subject int, h card.HalfSuit) {
	held := s.countInHalf(subject, h, DoesPossess)
	if held > s.suitMin[subject][h.Index()] {
		s.suitMin[subject][h.Index()] = held
	}
}

// deduceRemaining applies the remaining-card rule: when the cards subject
// provably lacks plus their minimum holding account for the whole half-suit,
// every card not provably absent must be in their hand.
func (s *Store) deduceRemaining(subject int, h card.HalfSuit) error {
	absent := s.countInHalf(subject, h, DoesNotPossess)
	if absent+s.suitMin[subject][h.Index()] != card.HalfSuitSize {
		return nil
	}
	for _, c := range h.Cards() {
		if s.possession[subject][c.Index()] != DoesNotPossess {
			if err := s.Record(subject, c, DoesPossess); err != nil {
				return err
			}
		}
	}
	return nil
}

// closeCompleteInfo applies the two complete-information rules: when the
// suit minimums sum to the subject's whole hand, suits with no known card
// must be empty; and when every card of the hand is individually known,
// every other card is absent.
func (s *Store) closeCompleteInfo(subject int) error {
	if s.minimumCards(subject) == s.handSize[subject] {
		for _, suit := range s.suitsWithNoKnownCard(subject) {
			for _, h := range []card.Half{card.Minor, card.Major} {
				for _, r := range card.Ranks(h) {
					c := card.Name{Rank: r, Suit: suit}
					if err := s.Record(subject, c, DoesNotPossess); err != nil {
						return err
					}
				}
			}
		}
	}

	if s.countCertain(subject) == s.handSize[subject] {
		for _, c := range deckByIndex {
			if s.possession[subject][c.Index()] != DoesPossess {
				if err := s.Record(subject, c, DoesNotPossess); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// crossPlayerClosure applies elimination across players: a card every other
// player provably lacks must be in the remaining player's hand, and a card
// subject provably holds cannot be in anyone else's.
func (s *Store) crossPlayerClosure(subject int, c card.Name, st State) error {
	for i, name := range deckByIndex {
		if s.possession[subject][i] != MightPossess {
			continue
		}
		lacking := 0
		for p := 0; p < s.nPlayers; p++ {
			if s.possession[p][i] == DoesNotPossess {
				lacking++
			}
		}
		if lacking == s.nPlayers-1 {
			if err := s.Record(subject, name, DoesPossess); err != nil {
				return err
			}
		}
	}

	if st == DoesPossess {
		for p := 0; p < s.nPlayers; p++ {
			if p == subject {
				continue
			}
			if err := s.Record(p, c, DoesNotPossess); err != nil {
				return err
			}
		}
		return nil
	}

	// The new lack may have made subject the n-1th player ruled out for the
	// card; elimination then pins it on whoever is left.
	lacking := 0
	remaining := -1
	for p := 0; p < s.nPlayers; p++ {
		switch s.possession[p][c.Index()] {
		case DoesNotPossess:
			lacking++
		case MightPossess:
			remaining = p
		}
	}
	if lacking == s.nPlayers-1 && remaining >= 0 {
		return s.Record(remaining, c, DoesPossess)
	}
	return nil
}

// ObserveMove digests a committed move. The interrogator revealed holding at
// least one card of the asked half-suit; on success a card moved between the
// hands, shifting both hand counts and the half-suit minimums; and both the
// outcome facts cascade through Record. The move is public, so dummy
// sub-stores observe it identically first.
func (s *Store) ObserveMove(interrogator, respondent int, c card.Name, success bool) error {
	if err := s.checkPlayer(interrogator); err != nil {
		return err
	}
	if err := s.checkPlayer(respondent); err != nil {
		return err
	}
	if s.dummies != nil {
		for _, d := range s.dummies {
			if err := d.ObserveMove(interrogator, respondent, c, success); err != nil {
				return err
			}
		}
	}

	h := c.HalfSuit().Index()
	// Asking at all proves the interrogator holds a card of the half-suit.
	if s.suitMin[interrogator][h] == 0 {
		s.suitMin[interrogator][h] = 1
	}
	if success {
		s.suitMin[interrogator][h]++
		if s.suitMin[respondent][h] > 0 {
			s.suitMin[respondent][h]--
		}
		s.handSize[interrogator]++
		s.handSize[respondent]--
		if err := s.Record(interrogator, c, DoesPossess); err != nil {
			return err
		}
	} else {
		if err := s.Record(interrogator, c, DoesNotPossess); err != nil {
			return err
		}
	}
	// Whether the card was surrendered or never held, the respondent does
	// not have it now.
	return s.Record(respondent, c, DoesNotPossess)
}

// ObserveClaim digests the full revelation a claim forces: the true holder
// of all six cards of one half-suit. The half-suit is marked resolved and
// each holder fact cascades through Record.
func (s *Store) ObserveClaim(holders map[card.Name]int) error {
	if len(holders) != card.HalfSuitSize {
		return fmt.Errorf("a claim must reveal exactly %d cards, got %d", card.HalfSuitSize, len(holders))
	}
	if s.dummies != nil {
		for _, d := range s.dummies {
			if err := d.ObserveClaim(holders); err != nil {
				return err
			}
		}
	}
	for c := range holders {
		s.claimed[c.HalfSuit().Index()] = true
		break
	}
	for c, p := range holders {
		if err := s.Record(p, c, DoesPossess); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) checkPlayer(p int) error {
	if p < 0 || p >= s.nPlayers {
		return fmt.Errorf("player %d out of range for %d players", p, s.nPlayers)
	}
	return nil
}

func (s *Store) countInHalf(subject int, h card.HalfSuit, st State) int {
	count := 0
	for _, c := range h.Cards() {
		if s.possession[subject][c.Index()] == st {
			count++
		}
	}
	return count
}

// minimumCards sums the half-suit minimums, a lower bound on the subject's
// whole hand.
func (s *Store) minimumCards(subject int) int {
	total := 0
	for _, min := range s.suitMin[subject] {
		total += min
	}
	return total
}

// countCertain returns how many cards subject is known to hold.
func (s *Store) countCertain(subject int) int {
	count := 0
	for i := range deckByIndex {
		if s.possession[subject][i] == DoesPossess {
			count++
		}
	}
	return count
}

func (s *Store) suitsWithNoKnownCard(subject int) []card.Suit {
	var held [4]bool
	for i, name := range deckByIndex {
		if s.possession[subject][i] == DoesPossess {
			held[name.Suit] = true
		}
	}
	var out []card.Suit
	for _, suit := range card.Suits() {
		if !held[suit] {
			out = append(out, suit)
		}
	}
	return out
}
