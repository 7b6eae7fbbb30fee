package card

import (
	"fmt"
	"math/rand/v2"
)

// DeckSize is the number of cards in a Literature deck. The four 7s are
// removed from a standard 52-card deck, leaving 12 ranks across 4 suits.
const DeckSize = 48

// HalfSuitSize is the number of cards in each half-suit.
const HalfSuitSize = 6

// NumHalfSuits is the number of half-suits in the deck.
const NumHalfSuits = 8

// Suit represents one of the four card suits.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var suitNames = map[Suit]string{
	Clubs:    "CLUBS",
	Diamonds: "DIAMONDS",
	Hearts:   "HEARTS",
	Spades:   "SPADES",
}

var suitCodes = map[Suit]string{
	Clubs:    "C",
	Diamonds: "D",
	Hearts:   "H",
	Spades:   "S",
}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SUIT_%d", int(s))
}

// Code returns the single-letter code used in the text protocol.
func (s Suit) Code() string {
	return suitCodes[s]
}

// Suits returns all four suits in canonical order.
func Suits() []Suit {
	return []Suit{Clubs, Diamonds, Hearts, Spades}
}

// Half identifies one of the two halves of a suit.
type Half int

const (
	Minor Half = iota // ranks A-6
	Major             // ranks 8-K
)

func (h Half) String() string {
	if h == Minor {
		return "MINOR"
	}
	return "MAJOR"
}

// Rank is a card value: A, 2-6, 8-10, J, Q, K. Rank 7 does not exist in
// Literature.
type Rank int

var rankNames = map[Rank]string{
	1: "A", 2: "2", 3: "3", 4: "4", 5: "5", 6: "6",
	8: "8", 9: "9", 10: "10", 11: "J", 12: "Q", 13: "K",
}

// Valid reports whether r is a playable rank.
func (r Rank) Valid() bool {
	_, ok := rankNames[r]
	return ok
}

// Half returns the half of the suit this rank belongs to.
func (r Rank) Half() Half {
	if r <= 6 {
		return Minor
	}
	return Major
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return fmt.Sprintf("RANK_%d", int(r))
}

// ord returns the dense position of the rank: A-6 map to 0-5, 8-K to 6-11.
func (r Rank) ord() int {
	if r <= 6 {
		return int(r) - 1
	}
	return int(r) - 2
}

// Ranks returns the six ranks belonging to a half, in ascending order.
func Ranks(h Half) []Rank {
	if h == Minor {
		return []Rank{1, 2, 3, 4, 5, 6}
	}
	return []Rank{8, 9, 10, 11, 12, 13}
}

// HalfSuit identifies one of the eight claimable groups of six cards.
type HalfSuit struct {
	Half Half
	Suit Suit
}

// Index returns a dense index in [0, NumHalfSuits). Minor half-suits come
// first, ordered by suit, then major half-suits.
func (h HalfSuit) Index() int {
	return int(h.Half)*4 + int(h.Suit)
}

func (h HalfSuit) String() string {
	return fmt.Sprintf("%s %s", h.Half, h.Suit)
}

// Cards returns the six card names making up the half-suit.
func (h HalfSuit) Cards() []Name {
	cards := make([]Name, 0, HalfSuitSize)
	for _, r := range Ranks(h.Half) {
		cards = append(cards, Name{Rank: r, Suit: h.Suit})
	}
	return cards
}

// HalfSuits returns all eight half-suits in Index order.
func HalfSuits() []HalfSuit {
	out := make([]HalfSuit, 0, NumHalfSuits)
	for _, h := range []Half{Minor, Major} {
		for _, s := range Suits() {
			out = append(out, HalfSuit{Half: h, Suit: s})
		}
	}
	return out
}

// Name identifies a single card by rank and suit. The zero value is not a
// valid card; construct Names with NewName or Parse.
type Name struct {
	Rank Rank
	Suit Suit
}

// NewName constructs a card name, rejecting rank 7 and out-of-range values.
func NewName(rank int, suit Suit) (Name, error) {
	r := Rank(rank)
	if !r.Valid() {
		return Name{}, fmt.Errorf("invalid rank %d: must be 1-6 or 8-13", rank)
	}
	if _, ok := suitNames[suit]; !ok {
		return Name{}, fmt.Errorf("invalid suit %d", int(suit))
	}
	return Name{Rank: r, Suit: suit}, nil
}

// MustName is NewName for statically known values; it panics on invalid
// input.
func MustName(rank int, suit Suit) Name {
	n, err := NewName(rank, suit)
	if err != nil {
		panic(err)
	}
	return n
}

// HalfSuit returns the half-suit this card belongs to.
func (n Name) HalfSuit() HalfSuit {
	return HalfSuit{Half: n.Rank.Half(), Suit: n.Suit}
}

// Index returns a dense index in [0, DeckSize). Cards are ordered rank-major
// (all four aces first), which is also the order used by the belief vector
// encoding.
func (n Name) Index() int {
	return n.Rank.ord()*4 + int(n.Suit)
}

// Less orders cards by suit, then rank.
func (n Name) Less(other Name) bool {
	if n.Suit != other.Suit {
		return n.Suit < other.Suit
	}
	return n.Rank < other.Rank
}

// String returns the compact rank+suit code, e.g. "5C" or "10H".
func (n Name) String() string {
	return n.Rank.String() + n.Suit.Code()
}

// Parse converts a compact rank+suit code such as "5C", "10H" or "KD" back
// into a card name.
func Parse(s string) (Name, error) {
	if len(s) < 2 {
		return Name{}, fmt.Errorf("invalid card code %q", s)
	}
	suit, err := parseSuit(s[len(s)-1:])
	if err != nil {
		return Name{}, fmt.Errorf("invalid card code %q: %w", s, err)
	}
	rank, err := parseRank(s[:len(s)-1])
	if err != nil {
		return Name{}, fmt.Errorf("invalid card code %q: %w", s, err)
	}
	return Name{Rank: rank, Suit: suit}, nil
}

func parseSuit(code string) (Suit, error) {
	for s, c := range suitCodes {
		if c == code {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown suit code %q", code)
}

func parseRank(code string) (Rank, error) {
	// "A" is canonical for the ace, but the numeric form is accepted too.
	if code == "1" {
		return 1, nil
	}
	for r, name := range rankNames {
		if name == code {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown rank code %q", code)
}

// Deck returns all 48 card names in Index order.
func Deck() []Name {
	deck := make([]Name, 0, DeckSize)
	for _, h := range []Half{Minor, Major} {
		for _, r := range Ranks(h) {
			for _, s := range Suits() {
				deck = append(deck, Name{Rank: r, Suit: s})
			}
		}
	}
	return deck
}

// Deal shuffles the deck with the provided source and splits it into n
// evenly sized hands. It fails when n does not evenly divide the deck.
func Deal(n int, rng *rand.Rand) ([][]Name, error) {
	if n <= 0 || DeckSize%n != 0 {
		return nil, fmt.Errorf("cannot deal %d cards to %d players evenly", DeckSize, n)
	}
	deck := Deck()
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	per := DeckSize / n
	hands := make([][]Name, n)
	for i := range hands {
		hands[i] = deck[i*per : (i+1)*per]
	}
	return hands, nil
}
