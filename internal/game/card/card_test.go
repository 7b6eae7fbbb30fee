package card

import (
	"math/rand/v2"
	"testing"
)

func TestNewName_RejectsSeven(t *testing.T) {
	if _, err := NewName(7, Clubs); err == nil {
		t.Error("Expected error constructing rank 7")
	}
	if _, err := NewName(0, Hearts); err == nil {
		t.Error("Expected error constructing rank 0")
	}
	if _, err := NewName(14, Spades); err == nil {
		t.Error("Expected error constructing rank 14")
	}
}

func TestParse_Roundtrip(t *testing.T) {
	for _, n := range Deck() {
		parsed, err := Parse(n.String())
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", n.String(), err)
		}
		if parsed != n {
			t.Errorf("Parse(%q) = %v, want %v", n.String(), parsed, n)
		}
	}
}

func TestParse_NumericAce(t *testing.T) {
	for _, s := range Suits() {
		n, err := Parse("1" + s.Code())
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", "1"+s.Code(), err)
		}
		if n != MustName(1, s) {
			t.Errorf("Parse(%q) = %v, want the ace of %v", "1"+s.Code(), n, s)
		}
		if n.String() != "A"+s.Code() {
			t.Errorf("Canonical form of %v should use A, got %q", n, n.String())
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, code := range []string{"", "C", "7C", "5X", "11D", "QQ"} {
		if _, err := Parse(code); err == nil {
			t.Errorf("Parse(%q) should fail", code)
		}
	}
}

func TestName_Index(t *testing.T) {
	seen := make(map[int]bool)
	for _, n := range Deck() {
		idx := n.Index()
		if idx < 0 || idx >= DeckSize {
			t.Fatalf("Index %d out of range for %v", idx, n)
		}
		if seen[idx] {
			t.Fatalf("Duplicate index %d for %v", idx, n)
		}
		seen[idx] = true
	}
}

func TestHalfSuit(t *testing.T) {
	n := MustName(3, Diamonds)
	h := n.HalfSuit()
	if h.Half != Minor || h.Suit != Diamonds {
		t.Errorf("Expected MINOR DIAMONDS, got %v", h)
	}
	if MustName(11, Diamonds).HalfSuit().Half != Major {
		t.Error("Jack should be in the major half")
	}

	for _, hs := range HalfSuits() {
		if len(hs.Cards()) != HalfSuitSize {
			t.Errorf("Half-suit %v should have %d cards", hs, HalfSuitSize)
		}
		for _, c := range hs.Cards() {
			if c.HalfSuit() != hs {
				t.Errorf("Card %v should belong to %v", c, hs)
			}
		}
	}
}

func TestHalfSuit_IndexDense(t *testing.T) {
	seen := make(map[int]bool)
	for _, hs := range HalfSuits() {
		idx := hs.Index()
		if idx < 0 || idx >= NumHalfSuits {
			t.Fatalf("Index %d out of range for %v", idx, hs)
		}
		if seen[idx] {
			t.Fatalf("Duplicate index %d for %v", idx, hs)
		}
		seen[idx] = true
	}
}

func TestDeal(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	hands, err := Deal(4, rng)
	if err != nil {
		t.Fatalf("Deal failed: %v", err)
	}
	if len(hands) != 4 {
		t.Fatalf("Expected 4 hands, got %d", len(hands))
	}
	seen := make(map[Name]bool)
	for _, hand := range hands {
		if len(hand) != 12 {
			t.Errorf("Expected 12 cards per hand, got %d", len(hand))
		}
		for _, c := range hand {
			if seen[c] {
				t.Errorf("Card %v dealt twice", c)
			}
			seen[c] = true
		}
	}
	if len(seen) != DeckSize {
		t.Errorf("Expected %d distinct cards, got %d", DeckSize, len(seen))
	}
}

func TestDeal_UnevenPlayers(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	if _, err := Deal(5, rng); err == nil {
		t.Error("Expected error dealing to 5 players")
	}
	if _, err := Deal(0, rng); err == nil {
		t.Error("Expected error dealing to 0 players")
	}
}
