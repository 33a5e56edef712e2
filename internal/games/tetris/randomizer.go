package tetris

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

// Randomizer supplies the sequence of upcoming pieces.
// The engine never draws randomness itself, so tests can inject a fixed order.
type Randomizer interface {
	Next() PieceType
}

// Uniform draws each piece independently with equal probability.
type Uniform struct {
	rng *rand.Rand
}

// NewUniform creates a uniform randomizer seeded for reproducible play.
func NewUniform(seed int64) *Uniform {
	return &Uniform{rng: rand.New(rand.NewSource(seed))}
}

// Next returns a uniformly chosen piece.
func (u *Uniform) Next() PieceType {
	return PieceTypes[u.rng.Intn(len(PieceTypes))]
}

// Bag deals all seven pieces in shuffled order before reshuffling.
type Bag struct {
	rng *rand.Rand
	bag []PieceType
}

// NewBag creates a seven-bag randomizer.
func NewBag(seed int64) *Bag {
	return &Bag{rng: rand.New(rand.NewSource(seed))}
}

// Next returns the next piece from the bag, refilling it when empty.
func (b *Bag) Next() PieceType {
	if len(b.bag) == 0 {
		b.bag = append(b.bag[:0], PieceTypes[:]...)
		b.rng.Shuffle(len(b.bag), func(i, j int) {
			b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
		})
	}
	p := b.bag[0]
	b.bag = b.bag[1:]
	return p
}

// Sequence cycles through a fixed list of pieces.
type Sequence struct {
	pieces []PieceType
	pos    int
}

// NewSequence creates a randomizer that repeats the given pieces in order.
// An empty list yields I pieces forever.
func NewSequence(pieces ...PieceType) *Sequence {
	if len(pieces) == 0 {
		pieces = []PieceType{PieceI}
	}
	return &Sequence{pieces: pieces}
}

// Next returns the next piece in the cycle.
func (s *Sequence) Next() PieceType {
	p := s.pieces[s.pos%len(s.pieces)]
	s.pos++
	return p
}

// NewRandomizer builds the randomizer named in the pieces config.
func NewRandomizer(name string, seed int64) (Randomizer, error) {
	switch name {
	case config.RandomizerUniform, "":
		return NewUniform(seed), nil
	case config.RandomizerBag:
		return NewBag(seed), nil
	default:
		return nil, fmt.Errorf("tetris: unknown randomizer %q", name)
	}
}
