package tetris

import "math/rand"

// Randomizer names accepted by NewRandomizer.
const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

// Randomizer draws the next shape for the lookahead queue.
type Randomizer interface {
	Next() Shape
}

// NewRandomizer returns the randomizer with the given name seeded from rng.
// Unknown names fall back to uniform.
func NewRandomizer(name string, rng *rand.Rand) Randomizer {
	if name == RandomizerBag {
		return &bagRandomizer{rng: rng}
	}
	return &uniformRandomizer{rng: rng}
}

// uniformRandomizer picks each shape independently with equal probability.
type uniformRandomizer struct {
	rng *rand.Rand
}

func (u *uniformRandomizer) Next() Shape {
	return Shape(u.rng.Intn(ShapeCount) + 1)
}

// bagRandomizer deals all seven shapes in a shuffled order before
// reshuffling, bounding droughts of any one shape.
type bagRandomizer struct {
	rng *rand.Rand
	bag []Shape
}

func (b *bagRandomizer) Next() Shape {
	if len(b.bag) == 0 {
		for _, i := range b.rng.Perm(ShapeCount) {
			b.bag = append(b.bag, Shape(i+1))
		}
	}
	s := b.bag[0]
	b.bag = b.bag[1:]
	return s
}
