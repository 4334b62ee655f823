// Package order provides Orderer strategies that decide the sequence in which
// fragments are considered before the generator selects its trailing slice.
// Every Orderer returns a permutation of its input and never mutates the
// caller's slice.
package order

import (
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/goliatone/go-poemgen/internal/registry"
	"github.com/goliatone/go-poemgen/pkg/fragment"
)

// Built-in orderer names.
const (
	NameSequential = "sequential"
	NameRandom     = "random"
	NameReverse    = "reverse"
)

// Orderer permutes a fragment sequence.
type Orderer interface {
	Order(seq fragment.Sequence) fragment.Sequence
}

// Func adapts a plain function to the Orderer interface. The function receives
// a private copy of the input.
type Func func(seq fragment.Sequence) fragment.Sequence

// Order implements Orderer.
func (f Func) Order(seq fragment.Sequence) fragment.Sequence {
	return f(seq.Clone())
}

// Identity keeps source order.
type Identity struct{}

// NewIdentity returns the identity orderer.
func NewIdentity() Identity {
	return Identity{}
}

// Order returns a copy equal to seq.
func (Identity) Order(seq fragment.Sequence) fragment.Sequence {
	return seq.Clone()
}

// Reverse flips the source order.
type Reverse struct{}

// Order returns seq reversed.
func (Reverse) Order(seq fragment.Sequence) fragment.Sequence {
	out := seq.Clone()
	slices.Reverse(out)
	return out
}

// ShuffleOption configures a Shuffle orderer.
type ShuffleOption func(*Shuffle)

// WithSeed makes the shuffle reproducible by drawing from a PCG source seeded
// with seed.
func WithSeed(seed uint64) ShuffleOption {
	return func(s *Shuffle) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRand draws permutations from rng. The shuffle serialises access to it.
func WithRand(rng *rand.Rand) ShuffleOption {
	return func(s *Shuffle) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// Shuffle returns a uniformly random permutation on every call.
type Shuffle struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewShuffle constructs a Shuffle orderer. Without options it uses the
// runtime's global generator, which is safe for concurrent use.
func NewShuffle(options ...ShuffleOption) *Shuffle {
	s := &Shuffle{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Order returns a shuffled copy of seq.
func (s *Shuffle) Order(seq fragment.Sequence) fragment.Sequence {
	out := seq.Clone()
	swap := func(i, j int) { out[i], out[j] = out[j], out[i] }

	if s == nil || s.rng == nil {
		rand.Shuffle(len(out), swap)
		return out
	}

	s.mu.Lock()
	s.rng.Shuffle(len(out), swap)
	s.mu.Unlock()
	return out
}

// Registry maps names to orderers.
type Registry = registry.Registry[Orderer]

// NewRegistry creates an empty orderer registry.
func NewRegistry() *Registry {
	return registry.New[Orderer]("orderer")
}

// DefaultRegistry returns a registry holding the built-in orderers.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.MustRegister(NameSequential, NewIdentity())
	reg.MustRegister(NameRandom, NewShuffle())
	reg.MustRegister(NameReverse, Reverse{})
	return reg
}

// Named resolves name against reg, swapping the random orderer for a seeded
// one when seed is non-nil.
func Named(reg *Registry, name string, seed *uint64) (Orderer, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}
	o, err := reg.Get(name)
	if err != nil {
		return nil, err
	}
	if _, ok := o.(*Shuffle); ok && seed != nil {
		return NewShuffle(WithSeed(*seed)), nil
	}
	return o, nil
}
