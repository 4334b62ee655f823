// Package generator composes a fragment source, an Orderer and a Formatter
// into a poem generator. Each axis of variation is its own strategy, so a
// random, echoing generator is New(WithOrderer(order.NewShuffle()),
// WithFormatter(format.NewDuplicate())) rather than yet another subclass.
//
// Generate(n) orders the full sequence, keeps the trailing n fragments,
// formats them and wraps the phrase in "This is {phrase}.". Generate(0) is
// valid and yields "This is ."; counts below zero or above the source size
// fail with ErrInvalidCount and are never clamped.
package generator
