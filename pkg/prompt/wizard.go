// Package prompt asks the user which orderer, formatter and line count to
// combine, one question at a time.
package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-poemgen/pkg/fragment"
)

// Choice is the wizard's answer set.
type Choice struct {
	Orderer   string
	Formatter string
	Count     int
	Seed      *uint64
}

// Wizard walks the user through building a generator.
type Wizard struct {
	driver       Driver
	orderers     []string
	formatters   []string
	descriptions map[string]string
	size         int
	defaults     Choice
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(w *Wizard) {
		if driver != nil {
			w.driver = driver
		}
	}
}

// WithOrderers sets the orderer names offered.
func WithOrderers(names ...string) Option {
	return func(w *Wizard) {
		w.orderers = append([]string(nil), names...)
	}
}

// WithFormatters sets the formatter names offered.
func WithFormatters(names ...string) Option {
	return func(w *Wizard) {
		w.formatters = append([]string(nil), names...)
	}
}

// WithDescription attaches help text to an orderer or formatter name.
func WithDescription(name, description string) Option {
	return func(w *Wizard) {
		if w.descriptions == nil {
			w.descriptions = make(map[string]string)
		}
		w.descriptions[name] = description
	}
}

// WithSize bounds the count question to [0, size].
func WithSize(size int) Option {
	return func(w *Wizard) {
		if size >= 0 {
			w.size = size
		}
	}
}

// WithDefaults preselects answers.
func WithDefaults(c Choice) Option {
	return func(w *Wizard) {
		w.defaults = c
	}
}

// NewWizard builds a wizard. Without WithDriver it prompts on the terminal;
// without WithSize counts are bounded by the built-in rhyme.
func NewWizard(options ...Option) *Wizard {
	w := &Wizard{size: fragment.HouseSize}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	if w.driver == nil {
		w.driver = NewSurveyDriver()
	}
	return w
}

// Run asks every question in turn and returns the collected choice.
func (w *Wizard) Run(ctx context.Context) (Choice, error) {
	var choice Choice

	orderer, err := w.pick(ctx, "How should the lines be ordered?", w.orderers, w.defaults.Orderer)
	if err != nil {
		return Choice{}, errors.Wrap(err, "prompt: orderer")
	}
	choice.Orderer = orderer

	formatter, err := w.pick(ctx, "How should each line be written?", w.formatters, w.defaults.Formatter)
	if err != nil {
		return Choice{}, errors.Wrap(err, "prompt: formatter")
	}
	choice.Formatter = formatter

	countDefault := w.defaults.Count
	if countDefault <= 0 || countDefault > w.size {
		countDefault = w.size
	}
	raw, err := w.driver.Input(ctx, InputConfig{
		Message:   "How many lines?",
		Default:   strconv.Itoa(countDefault),
		Help:      "The poem keeps this many lines from the end of the ordered rhyme.",
		Validator: w.validateCount,
	})
	if err != nil {
		return Choice{}, errors.Wrap(err, "prompt: count")
	}
	if err := w.validateCount(raw); err != nil {
		return Choice{}, err
	}
	choice.Count, _ = strconv.Atoi(strings.TrimSpace(raw))

	seed, err := w.askSeed(ctx)
	if err != nil {
		return Choice{}, err
	}
	choice.Seed = seed

	summary := fmt.Sprintf("%d lines, %s order, %s format", choice.Count, choice.Orderer, choice.Formatter)
	if err := w.driver.Info(ctx, summary); err != nil {
		return Choice{}, errors.Wrap(err, "prompt: summary")
	}
	return choice, nil
}

func (w *Wizard) pick(ctx context.Context, message string, options []string, preferred string) (string, error) {
	if len(options) == 0 {
		return "", ErrNoChoices
	}
	if len(options) == 1 {
		return options[0], nil
	}

	cfg := SelectConfig{
		Message:      message,
		Options:      options,
		DefaultIndex: indexOf(options, preferred),
	}
	if len(w.descriptions) > 0 {
		cfg.Descriptions = make([]string, len(options))
		for i, name := range options {
			cfg.Descriptions[i] = w.descriptions[name]
		}
	}

	idx, err := w.driver.Select(ctx, cfg)
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", errors.Newf("prompt: selection %d out of range", idx)
	}
	return options[idx], nil
}

func (w *Wizard) askSeed(ctx context.Context) (*uint64, error) {
	fixed, err := w.driver.Confirm(ctx, ConfirmConfig{
		Message: "Use a fixed seed?",
		Default: w.defaults.Seed != nil,
		Help:    "A fixed seed makes the random orderer repeatable.",
	})
	if err != nil {
		return nil, errors.Wrap(err, "prompt: seed")
	}
	if !fixed {
		return nil, nil
	}

	def := ""
	if w.defaults.Seed != nil {
		def = strconv.FormatUint(*w.defaults.Seed, 10)
	}
	raw, err := w.driver.Input(ctx, InputConfig{
		Message:   "Seed",
		Default:   def,
		Validator: validateSeed,
	})
	if err != nil {
		return nil, errors.Wrap(err, "prompt: seed")
	}
	if err := validateSeed(raw); err != nil {
		return nil, err
	}
	seed, _ := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	return &seed, nil
}

func (w *Wizard) validateCount(raw string) error {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return errors.Newf("prompt: %q is not a number", raw)
	}
	if n < 0 || n > w.size {
		return errors.Newf("prompt: enter a number between 0 and %d", w.size)
	}
	return nil
}

func validateSeed(raw string) error {
	if _, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64); err != nil {
		return errors.Newf("prompt: %q is not a valid seed", raw)
	}
	return nil
}
