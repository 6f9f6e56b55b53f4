// Package modeadapter turns raw lesson content into mode-specific exercise items.
//
// The pipeline is: content blocks -> sentence pairs (Extract) -> optional
// difficulty filtering (Classify) -> formatted items (FormatForMode). Every
// stage is a pure function of its inputs apart from the injected Random source
// used by the listening formatter.
package modeadapter

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// Random is the randomness the listening formatter draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Glossary looks up a short definition for a vocabulary word.
type Glossary interface {
	Define(word string) (definition string, ok bool)
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int                     { return rand.IntN(n) }
func (globalRandom) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

type stubGlossary struct{}

func (stubGlossary) Define(word string) (string, bool) {
	return fmt.Sprintf("「%s」的释义", word), true
}

// Adapter runs the content-to-learning-mode pipeline.
type Adapter struct {
	log      logrus.FieldLogger
	rnd      Random
	glossary Glossary
	cfg      Config
}

type Option func(*Adapter)

// WithLogger sets the logger used for skipped-block warnings.
func WithLogger(log logrus.FieldLogger) Option {
	return func(a *Adapter) {
		if log != nil {
			a.log = log
		}
	}
}

// WithRandom injects the randomness source, e.g. a seeded generator in tests.
func WithRandom(rnd Random) Option {
	return func(a *Adapter) {
		if rnd != nil {
			a.rnd = rnd
		}
	}
}

// WithGlossary sets the dictionary used for english-to-chinese context vocabulary.
func WithGlossary(g Glossary) Option {
	return func(a *Adapter) {
		if g != nil {
			a.glossary = g
		}
	}
}

// WithConfig overrides the formatting knobs.
func WithConfig(cfg Config) Option {
	return func(a *Adapter) {
		a.cfg = cfg.withDefaults()
	}
}

// New builds an Adapter. Without options it logs to the logrus standard
// logger and draws from the process-wide random source.
func New(opts ...Option) *Adapter {
	a := &Adapter{
		log:      logrus.StandardLogger(),
		rnd:      globalRandom{},
		glossary: stubGlossary{},
		cfg:      DefaultConfig(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
