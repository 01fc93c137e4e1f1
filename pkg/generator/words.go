package generator

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/incantata/pkg/core"
	"github.com/leapstack-labs/incantata/pkg/random"
)

// Generator pairs a validated Structure with a Source.
// A Generator is not safe for concurrent use because its Source is not;
// create one Generator per goroutine with a derived Source instead.
type Generator struct {
	structure *core.Structure
	src       random.Source
}

// New validates s and returns a Generator that owns a private copy of it.
// A nil src uses an entropy-seeded random.Rand.
func New(s *core.Structure, src random.Source) (*Generator, error) {
	if err := core.Validate(s); err != nil {
		return nil, err
	}
	if src == nil {
		src = random.New()
	}
	return &Generator{structure: s.Clone(), src: src}, nil
}

// MustNew is like New but panics on an invalid structure.
func MustNew(s *core.Structure, src random.Source) *Generator {
	g, err := New(s, src)
	if err != nil {
		panic(fmt.Sprintf("failed to create generator: %v", err))
	}
	return g
}

// Structure returns a copy of the generator's structure.
func (g *Generator) Structure() *core.Structure {
	return g.structure.Clone()
}

// Word generates one word.
func (g *Generator) Word() (string, error) {
	var b strings.Builder
	if _, err := word(g.structure, g.src, &b, nil); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Result is a generated word together with its syllables.
type Result struct {
	Text      string   `json:"text"`
	Syllables []string `json:"syllables"`
	// Len is the word length in characters, one per dictionary entry.
	Len int `json:"len"`
}

// Next generates one word and reports its syllables and length.
func (g *Generator) Next() (Result, error) {
	var b strings.Builder
	var parts []string
	units, err := word(g.structure, g.src, &b, &parts)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: b.String(), Syllables: parts, Len: units}, nil
}

// Syllables generates one word split into its syllables.
func (g *Generator) Syllables() ([]string, error) {
	var b strings.Builder
	var parts []string
	if _, err := word(g.structure, g.src, &b, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// Words generates n words.
func (g *Generator) Words(n int) ([]string, error) {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		w, err := g.Word()
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}
