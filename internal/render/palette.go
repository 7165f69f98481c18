// Package render draws the meta page visualizations as SVG and HTML
// fragments. Every renderer is a function of its explicit inputs.
package render

import (
	"sync"
)

// Tableau10 is d3.schemeTableau10.
var Tableau10 = []string{
	"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f",
	"#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab",
}

// Palette is an ordinal color scale keyed by language. A language keeps
// its color for the lifetime of the palette, so filtered views agree
// with the full view.
type Palette struct {
	mu     sync.Mutex
	colors []string
	byKey  map[string]string
}

// NewPalette assigns colors to languages in the order given.
func NewPalette(languages []string) *Palette {
	p := &Palette{colors: Tableau10, byKey: make(map[string]string)}
	for _, lang := range languages {
		p.Color(lang)
	}
	return p
}

// Color returns the language's color, assigning the next free one on
// first sight.
func (p *Palette) Color(language string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.byKey[language]; ok {
		return c
	}
	c := p.colors[len(p.byKey)%len(p.colors)]
	p.byKey[language] = c
	return c
}
