// Package library defines the card/path content model and its loader.
//
// Content ships as one YAML document per path. Everything here is built once
// at process start and treated as immutable afterward; the only post-parse
// mutation is the single link-resolution pass that fills in LinkedTo.
package library

// Card type tags. "sequence" is never declared in source files; it is
// inferred from a marker embedded in the card text.
const (
	TypeOneshot   = "oneshot"
	TypePermanent = "permanent"
	TypeInnate    = "innate"
	TypeHeirloom  = "heirloom"
	TypeSupport   = "support"
	TypeSequence  = "sequence"
)

// Card is one named game item within a Path.
type Card struct {
	Name string
	Cost string
	Text string
	// Types holds the declared type tags plus the inferred "sequence" tag.
	Types []string
	// Linked is the raw declared link reference: a bare card name or a
	// brace-delimited list such as "{A, B}".
	Linked      string
	LinkedType  string
	LinkedShort *bool
	// PathCardName names the path-side card this card appears under when it
	// differs from the card's own name.
	PathCardName string
	// LinkedTo is the derived bidirectional link view, populated exactly once
	// by ResolveLinks. It stays nil when no links resolve so downstream
	// consumers can distinguish "no linked cards".
	LinkedTo    []*Card
	Purchase    *int
	UpgradeCost *int
	Upgrade     string
	BigArt      *bool
	Designer    string
}

// HasType reports whether the card carries the given type tag.
func (c *Card) HasType(tag string) bool {
	for _, t := range c.Types {
		if t == tag {
			return true
		}
	}
	return false
}

// Path is a themed category of cards with its own color scheme and
// resource signature.
type Path struct {
	Name string
	// Colors holds the primary color and the linked-card accent color,
	// each six hex digits.
	Colors [2]string
	// Resources is a three-character code over the W/S/F/X alphabet.
	Resources string
	Cards     []*Card
	Extras    string
}

// CardByName returns the first card with an exact name match, or nil.
func (p *Path) CardByName(name string) *Card {
	for _, c := range p.Cards {
		if c.Name == name {
			return c
		}
	}
	return nil
}
