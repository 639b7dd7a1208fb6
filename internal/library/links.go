package library

import (
	"regexp"
	"strings"
)

var braceGroup = regexp.MustCompile(`\{(.*?)\}`)

// ResolveLinks populates the LinkedTo view on every card. A card's linked
// field names its counterparts either as bare names or as comma-separated
// brace groups; cards named there link forward. Cards with no linked field
// of their own fall back to a loose reverse match: any card whose linked
// text contains their name links back to them. The reverse match is
// substring containment on purpose, since path card names sometimes embed
// the short name they are referenced by.
//
// Candidates come from the card's own path only; links never cross paths.
// Resolution never fails; unresolvable references simply leave LinkedTo nil.
func ResolveLinks(paths []*Path) {
	for _, p := range paths {
		for _, c := range p.Cards {
			var linked []*Card
			if c.Linked != "" {
				names := linkedNames(c.Linked)
				for _, d := range p.Cards {
					if d == c {
						continue
					}
					if names[d.Name] {
						linked = append(linked, d)
					}
				}
			} else {
				for _, d := range p.Cards {
					if d == c || d.Linked == "" {
						continue
					}
					if strings.Contains(d.Linked, c.Name) {
						linked = append(linked, d)
					}
				}
			}
			c.LinkedTo = linked
		}
	}
}

// linkedNames parses a linked field into the set of card names it mentions.
// "{A, B} and {C}" yields A, B, C; a field with no braces is a single name.
func linkedNames(field string) map[string]bool {
	names := make(map[string]bool)
	groups := braceGroup.FindAllStringSubmatch(field, -1)
	if len(groups) == 0 {
		names[strings.TrimSpace(field)] = true
		return names
	}
	for _, g := range groups {
		for _, name := range strings.Split(g[1], ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				names[name] = true
			}
		}
	}
	return names
}
