// Package catalog indexes loaded paths for name lookup, suggestions, and
// random selection.
package catalog

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/glorybound/cardbot/internal/library"
	apperrors "github.com/glorybound/cardbot/internal/platform/errors"
	"github.com/glorybound/cardbot/internal/platform/random"
)

// HeirloomPathName is the path whose cards are heirlooms rather than
// regular path cards.
const HeirloomPathName = "Heirloom"

type entry struct {
	lower string
	card  *library.Card
	path  *library.Path
}

// Catalog is an immutable index over a set of loaded paths. The only
// mutable state is the random source, which is guarded by a mutex.
type Catalog struct {
	paths    []*library.Path
	heirloom *library.Path
	entries  []entry
	warnings []string

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithRand sets the random source, for deterministic selection in tests.
func WithRand(rng *rand.Rand) Option {
	return func(c *Catalog) { c.rng = rng }
}

// New builds a catalog over the given paths. Cards are indexed in path
// load order. Name collisions across paths (compared case-insensitively)
// are reported as warnings; every card is still indexed, exact lookup
// simply resolves to the earlier declaration on a full-name tie.
func New(paths []*library.Path, opts ...Option) *Catalog {
	c := &Catalog{paths: paths}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		seed, err := random.NewSeed()
		if err != nil {
			seed = time.Now().UnixNano()
		}
		c.rng = rand.New(rand.NewSource(seed))
	}

	seen := make(map[string]string)
	for _, p := range paths {
		if p.Name == HeirloomPathName {
			c.heirloom = p
		}
		for _, card := range p.Cards {
			lower := strings.ToLower(card.Name)
			if prev, ok := seen[lower]; ok {
				c.warnings = append(c.warnings,
					fmt.Sprintf("card %q in path %q collides with a card in path %q", card.Name, p.Name, prev))
			} else {
				seen[lower] = p.Name
			}
			c.entries = append(c.entries, entry{lower: lower, card: card, path: p})
		}
	}
	return c
}

// Warnings returns index-time warnings, such as card names declared by
// more than one path.
func (c *Catalog) Warnings() []string {
	return c.warnings
}

// Paths returns all indexed paths in load order.
func (c *Catalog) Paths() []*library.Path {
	return c.paths
}

// CardCount returns the number of indexed cards.
func (c *Catalog) CardCount() int {
	return len(c.entries)
}

// FindByName looks a card up by exact, case-sensitive name across all
// paths in load order. The returned path is the one the card belongs to.
func (c *Catalog) FindByName(name string) (*library.Card, *library.Path, error) {
	for _, e := range c.entries {
		if e.card.Name == name {
			return e.card, e.path, nil
		}
	}
	return nil, nil, apperrors.WithMetadata(apperrors.CodeCardNotFound,
		fmt.Sprintf("card %q not found", name),
		map[string]string{"CardName": name})
}

// PathByName looks a path up by exact name.
func (c *Catalog) PathByName(name string) (*library.Path, error) {
	for _, p := range c.paths {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, apperrors.WithMetadata(apperrors.CodeNotFound,
		fmt.Sprintf("path %q not found", name),
		map[string]string{"PathName": name})
}

// PathSelectorOptions returns the names of all regular paths, in load
// order. The heirloom path is not a selectable pick option.
func (c *Catalog) PathSelectorOptions() []string {
	var names []string
	for _, p := range c.paths {
		if p.Name == HeirloomPathName {
			continue
		}
		names = append(names, p.Name)
	}
	return names
}

// RandomCard returns a uniformly random non-heirloom card and its path.
func (c *Catalog) RandomCard() (*library.Card, *library.Path, error) {
	var pool []entry
	for _, e := range c.entries {
		if e.path.Name == HeirloomPathName {
			continue
		}
		pool = append(pool, e)
	}
	if len(pool) == 0 {
		return nil, nil, apperrors.New(apperrors.CodeNotFound, "no cards indexed")
	}
	c.mu.Lock()
	i := c.rng.Intn(len(pool))
	c.mu.Unlock()
	return pool[i].card, pool[i].path, nil
}

// RandomHeirloom returns a uniformly random heirloom card.
func (c *Catalog) RandomHeirloom() (*library.Card, error) {
	if c.heirloom == nil || len(c.heirloom.Cards) == 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "no heirloom path indexed")
	}
	c.mu.Lock()
	i := c.rng.Intn(len(c.heirloom.Cards))
	c.mu.Unlock()
	return c.heirloom.Cards[i], nil
}

// RandomPath returns a uniformly random path, the heirloom path included.
func (c *Catalog) RandomPath() (*library.Path, error) {
	if len(c.paths) == 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "no paths indexed")
	}
	c.mu.Lock()
	i := c.rng.Intn(len(c.paths))
	c.mu.Unlock()
	return c.paths[i], nil
}

// SamplePack draws three distinct heirlooms and three distinct regular
// paths, the raw material for a weekly pick.
func (c *Catalog) SamplePack() (heirlooms [3]*library.Card, paths [3]*library.Path, err error) {
	if c.heirloom == nil || len(c.heirloom.Cards) < 3 {
		return heirlooms, paths, apperrors.New(apperrors.CodeNotFound, "need at least three heirlooms")
	}
	var regular []*library.Path
	for _, p := range c.paths {
		if p.Name != HeirloomPathName {
			regular = append(regular, p)
		}
	}
	if len(regular) < 3 {
		return heirlooms, paths, apperrors.New(apperrors.CodeNotFound, "need at least three paths")
	}

	c.mu.Lock()
	hperm := c.rng.Perm(len(c.heirloom.Cards))
	pperm := c.rng.Perm(len(regular))
	c.mu.Unlock()

	for i := 0; i < 3; i++ {
		heirlooms[i] = c.heirloom.Cards[hperm[i]]
		paths[i] = regular[pperm[i]]
	}
	return heirlooms, paths, nil
}
