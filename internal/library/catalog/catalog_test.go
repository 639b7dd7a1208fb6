package catalog

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/glorybound/cardbot/internal/library"
	apperrors "github.com/glorybound/cardbot/internal/platform/errors"
)

func testPaths() []*library.Path {
	mk := func(pathName string, cardNames ...string) *library.Path {
		p := &library.Path{Name: pathName, Resources: "WSF"}
		for _, name := range cardNames {
			p.Cards = append(p.Cards, &library.Card{Name: name, Text: "t", PathCardName: name})
		}
		return p
	}
	return []*library.Path{
		mk("Path of the Bear", "Maul", "Cub"),
		mk("Path of the Owl", "Insight", "Sworder"),
		mk("Path of the Fox", "Trick"),
		mk("Path of the Stag", "Charge"),
		mk(HeirloomPathName, "Circlet of Obsession", "Explorer's Pack", "Old Coin", "Worn Map"),
	}
}

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	return New(testPaths(), WithRand(rand.New(rand.NewSource(1))))
}

func TestFindByName(t *testing.T) {
	c := newTestCatalog(t)

	card, path, err := c.FindByName("Insight")
	if err != nil {
		t.Fatalf("FindByName() error: %v", err)
	}
	if card.Name != "Insight" || path.Name != "Path of the Owl" {
		t.Errorf("FindByName() = %q in %q", card.Name, path.Name)
	}
}

func TestFindByNameCaseSensitive(t *testing.T) {
	c := newTestCatalog(t)

	_, _, err := c.FindByName("insight")
	if err == nil {
		t.Fatal("FindByName() matched with wrong case")
	}
	if apperrors.CodeOf(err) != apperrors.CodeCardNotFound {
		t.Errorf("CodeOf() = %v", apperrors.CodeOf(err))
	}
}

func TestFindByNameNotFound(t *testing.T) {
	c := newTestCatalog(t)

	_, _, err := c.FindByName("Missing")
	if err == nil {
		t.Fatal("FindByName() returned nil error")
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("error is not an app error: %v", err)
	}
	if appErr.Metadata["CardName"] != "Missing" {
		t.Errorf("Metadata = %v", appErr.Metadata)
	}
}

func TestDuplicateCardWarning(t *testing.T) {
	paths := testPaths()
	paths[2].Cards = append(paths[2].Cards, &library.Card{Name: "Maul", Text: "t"})
	c := New(paths, WithRand(rand.New(rand.NewSource(1))))

	if len(c.Warnings()) != 1 {
		t.Fatalf("Warnings() = %v, want one entry", c.Warnings())
	}

	// Exact lookup resolves a full-name tie to the earlier declaration.
	_, path, err := c.FindByName("Maul")
	if err != nil {
		t.Fatalf("FindByName() error: %v", err)
	}
	if path.Name != "Path of the Bear" {
		t.Errorf("Maul resolved to %q", path.Name)
	}
}

func TestCaseCollidingCardStaysReachable(t *testing.T) {
	// "MAUL" collides case-insensitively with "Maul"; it is warned about
	// but still indexed, since exact lookup is case-sensitive.
	paths := testPaths()
	paths[2].Cards = append(paths[2].Cards, &library.Card{Name: "MAUL", Text: "t"})
	c := New(paths, WithRand(rand.New(rand.NewSource(1))))

	if len(c.Warnings()) != 1 {
		t.Fatalf("Warnings() = %v, want one entry", c.Warnings())
	}

	_, path, err := c.FindByName("MAUL")
	if err != nil {
		t.Fatalf("FindByName(MAUL) error: %v", err)
	}
	if path.Name != "Path of the Fox" {
		t.Errorf("MAUL resolved to %q", path.Name)
	}

	_, path, err = c.FindByName("Maul")
	if err != nil {
		t.Fatalf("FindByName(Maul) error: %v", err)
	}
	if path.Name != "Path of the Bear" {
		t.Errorf("Maul resolved to %q", path.Name)
	}
}

func TestPathSelectorOptionsExcludesHeirloom(t *testing.T) {
	c := newTestCatalog(t)

	opts := c.PathSelectorOptions()
	if len(opts) != 4 {
		t.Fatalf("PathSelectorOptions() = %v", opts)
	}
	for _, name := range opts {
		if name == HeirloomPathName {
			t.Errorf("heirloom path offered as a pick option")
		}
	}
}

func TestRandomCardNeverHeirloom(t *testing.T) {
	c := newTestCatalog(t)

	for i := 0; i < 50; i++ {
		card, path, err := c.RandomCard()
		if err != nil {
			t.Fatalf("RandomCard() error: %v", err)
		}
		if path.Name == HeirloomPathName {
			t.Fatalf("RandomCard() returned heirloom %q", card.Name)
		}
	}
}

func TestRandomHeirloom(t *testing.T) {
	c := newTestCatalog(t)

	card, err := c.RandomHeirloom()
	if err != nil {
		t.Fatalf("RandomHeirloom() error: %v", err)
	}
	if _, path, _ := c.FindByName(card.Name); path.Name != HeirloomPathName {
		t.Errorf("RandomHeirloom() returned %q from %q", card.Name, path.Name)
	}
}

func TestRandomPathIncludesHeirloom(t *testing.T) {
	c := newTestCatalog(t)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		p, err := c.RandomPath()
		if err != nil {
			t.Fatalf("RandomPath() error: %v", err)
		}
		seen[p.Name] = true
	}
	if !seen[HeirloomPathName] {
		t.Errorf("RandomPath() never returned the heirloom path in 200 draws")
	}
}

func TestSamplePack(t *testing.T) {
	c := newTestCatalog(t)

	heirlooms, paths, err := c.SamplePack()
	if err != nil {
		t.Fatalf("SamplePack() error: %v", err)
	}

	seenH := make(map[string]bool)
	for _, h := range heirlooms {
		if seenH[h.Name] {
			t.Errorf("duplicate heirloom %q", h.Name)
		}
		seenH[h.Name] = true
		if _, path, _ := c.FindByName(h.Name); path.Name != HeirloomPathName {
			t.Errorf("%q is not an heirloom", h.Name)
		}
	}

	seenP := make(map[string]bool)
	for _, p := range paths {
		if seenP[p.Name] {
			t.Errorf("duplicate path %q", p.Name)
		}
		seenP[p.Name] = true
		if p.Name == HeirloomPathName {
			t.Errorf("heirloom path sampled as a regular path")
		}
	}
}

func TestSamplePackTooFewPaths(t *testing.T) {
	paths := testPaths()[2:] // two regular paths plus heirloom
	c := New(paths, WithRand(rand.New(rand.NewSource(1))))

	if _, _, err := c.SamplePack(); err == nil {
		t.Fatal("SamplePack() returned nil error with too few paths")
	}
}
