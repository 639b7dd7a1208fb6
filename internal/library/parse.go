package library

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/glorybound/cardbot/internal/platform/errors"
)

var (
	colorsPattern    = regexp.MustCompile(`^[0-9a-fA-F]{6}\s*-\s*[0-9a-fA-F]{6}$`)
	resourcesPattern = regexp.MustCompile(`^[WSFX]{3}$`)
	costPattern      = regexp.MustCompile(`^[SWFAX]*$`)
)

// sequenceMarker flags sequence cards inside card text.
const sequenceMarker = `\sequence`

var declaredTypes = map[string]bool{
	TypeOneshot:   true,
	TypePermanent: true,
	TypeInnate:    true,
	TypeHeirloom:  true,
	TypeSupport:   true,
}

type cardDoc struct {
	Cost         *string `yaml:"cost"`
	Types        string  `yaml:"types"`
	Linked       string  `yaml:"linked"`
	LinkedType   string  `yaml:"linked type"`
	LinkedShort  *bool   `yaml:"linked short"`
	PathCardName string  `yaml:"path card name"`
	Text         string  `yaml:"text"`
	Purchase     *int    `yaml:"purchase"`
	UpgradeCost  *int    `yaml:"upgrade cost"`
	Upgrade      string  `yaml:"upgrade"`
	BigArt       *bool   `yaml:"big art"`
	Designer     string  `yaml:"designer"`
}

type pathDoc struct {
	Path      string               `yaml:"path"`
	Colors    string               `yaml:"colors"`
	Resources string               `yaml:"resources"`
	Extras    string               `yaml:"extras"`
	Cards     []map[string]cardDoc `yaml:"cards"`
}

func schemaErr(format string, args ...any) error {
	return apperrors.New(apperrors.CodeContentSchemaInvalid, fmt.Sprintf(format, args...))
}

// ParsePath parses one YAML content document into a Path.
//
// The decode is strict: unknown keys are rejected so typos in hand-edited
// content surface at startup instead of silently dropping fields. Link
// resolution is a separate pass (ResolveLinks); the returned Path has no
// LinkedTo views yet.
func ParsePath(data []byte) (*Path, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc pathDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeContentSchemaInvalid, "decode path document", err)
	}

	if strings.TrimSpace(doc.Path) == "" {
		return nil, schemaErr("path name is required")
	}
	if !colorsPattern.MatchString(strings.TrimSpace(doc.Colors)) {
		return nil, schemaErr("path %q: colors must be two 6-hex values separated by a dash, got %q", doc.Path, doc.Colors)
	}
	if !resourcesPattern.MatchString(doc.Resources) {
		return nil, schemaErr("path %q: resources must be three characters over WSFX, got %q", doc.Path, doc.Resources)
	}
	if len(doc.Cards) == 0 {
		return nil, schemaErr("path %q: at least one card entry is required", doc.Path)
	}

	colorParts := strings.SplitN(doc.Colors, "-", 2)
	var colors [2]string
	colors[0] = strings.TrimSpace(colorParts[0])
	colors[1] = strings.TrimSpace(colorParts[1])

	cards := make([]*Card, 0, len(doc.Cards))
	for i, entry := range doc.Cards {
		if len(entry) != 1 {
			return nil, schemaErr("path %q: card entry %d must have exactly one top-level key, got %d", doc.Path, i, len(entry))
		}
		for name, attrs := range entry {
			card, err := buildCard(doc.Path, name, attrs)
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
		}
	}

	return &Path{
		Name:      doc.Path,
		Colors:    colors,
		Resources: doc.Resources,
		Cards:     cards,
		Extras:    doc.Extras,
	}, nil
}

func buildCard(pathName, name string, attrs cardDoc) (*Card, error) {
	if strings.TrimSpace(name) == "" {
		return nil, schemaErr("path %q: card name must not be empty", pathName)
	}

	if attrs.Cost == nil {
		return nil, schemaErr("path %q: card %q: cost is required", pathName, name)
	}
	cost := normalizeText(*attrs.Cost)
	if !costPattern.MatchString(cost) {
		return nil, schemaErr("path %q: card %q: cost must match the SWFAX alphabet, got %q", pathName, name, *attrs.Cost)
	}

	text := normalizeText(attrs.Text)
	if text == "" {
		return nil, schemaErr("path %q: card %q: text is required", pathName, name)
	}

	types, err := parseTypes(pathName, name, attrs.Types)
	if err != nil {
		return nil, err
	}
	if strings.Contains(text, sequenceMarker) {
		types = append(types, TypeSequence)
	}

	pathCardName := normalizeText(attrs.PathCardName)
	if pathCardName == "" {
		pathCardName = name
	}

	return &Card{
		Name:         name,
		Cost:         cost,
		Text:         text,
		Types:        types,
		Linked:       normalizeText(attrs.Linked),
		LinkedType:   normalizeText(attrs.LinkedType),
		LinkedShort:  attrs.LinkedShort,
		PathCardName: pathCardName,
		Purchase:     attrs.Purchase,
		UpgradeCost:  attrs.UpgradeCost,
		Upgrade:      normalizeText(attrs.Upgrade),
		BigArt:       attrs.BigArt,
		Designer:     normalizeText(attrs.Designer),
	}, nil
}

func parseTypes(pathName, cardName, raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	types := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if !declaredTypes[tag] {
			return nil, schemaErr("path %q: card %q: unknown type tag %q", pathName, cardName, tag)
		}
		types = append(types, tag)
	}
	return types, nil
}

// normalizeText trims a source string and promotes single newlines to
// paragraph breaks, matching how the content files encode card text.
func normalizeText(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n\n")
}
