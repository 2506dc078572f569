package places

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/uber/h3-go/v4"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed gazetteer.yaml
var embeddedGazetteer []byte

// Location is a named place with canonical coordinates.
type Location struct {
	Name string  `json:"name" yaml:"name"`
	Kind string  `json:"kind,omitempty" yaml:"kind"`
	Lat  float64 `json:"lat" yaml:"lat"`
	Lng  float64 `json:"lng" yaml:"lng"`
}

type gazetteerFile struct {
	Places    []Location          `yaml:"places"`
	Proximity map[string][]string `yaml:"proximity"`
}

// Gazetteer is an immutable name to coordinate table. It is safe for
// concurrent use once built.
type Gazetteer struct {
	byName    map[string]Location
	proximity map[string][]string
	sorted    []Location
	cells     map[h3.Cell][]Location
}

// NewGazetteer builds the gazetteer shipped with the binary.
func NewGazetteer() (*Gazetteer, error) {
	return Parse(embeddedGazetteer)
}

// MustNewGazetteer is NewGazetteer for process start-up, where a broken
// embedded table is a build defect.
func MustNewGazetteer() *Gazetteer {
	g, err := NewGazetteer()
	if err != nil {
		panic(err)
	}
	return g
}

// Parse builds a gazetteer from YAML. Names and proximity keys are normalized
// so entries written with accents still match.
func Parse(data []byte) (*Gazetteer, error) {
	var file gazetteerFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse gazetteer: %w", err)
	}

	g := &Gazetteer{
		byName:    make(map[string]Location, len(file.Places)),
		proximity: make(map[string][]string, len(file.Proximity)),
		sorted:    make([]Location, 0, len(file.Places)),
	}

	for i, loc := range file.Places {
		key := Normalize(loc.Name)
		if key == "" {
			return nil, fmt.Errorf("gazetteer entry %d: name is required", i)
		}
		if loc.Lat < -90 || loc.Lat > 90 || loc.Lng < -180 || loc.Lng > 180 {
			return nil, fmt.Errorf("gazetteer entry %q: coordinates out of range", loc.Name)
		}
		if _, exists := g.byName[key]; exists {
			return nil, fmt.Errorf("gazetteer entry %q: duplicate name", loc.Name)
		}
		g.byName[key] = loc
		g.sorted = append(g.sorted, loc)
	}

	for name, terms := range file.Proximity {
		normalized := make([]string, 0, len(terms))
		for _, term := range terms {
			if t := Normalize(term); t != "" {
				normalized = append(normalized, t)
			}
		}
		g.proximity[Normalize(name)] = normalized
	}

	sort.Slice(g.sorted, func(i, j int) bool {
		return Normalize(g.sorted[i].Name) < Normalize(g.sorted[j].Name)
	})

	g.buildIndex()
	return g, nil
}

// Normalize lower-cases and trims a place name and strips combining marks,
// so "Maputó" and "maputo" compare equal.
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return stripped
}

// Resolve returns the location for an exact normalized-name match.
func (g *Gazetteer) Resolve(name string) (Location, bool) {
	loc, ok := g.byName[Normalize(name)]
	return loc, ok
}

// ProximityTerms returns the curated neighbours of a place, or nil.
func (g *Gazetteer) ProximityTerms(name string) []string {
	terms := g.proximity[Normalize(name)]
	if len(terms) == 0 {
		return nil
	}
	out := make([]string, len(terms))
	copy(out, terms)
	return out
}

// List returns every entry ordered by name.
func (g *Gazetteer) List() []Location {
	out := make([]Location, len(g.sorted))
	copy(out, g.sorted)
	return out
}

// Len returns the number of known places.
func (g *Gazetteer) Len() int {
	return len(g.byName)
}
