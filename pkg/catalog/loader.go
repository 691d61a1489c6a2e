// Package catalog provides the read-only wine region and grape variety
// reference data that terroir queries are scored against.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/HerbHall/terroir/pkg/models"
)

//go:embed catalog.yaml
var catalogRawData []byte

// ErrNotFound is returned when an id does not name a catalog entity.
var ErrNotFound = errors.New("catalog: not found")

// catalogFile is the top-level structure of the YAML document.
type catalogFile struct {
	Regions []models.Region `yaml:"regions"`
	Grapes  []models.Grape  `yaml:"grapes"`
}

// Catalog is an immutable set of regions and grapes addressable by id.
// It is safe for concurrent use.
type Catalog struct {
	regions     []models.Region
	grapes      []models.Grape
	regionIndex map[string]int
	grapeIndex  map[string]int
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog, parsed on first access.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(catalogRawData)
	})
	return defaultCat, defaultErr
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse yaml: %w", err)
	}
	return New(f.Regions, f.Grapes)
}

// New builds a catalog from already-decoded records. Records are validated
// and deep-copied; the caller's slices are not retained.
func New(regions []models.Region, grapes []models.Grape) (*Catalog, error) {
	c := &Catalog{
		regions:     make([]models.Region, len(regions)),
		grapes:      make([]models.Grape, len(grapes)),
		regionIndex: make(map[string]int, len(regions)),
		grapeIndex:  make(map[string]int, len(grapes)),
	}
	for i := range regions {
		c.regions[i] = regions[i].Clone()
	}
	for i := range grapes {
		c.grapes[i] = grapes[i].Clone()
	}

	for i := range c.regions {
		r := &c.regions[i]
		if err := validateRegion(r); err != nil {
			return nil, fmt.Errorf("catalog: region %d: %w", i, err)
		}
		if _, dup := c.regionIndex[r.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate region id %q", r.ID)
		}
		c.regionIndex[r.ID] = i
	}
	for i := range c.grapes {
		g := &c.grapes[i]
		if err := validateGrape(g); err != nil {
			return nil, fmt.Errorf("catalog: grape %d: %w", i, err)
		}
		if _, dup := c.grapeIndex[g.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate grape id %q", g.ID)
		}
		c.grapeIndex[g.ID] = i
	}
	return c, nil
}

// Regions returns deep copies of all regions in catalog order.
func (c *Catalog) Regions() []models.Region {
	cp := make([]models.Region, len(c.regions))
	for i := range c.regions {
		cp[i] = c.regions[i].Clone()
	}
	return cp
}

// Grapes returns deep copies of all grapes in catalog order.
func (c *Catalog) Grapes() []models.Grape {
	cp := make([]models.Grape, len(c.grapes))
	for i := range c.grapes {
		cp[i] = c.grapes[i].Clone()
	}
	return cp
}

// Region looks up a region by id.
func (c *Catalog) Region(id string) (models.Region, error) {
	i, ok := c.regionIndex[id]
	if !ok {
		return models.Region{}, fmt.Errorf("region %q: %w", id, ErrNotFound)
	}
	return c.regions[i].Clone(), nil
}

// Grape looks up a grape by id.
func (c *Catalog) Grape(id string) (models.Grape, error) {
	i, ok := c.grapeIndex[id]
	if !ok {
		return models.Grape{}, fmt.Errorf("grape %q: %w", id, ErrNotFound)
	}
	return c.grapes[i].Clone(), nil
}

// KeyGrapes resolves a region's grape ids. Ids that name no catalog grape
// are skipped.
func (c *Catalog) KeyGrapes(r models.Region) []models.Grape {
	out := make([]models.Grape, 0, len(r.KeyGrapes))
	for _, id := range r.KeyGrapes {
		if i, ok := c.grapeIndex[id]; ok {
			out = append(out, c.grapes[i].Clone())
		}
	}
	return out
}

// TypicalRegions resolves a grape's region ids. Ids that name no catalog
// region are skipped.
func (c *Catalog) TypicalRegions(g models.Grape) []models.Region {
	out := make([]models.Region, 0, len(g.TypicalRegions))
	for _, id := range g.TypicalRegions {
		if i, ok := c.regionIndex[id]; ok {
			out = append(out, c.regions[i].Clone())
		}
	}
	return out
}

// DanglingReference is a relationship id that resolves to nothing.
type DanglingReference struct {
	From string `json:"from"`
	ID   string `json:"id"`
}

// DanglingReferences lists every relationship id that does not resolve,
// region key grapes first, then grape typical regions.
func (c *Catalog) DanglingReferences() []DanglingReference {
	var out []DanglingReference
	for i := range c.regions {
		for _, id := range c.regions[i].KeyGrapes {
			if _, ok := c.grapeIndex[id]; !ok {
				out = append(out, DanglingReference{From: c.regions[i].ID, ID: id})
			}
		}
	}
	for i := range c.grapes {
		for _, id := range c.grapes[i].TypicalRegions {
			if _, ok := c.regionIndex[id]; !ok {
				out = append(out, DanglingReference{From: c.grapes[i].ID, ID: id})
			}
		}
	}
	return out
}

func validateRegion(r *models.Region) error {
	if r.ID == "" {
		return errors.New("missing id")
	}
	if r.Name == "" {
		return fmt.Errorf("%s: missing name", r.ID)
	}
	if r.Country == "" {
		return fmt.Errorf("%s: missing country", r.ID)
	}
	if err := r.Climate.Validate(); err != nil {
		return fmt.Errorf("%s: climate: %w", r.ID, err)
	}
	return nil
}

func validateGrape(g *models.Grape) error {
	if g.ID == "" {
		return errors.New("missing id")
	}
	if g.Name == "" {
		return fmt.Errorf("%s: missing name", g.ID)
	}
	if !g.Color.Valid() {
		return fmt.Errorf("%s: unknown color %q", g.ID, g.Color)
	}
	if err := g.PreferredClimate.Validate(); err != nil {
		return fmt.Errorf("%s: preferred climate: %w", g.ID, err)
	}
	if err := validateProfile(g.FlavorProfile); err != nil {
		return fmt.Errorf("%s: flavor profile: %w", g.ID, err)
	}
	return nil
}

func validateProfile(p models.FlavorProfile) error {
	attrs := []struct {
		name string
		v    float64
	}{
		{"acidity", p.Acidity},
		{"tannin", p.Tannin},
		{"body", p.Body},
		{"fruitiness", p.Fruitiness},
		{"earthiness", p.Earthiness},
	}
	for _, a := range attrs {
		if a.v < 1 || a.v > 5 {
			return fmt.Errorf("%s %g outside [1,5]", a.name, a.v)
		}
	}
	return nil
}
