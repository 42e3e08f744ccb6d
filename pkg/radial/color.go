package radial

// Category10 is the ten-color categorical palette used for the default
// domain.
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Category is a named taxonomic group and the color its subtree is drawn in.
type Category struct {
	Name  string `json:"name" toml:"name" yaml:"name"`
	Color string `json:"color" toml:"color" yaml:"color"`
}

// ColorDomain is an ordered set of categories. Node names are matched
// against category names exactly.
type ColorDomain []Category

// DefaultDomain returns the three domains of life.
func DefaultDomain() ColorDomain {
	return NewColorDomain([]string{"Bacteria", "Eukaryota", "Archaea"}, Category10)
}

// NewColorDomain pairs names with palette colors in order, cycling through
// the palette when there are more names than colors. An empty palette falls
// back to Category10.
func NewColorDomain(names, palette []string) ColorDomain {
	if len(palette) == 0 {
		palette = Category10
	}
	d := make(ColorDomain, len(names))
	for i, name := range names {
		d[i] = Category{Name: name, Color: palette[i%len(palette)]}
	}
	return d
}

// Lookup returns the color of the category named name.
func (d ColorDomain) Lookup(name string) (string, bool) {
	for _, c := range d {
		if c.Name == name {
			return c.Color, true
		}
	}
	return "", false
}

// Names returns the category names in order.
func (d ColorDomain) Names() []string {
	names := make([]string, len(d))
	for i, c := range d {
		names[i] = c.Name
	}
	return names
}
