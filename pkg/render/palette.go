package render

import (
	"fmt"

	"github.com/matzehuels/graphwalk/pkg/errors"
)

// Color is a Graphviz/CSS color: a lowercase name or a #rrggbb literal.
type Color string

// Palette names the colors used by each layer.
type Palette struct {
	Base     Color
	Clique   Color
	Current  Color
	Visited  Color
	Coloring []Color // color classes, cycled when a coloring uses more
}

// tableau is the ten-color categorical palette used first for color classes.
var tableau = []Color{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// css extends tableau with named CSS colors in alphabetical order.
var css = []Color{
	"aliceblue", "antiquewhite", "aqua", "aquamarine", "azure",
	"beige", "bisque", "black", "blanchedalmond", "blue",
	"blueviolet", "brown", "burlywood", "cadetblue", "chartreuse",
	"chocolate", "coral", "cornflowerblue", "cornsilk", "crimson",
	"cyan", "darkblue", "darkcyan", "darkgoldenrod", "darkgray",
	"darkgreen", "darkkhaki", "darkmagenta", "darkolivegreen", "darkorange",
}

// DefaultPalette returns lightblue nodes, a red clique, a gold current node
// and lightgreen visited nodes.
func DefaultPalette() Palette {
	classes := make([]Color, 0, len(tableau)+len(css))
	classes = append(classes, tableau...)
	classes = append(classes, css...)
	return Palette{
		Base:     "lightblue",
		Clique:   "red",
		Current:  "gold",
		Visited:  "lightgreen",
		Coloring: classes,
	}
}

// ClassColor returns the color for color class i, cycling through
// p.Coloring. It falls back to Base when p.Coloring is empty.
func (p Palette) ClassColor(i int) Color {
	if len(p.Coloring) == 0 || i < 0 {
		return p.Base
	}
	return p.Coloring[i%len(p.Coloring)]
}

// Validate checks every color in p.
func (p Palette) Validate() error {
	named := []struct {
		name string
		c    Color
	}{
		{"base", p.Base}, {"clique", p.Clique}, {"current", p.Current}, {"visited", p.Visited},
	}
	for _, n := range named {
		if err := errors.ValidateColor(string(n.c)); err != nil {
			return fmt.Errorf("palette %s: %w", n.name, err)
		}
	}
	for i, c := range p.Coloring {
		if err := errors.ValidateColor(string(c)); err != nil {
			return fmt.Errorf("palette coloring[%d]: %w", i, err)
		}
	}
	return nil
}
