package render

import (
	stderrors "errors"
	"slices"
)

// Frame is one composed picture of the graph: a color per node (index =
// node identity) and a title.
type Frame struct {
	Seq    uint64  `json:"seq"`
	Colors []Color `json:"colors"`
	Title  string  `json:"title"`
	Final  bool    `json:"final,omitempty"` // last frame of an animation
}

// Clone returns a deep copy of f.
func (f Frame) Clone() Frame {
	f.Colors = slices.Clone(f.Colors)
	return f
}

// Drawer renders frames. Implementations must not call back into a
// Controller's mutating methods from Draw.
type Drawer interface {
	Draw(Frame) error
}

// DrawerFunc adapts a function to the Drawer interface.
type DrawerFunc func(Frame) error

// Draw calls f(fr).
func (f DrawerFunc) Draw(fr Frame) error { return f(fr) }

// Discard is a Drawer that drops every frame.
var Discard Drawer = DrawerFunc(func(Frame) error { return nil })

// Tee returns a Drawer that hands each frame to every drawer in order and
// joins their errors.
func Tee(drawers ...Drawer) Drawer {
	return DrawerFunc(func(f Frame) error {
		var errs []error
		for _, d := range drawers {
			if err := d.Draw(f.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
		return stderrors.Join(errs...)
	})
}
