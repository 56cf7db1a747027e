// Package render owns the per-node colors shown for the graph and hands
// finished frames to a drawing surface.
//
// # Layers
//
// A [Controller] composes four layers into one color per node, in a fixed
// order where later layers always win:
//
//  1. base: every node gets [Palette.Base]
//  2. coloring: the color class of each node, from a proper coloring
//  3. clique: [Palette.Clique] on the members of a highlighted clique
//  4. step: [Palette.Visited] and [Palette.Current] while a traversal animates
//
// # Animation
//
// [Controller.BeginAnimation] starts a traversal animation on an
// [animate.Scheduler]. At most one animation runs at a time; a second call
// while one is active fails with [ErrAnimationInProgress] and changes
// nothing.
//
// # Drawing
//
// Frames leave the controller through the [Drawer] interface, always as
// copies and never while the controller's state lock is held. Surfaces
// that must render on their own goroutine (a terminal UI loop, an SSE
// stream) put a [Queue] in front of their drawer and drain it where they
// render.
//
// The [nodelink] subpackage turns frames into Graphviz SVG.
//
// [nodelink]: github.com/matzehuels/graphwalk/pkg/render/nodelink
package render
