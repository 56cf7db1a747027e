// Package animate plays a traversal result as a timed sequence of frames.
//
// A [Session] holds one traversal and tracks which frame is showing. A
// [Scheduler] drives a session on its own goroutine at a fixed interval
// and calls back into a [Player] for each frame:
//
//   - frame 0 shows the graph with no step highlight
//   - frame i (1..len) makes step i-1 current and every earlier step visited
//   - after the last frame the player's Complete is called and the session
//     is released
//
// The scheduler never touches graph or render state directly; the player
// (the render controller) owns that state.
package animate
