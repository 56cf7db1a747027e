// Package actions dispatches the user-facing operations: run a traversal,
// color the graph, check for a cycle, find the maximum clique, clear.
//
// A [Runner] computes each result over the graph, hands it to the render
// controller and returns a report. Every report renders itself as the log
// lines shown to the user through its Lines method, for example:
//
//	=== BFS ===
//	BFS order: [0, 1, 2, 3, ...] (34 nodes)
//
// A traversal requested while another animation is playing is not an
// error the user needs to fix: the report carries the notice and the
// returned error satisfies errors.Recoverable.
package actions
