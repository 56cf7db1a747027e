// Package traverse implements breadth-first and depth-first traversal over a
// [graph.Graph].
//
// Both traversals return a [Result]: the reachable nodes in visit order, each
// paired with its depth. The start node is always first with depth 0 and
// every reachable node appears exactly once. Nodes in other components are
// omitted rather than reported as an error.
//
// Ties are broken by ascending node identity, so the same graph and start
// node always produce the same Result.
//
//   - [BreadthFirst]: depth is the shortest-path distance from the start.
//   - [DepthFirst]: pre-order, depth is the depth in the discovery tree.
package traverse
