// Package analysis provides structural queries over a [graph.Graph]:
// cycle detection and maximum-clique discovery.
//
// # Cycles
//
// [HasCycle] runs a depth-first search from every undiscovered node and
// tracks which nodes are on the current path. An edge to a node on the path
// that is not the immediate parent closes a cycle. Because the graph is
// undirected, the edge back to the parent is the tree edge itself and never
// counts. [FindCycle] returns the nodes of the first such cycle.
//
// # Cliques
//
// [MaximalCliques] enumerates every maximal clique with gonum's
// Bron-Kerbosch implementation. [MaximumClique] picks the largest of them.
// When several maximal cliques share the largest size, the one whose sorted
// member list is lexicographically smallest wins, so results do not depend
// on enumeration order.
package analysis
