/*
Package dag is a small directed-acyclic-graph engine with two phases.

A Builder accepts edge insertions. Freeze hands its nodes over to an
immutable Graph that only answers queries, most importantly LevelOrder,
which labels every node with the length of the longest path reaching it.

Basic usage:

	b := dag.NewBuilder[string]()
	b.AddEdge("a", "b")
	g := b.Freeze()
	levels, err := g.LevelOrder()
*/
package dag

import (
	"github.com/pkg/errors"
)

// Builder collects edges. It is not safe for concurrent use.
type Builder[N comparable] struct {
	adj      map[N][]N // successor lists
	indegree map[N]int // one entry per registered node
	frozen   bool
}

// NewBuilder returns an empty Builder.
func NewBuilder[N comparable]() *Builder[N] {
	return &Builder[N]{
		adj:      make(map[N][]N),
		indegree: make(map[N]int),
	}
}

// AddEdge registers the edge u -> v. Inserting the same pair again is a
// no-op. Both endpoints become registered nodes; u keeps indegree 0 until
// something points at it.
func (b *Builder[N]) AddEdge(u, v N) error {
	if b.frozen {
		return ErrAddAfterFreeze
	}

	// Successor lists are short (one receptive-field overlap), a linear
	// scan is enough.
	for _, s := range b.adj[u] {
		if s == v {
			return nil
		}
	}

	b.adj[u] = append(b.adj[u], v)
	if _, ok := b.indegree[u]; !ok {
		b.indegree[u] = 0
	}
	b.indegree[v]++
	return nil
}

// IsEmpty reports whether no node has been registered yet.
func (b *Builder[N]) IsEmpty() bool {
	return len(b.indegree) == 0
}

// Frozen reports whether Freeze has been called.
func (b *Builder[N]) Frozen() bool {
	return b.frozen
}

// Freeze ends the build phase and returns the finished graph. The builder
// rejects further edges; calling Freeze again returns an equivalent graph.
func (b *Builder[N]) Freeze() *Graph[N] {
	b.frozen = true
	return &Graph[N]{adj: b.adj, indegree: b.indegree}
}

// Edge is a directed edge From -> To.
type Edge[N comparable] struct {
	From N
	To   N
}

// Graph is a frozen dependency graph. All methods are read-only and it may
// be shared between goroutines.
type Graph[N comparable] struct {
	adj      map[N][]N
	indegree map[N]int
}

// Len returns the number of registered nodes.
func (g *Graph[N]) Len() int {
	return len(g.indegree)
}

// Has reports whether n is a registered node.
func (g *Graph[N]) Has(n N) bool {
	_, ok := g.indegree[n]
	return ok
}

// InDegree returns the number of distinct predecessors of n.
func (g *Graph[N]) InDegree(n N) int {
	return g.indegree[n]
}

// Successors returns a copy of the direct successors of n in insertion order.
func (g *Graph[N]) Successors(n N) []N {
	out := make([]N, len(g.adj[n]))
	copy(out, g.adj[n])
	return out
}

// Nodes returns every registered node in unspecified order.
func (g *Graph[N]) Nodes() []N {
	nodes := make([]N, 0, len(g.indegree))
	for n := range g.indegree {
		nodes = append(nodes, n)
	}
	return nodes
}

// Edges returns every edge in unspecified order.
func (g *Graph[N]) Edges() []Edge[N] {
	var edges []Edge[N]
	for u, succ := range g.adj {
		for _, v := range succ {
			edges = append(edges, Edge[N]{From: u, To: v})
		}
	}
	return edges
}

// LevelOrder labels every node with its schedule level using Kahn's
// algorithm: sources get level 0 and every other node gets one more than
// the maximum level of its direct predecessors.
//
// If some nodes never reach indegree 0 the graph has a cycle and an error
// wrapping ErrNotAcyclic is returned instead of a partial result.
func (g *Graph[N]) LevelOrder() (map[N]int, error) {
	remaining := make(map[N]int, len(g.indegree))
	for n, d := range g.indegree {
		remaining[n] = d
	}

	levels := make(map[N]int, len(g.indegree))
	queue := make([]N, 0)
	for n, d := range remaining {
		if d == 0 {
			queue = append(queue, n)
			levels[n] = 0
		}
	}

	processed := 0
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		processed++

		next := levels[n] + 1
		for _, s := range g.adj[n] {
			if next > levels[s] {
				levels[s] = next
			}
			remaining[s]--
			if remaining[s] == 0 {
				queue = append(queue, s)
			}
		}
	}

	if processed != len(g.indegree) {
		return nil, errors.Wrapf(ErrNotAcyclic, "%d of %d nodes are on or behind a cycle",
			len(g.indegree)-processed, len(g.indegree))
	}
	return levels, nil
}
