package dag

import (
	"fmt"

	"github.com/specialistvlad/artifactsmith/internal/errs"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{id: id}
	g.order = append(g.order, id)
}

// AddEdge records that parentID includes childID. A repeated edge is a
// no-op. A node including itself is a materialization error.
func (g *Graph) AddEdge(parentID, childID string) error {
	if parentID == childID {
		return &errs.MaterializationError{
			Chain:  []string{parentID, parentID},
			Reason: "artifact includes itself",
		}
	}

	parent, ok := g.nodes[parentID]
	if !ok {
		return fmt.Errorf("source node not found: %s", parentID)
	}
	child, ok := g.nodes[childID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", childID)
	}

	if parent.hasChild(childID) {
		return nil
	}
	parent.children = append(parent.children, child)
	child.parents = append(child.parents, parent)
	return nil
}

// Roots returns nodes that nobody includes, in insertion order.
func (g *Graph) Roots() []string {
	var roots []string
	for _, id := range g.order {
		if len(g.nodes[id].parents) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// DetectCycles checks the graph for any cycles. The returned
// *errs.MaterializationError names the chain that closes the loop,
// starting and ending at the same node.
func (g *Graph) DetectCycles() error {
	// Classic depth-first search. permanent nodes are fully explored and
	// safe. temporary nodes are on the current recursion stack.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)
	var stack []string

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			return &errs.MaterializationError{
				Chain:  cycleChain(stack, n.id),
				Reason: "include cycle",
			}
		}

		temporary[n.id] = true
		stack = append(stack, n.id)

		for _, child := range n.children {
			if err := visit(child); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		delete(temporary, n.id)
		permanent[n.id] = true
		return nil
	}

	for _, id := range g.order {
		if err := visit(g.nodes[id]); err != nil {
			return err
		}
	}
	return nil
}

// PostOrder lists every node reachable from roots with children before
// their parents. Each node appears once, however many parents include it.
// With no roots given, the walk starts from every node in insertion order.
// The graph must be acyclic; call DetectCycles first.
func (g *Graph) PostOrder(roots ...string) ([]string, error) {
	if len(roots) == 0 {
		roots = g.order
	}

	seen := make(map[string]bool)
	var out []string
	var visit func(n *node)
	visit = func(n *node) {
		if seen[n.id] {
			return
		}
		seen[n.id] = true
		for _, child := range n.children {
			visit(child)
		}
		out = append(out, n.id)
	}

	for _, id := range roots {
		n, ok := g.nodes[id]
		if !ok {
			return nil, fmt.Errorf("node not found: %s", id)
		}
		visit(n)
	}
	return out, nil
}

func cycleChain(stack []string, closing string) []string {
	for i, id := range stack {
		if id == closing {
			chain := append([]string{}, stack[i:]...)
			return append(chain, closing)
		}
	}
	return []string{closing, closing}
}
