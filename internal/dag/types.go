package dag

// Graph is an insertion-ordered directed graph of include edges. It is
// built and walked by a single configure pass and is not safe for
// concurrent use.
type Graph struct {
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
	// order records node IDs in the order they were added.
	order []string
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs).
type node struct {
	id string
	// children are the nodes this node includes, in declaration order.
	children []*node
	// parents are the nodes that include this one, in declaration order.
	parents []*node
}

func (n *node) hasChild(id string) bool {
	for _, c := range n.children {
		if c.id == id {
			return true
		}
	}
	return false
}
