// Package dag holds the include graph of one configure pass.
//
// An edge parent -> child means the parent's content references the child's
// target, so the child must be resolved first. The graph keeps insertion
// order for nodes and edges, which makes every traversal deterministic and
// keeps generated output byte-identical across runs.
package dag
