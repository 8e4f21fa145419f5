package dag

import (
	"testing"

	"github.com/specialistvlad/artifactsmith/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
	assert.Empty(t, g.order)
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("a")
	assert.Len(t, g.nodes, 1)
	nodeA, ok := g.nodes["a"]
	require.True(t, ok)
	assert.Equal(t, "a", nodeA.id)

	g.AddNode("a") // Test idempotency
	assert.Len(t, g.nodes, 1)
	assert.Same(t, nodeA, g.nodes["a"])

	g.AddNode("b")
	assert.Equal(t, []string{"a", "b"}, g.order)
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		require.NoError(t, g.AddEdge("a", "b")) // a includes b
		require.NoError(t, g.AddEdge("a", "b")) // repeated edge is a no-op

		require.Len(t, g.nodes["a"].children, 1)
		assert.Equal(t, "b", g.nodes["a"].children[0].id)
		require.Len(t, g.nodes["b"].parents, 1)
		assert.Equal(t, "a", g.nodes["b"].parents[0].id)
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("dne", "a")
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge("a", "dne")
		assert.ErrorContains(t, err, "destination node not found")

		err = g.AddEdge("a", "a")
		var mErr *errs.MaterializationError
		require.ErrorAs(t, err, &mErr)
		assert.Equal(t, []string{"a", "a"}, mErr.Chain)

	})
}

func TestRoots(t *testing.T) {
	g := New()
	for _, id := range []string{"app", "lib", "prefs", "tool"} {
		g.AddNode(id)
	}
	require.NoError(t, g.AddEdge("app", "lib"))
	require.NoError(t, g.AddEdge("lib", "prefs"))
	require.NoError(t, g.AddEdge("tool", "prefs"))

	assert.Equal(t, []string{"app", "tool"}, g.Roots())
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		g := New()
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("graph with nodes but no edges has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		g.AddNode("d")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("a", "c")) // Transitive edge
		require.NoError(t, g.AddEdge("c", "d"))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("simple direct cycle is detected", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a")) // Cycle

		var mErr *errs.MaterializationError
		require.ErrorAs(t, g.DetectCycles(), &mErr)
		assert.Equal(t, []string{"a", "b", "a"}, mErr.Chain)
	})

	t.Run("longer cycle is detected", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		g.AddNode("d")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("c", "d"))
		require.NoError(t, g.AddEdge("d", "a")) // Cycle back to the start

		err := g.DetectCycles()
		assert.ErrorContains(t, err, "include cycle: a -> b -> c -> d -> a")
	})

	t.Run("cycle in a disjoint component is detected", func(t *testing.T) {
		g := New()
		// Component 1 (valid)
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))

		// Component 2 (has a cycle)
		g.AddNode("x")
		g.AddNode("y")
		g.AddNode("z")
		require.NoError(t, g.AddEdge("x", "y"))
		require.NoError(t, g.AddEdge("y", "z"))
		require.NoError(t, g.AddEdge("z", "y")) // Cycle

		var mErr *errs.MaterializationError
		require.ErrorAs(t, g.DetectCycles(), &mErr)
		assert.Equal(t, []string{"y", "z", "y"}, mErr.Chain)
	})
}

func TestPostOrder(t *testing.T) {
	t.Run("children come before parents", func(t *testing.T) {
		g := New()
		g.AddNode("A")
		g.AddNode("B")
		g.AddNode("C")
		require.NoError(t, g.AddEdge("A", "B"))
		require.NoError(t, g.AddEdge("B", "C"))

		order, err := g.PostOrder()
		require.NoError(t, err)
		assert.Equal(t, []string{"C", "B", "A"}, order)
	})

	t.Run("shared child is visited once", func(t *testing.T) {
		g := New()
		for _, id := range []string{"p1", "p2", "shared"} {
			g.AddNode(id)
		}
		require.NoError(t, g.AddEdge("p1", "shared"))
		require.NoError(t, g.AddEdge("p2", "shared"))

		order, err := g.PostOrder(g.Roots()...)
		require.NoError(t, err)
		assert.Equal(t, []string{"shared", "p1", "p2"}, order)
	})

	t.Run("restricted to given roots", func(t *testing.T) {
		g := New()
		for _, id := range []string{"a", "b", "c", "d"} {
			g.AddNode(id)
		}
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("c", "d"))

		order, err := g.PostOrder("c")
		require.NoError(t, err)
		assert.Equal(t, []string{"d", "c"}, order)
	})

	t.Run("unknown root", func(t *testing.T) {
		g := New()
		_, err := g.PostOrder("ghost")
		assert.ErrorContains(t, err, "node not found: ghost")
	})
}
