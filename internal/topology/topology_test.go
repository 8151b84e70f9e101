package topology

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vk/dagreplay/internal/model"
)

func nodesByID(ids ...string) map[string]*model.ComputeNode {
	nodes := make(map[string]*model.ComputeNode, len(ids))
	for _, id := range ids {
		nodes[id] = &model.ComputeNode{ID: id, SpeedMultiplier: 1}
	}
	return nodes
}

func link(source, target string, bandwidth float64) *model.NetworkLink {
	return &model.NetworkLink{Source: source, Target: target, Bandwidth: bandwidth, LinkType: "test"}
}

func TestNew(t *testing.T) {
	t.Run("rejects non-positive bandwidth", func(t *testing.T) {
		_, err := New(nodesByID("a", "b"), []*model.NetworkLink{link("a", "b", 0)})
		assert.ErrorContains(t, err, "invalid bandwidth")
	})

	t.Run("rejects links with unknown endpoints", func(t *testing.T) {
		_, err := New(nodesByID("a"), []*model.NetworkLink{link("a", "ghost", 8)})
		assert.ErrorIs(t, err, ErrNodeNotFound)
	})

	t.Run("self-loops never become graph edges", func(t *testing.T) {
		topo, err := New(nodesByID("a", "b"), []*model.NetworkLink{
			link("a", "a", 8),
			link("a", "b", 8),
		})
		require.NoError(t, err)

		path, err := topo.Path("a", "b")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, path)

		l, ok := topo.Link("a", "a")
		require.True(t, ok)
		assert.True(t, l.IsSelfLoop())
	})
}

func TestPath(t *testing.T) {
	// a -- b -- c plus a slow direct a -- c shortcut. The two-hop route has
	// weight 1/8 + 1/8 = 0.25; the direct link has weight 1/2 = 0.5.
	topo, err := New(nodesByID("a", "b", "c"), []*model.NetworkLink{
		link("a", "b", 8),
		link("b", "c", 8),
		link("a", "c", 2),
	})
	require.NoError(t, err)

	t.Run("prefers the high-bandwidth route", func(t *testing.T) {
		path, err := topo.Path("a", "c")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, path)
	})

	t.Run("links are bidirectional", func(t *testing.T) {
		path, err := topo.Path("c", "a")
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b", "a"}, path)
	})

	t.Run("trivial path for identical endpoints", func(t *testing.T) {
		path, err := topo.Path("b", "b")
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, path)
	})

	t.Run("unknown endpoint", func(t *testing.T) {
		_, err := topo.Path("a", "ghost")
		assert.ErrorIs(t, err, ErrNodeNotFound)
	})

	t.Run("disconnected nodes", func(t *testing.T) {
		split, err := New(nodesByID("a", "b", "x"), []*model.NetworkLink{link("a", "b", 8)})
		require.NoError(t, err)
		_, err = split.Path("a", "x")
		assert.ErrorIs(t, err, ErrNoPath)
	})
}

func TestTransferTime(t *testing.T) {
	topo, err := New(nodesByID("a", "b", "c"), []*model.NetworkLink{
		link("a", "b", 8_000_000),
		link("b", "c", 16_000_000),
		link("a", "a", 80_000_000),
	})
	require.NoError(t, err)

	t.Run("single hop", func(t *testing.T) {
		d, err := topo.TransferTime("a", "b", 1_000_000)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, d, 1e-9)
	})

	t.Run("multi-hop times add per link", func(t *testing.T) {
		d, err := topo.TransferTime("a", "c", 1_000_000)
		require.NoError(t, err)
		assert.InDelta(t, 1.5, d, 1e-9)
	})

	t.Run("self-loop link models local transfer", func(t *testing.T) {
		d, err := topo.TransferTime("a", "a", 1_000_000)
		require.NoError(t, err)
		assert.InDelta(t, 0.1, d, 1e-9)
	})

	t.Run("local transfer without self-loop is free", func(t *testing.T) {
		d, err := topo.TransferTime("b", "b", 1_000_000)
		require.NoError(t, err)
		assert.Zero(t, d)
	})
}

func TestComputeTime(t *testing.T) {
	nodes := nodesByID("a")
	nodes["a"].SpeedMultiplier = 4
	topo, err := New(nodes, nil)
	require.NoError(t, err)

	d, err := topo.ComputeTime("a", 8, 1)
	require.NoError(t, err)
	assert.Equal(t, 2.0, d)

	_, err = topo.ComputeTime("ghost", 8, 1)
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

// Transfer time over a line topology must equal the sum of the individual
// hop times, regardless of line length or payload size.
func TestTransferTimeAdditivity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		hops := rapid.IntRange(1, 6).Draw(t, "hops")
		dataBytes := rapid.Float64Range(0, 1e9).Draw(t, "dataBytes")

		ids := make([]string, hops+1)
		for i := range ids {
			ids[i] = fmt.Sprintf("n%d", i)
		}

		var links []*model.NetworkLink
		var want float64
		for i := 0; i < hops; i++ {
			bw := rapid.Float64Range(1e3, 1e9).Draw(t, fmt.Sprintf("bw%d", i))
			links = append(links, link(ids[i], ids[i+1], bw))
			want += dataBytes / (bw / 8)
		}

		topo, err := New(nodesByID(ids...), links)
		if err != nil {
			t.Fatalf("building line topology: %v", err)
		}

		got, err := topo.TransferTime(ids[0], ids[hops], dataBytes)
		if err != nil {
			t.Fatalf("transfer time: %v", err)
		}
		if diff := got - want; diff > 1e-6*want+1e-12 || diff < -(1e-6*want+1e-12) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})
}
