package reactive_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delaneyj/signalflow/reactive"
)

func TestLifetimeClosesChildrenThenCleanupsInReverse(t *testing.T) {
	root := reactive.NewLifetime()
	var order []string

	root.Defer(func() { order = append(order, "root 1") })
	child := root.Child()
	child.Defer(func() { order = append(order, "child") })
	root.Defer(func() { order = append(order, "root 2") })

	root.Close()
	assert.Equal(t, []string{"child", "root 2", "root 1"}, order)
	assert.True(t, child.Closed())

	root.Close()
	assert.Len(t, order, 3, "close is idempotent")
}

func TestLifetimeDeferAfterCloseRunsImmediately(t *testing.T) {
	lt := reactive.NewLifetime()
	lt.Close()

	ran := false
	lt.Defer(func() { ran = true })
	assert.True(t, ran)

	child := lt.Child()
	assert.True(t, child.Closed())
}

func TestLifetimeChildDetachesFromParent(t *testing.T) {
	root := reactive.NewLifetime()
	defer root.Close()

	a, b := root.Child(), root.Child()
	assert.Equal(t, []*reactive.Lifetime{a, b}, root.Children())

	a.Close()
	assert.Equal(t, []*reactive.Lifetime{b}, root.Children())
	assert.False(t, root.Closed())
}

func TestLifetimeContext(t *testing.T) {
	lt := reactive.NewLifetime()
	ctx := lt.Context()

	got, ok := reactive.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, lt, got)

	_, ok = reactive.FromContext(context.Background())
	assert.False(t, ok)

	lt.Close()
	<-ctx.Done()
	<-lt.Done()
	assert.True(t, errors.Is(context.Cause(ctx), reactive.ErrLifetimeClosed))
}

func TestLifetimeTracksNodes(t *testing.T) {
	lt := reactive.NewLifetime()
	defer lt.Close()

	s := reactive.NewSignal(1)
	d := reactive.Derived1(lt, s, func(v int) int { return v }, reactive.WithName("copy"))

	nodes := lt.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, d.Info(), nodes[0])
	assert.Equal(t, "derived(copy)", nodes[0].String())

	d.Stop()
	assert.Empty(t, lt.Nodes())
	assert.Equal(t, 0, s.Subscribers())
}

func TestNamedNodesHaveStableIDs(t *testing.T) {
	lt := reactive.NewLifetime()
	defer lt.Close()

	s := reactive.NewSignal(1)
	a := reactive.Derived1(lt, s, func(v int) int { return v }, reactive.WithName("same"))
	b := reactive.Derived1(lt, s, func(v int) int { return v }, reactive.WithName("same"))
	c := reactive.Derived1(lt, s, func(v int) int { return v })
	d := reactive.Derived1(lt, s, func(v int) int { return v })

	assert.Equal(t, a.Info().ID, b.Info().ID)
	assert.NotEqual(t, c.Info().ID, d.Info().ID)
	assert.NotEqual(t, a.Info().ID, c.Info().ID)
}
