package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	page := Paginate(items, 2, 3)
	require.Equal(t, []int{4, 5, 6}, page.Items)
	require.Equal(t, 7, page.Total)
	require.Equal(t, 2, page.Page)

	page = Paginate(items, 3, 3)
	require.Equal(t, []int{7}, page.Items)

	page = Paginate(items, 9, 3)
	require.Empty(t, page.Items)
	require.Equal(t, 7, page.Total)

	page = Paginate(items, 0, 0)
	require.Equal(t, items, page.Items)

	page = Paginate([]int{}, 1, 10)
	require.Empty(t, page.Items)
	require.Zero(t, page.Total)
}

func TestFilter(t *testing.T) {
	items := []string{"alpha", "beta", "gamma"}
	out := Filter(items, func(s string) bool { return s != "beta" })
	require.Equal(t, []string{"alpha", "gamma"}, out)

	out = Filter(items, func(string) bool { return false })
	require.Empty(t, out)
}
