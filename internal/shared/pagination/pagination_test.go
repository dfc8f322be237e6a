package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	items := make([]int, 10)

	t.Run("MiddlePage", func(t *testing.T) {
		p := Shape(items, 2, 25)
		assert.Equal(t, 2, p.CurrentPage)
		assert.Equal(t, 3, p.TotalPages)
		assert.Equal(t, int64(25), p.TotalItems)
		assert.Equal(t, PageSize, p.PerPage)
		assert.False(t, p.IsLastPage)
		require.NotNil(t, p.NextPage)
		assert.Equal(t, 3, *p.NextPage)
		require.NotNil(t, p.PreviousPage)
		assert.Equal(t, 1, *p.PreviousPage)
		assert.Equal(t, 1, p.FirstPage)
		assert.Equal(t, 3, p.LastPage)
	})

	t.Run("FirstPage", func(t *testing.T) {
		p := Shape(items, 1, 25)
		assert.Nil(t, p.PreviousPage)
		require.NotNil(t, p.NextPage)
		assert.Equal(t, 2, *p.NextPage)
	})

	t.Run("LastPage", func(t *testing.T) {
		p := Shape(make([]int, 5), 3, 25)
		assert.True(t, p.IsLastPage)
		assert.Nil(t, p.NextPage)
	})

	t.Run("Empty", func(t *testing.T) {
		p := Shape[int](nil, 1, 0)
		assert.True(t, p.IsLastPage)
		assert.Equal(t, 1, p.TotalPages)
		assert.NotNil(t, p.Items)
		assert.Empty(t, p.Items)
		assert.Nil(t, p.NextPage)
		assert.Nil(t, p.PreviousPage)
	})

	t.Run("PageBelowOneClamped", func(t *testing.T) {
		p := Shape(items, 0, 25)
		assert.Equal(t, 1, p.CurrentPage)
	})

	t.Run("StableUnderRepeatedCalls", func(t *testing.T) {
		a := Shape(items, 2, 25)
		b := Shape(items, 2, 25)
		assert.Equal(t, a, b)
	})
}

// Walking every page must visit each item exactly once.
func TestShapeCoversAllItems(t *testing.T) {
	const total = 23
	all := make([]int, total)
	for i := range all {
		all[i] = i
	}

	seen := 0
	page := 1
	for {
		lo := Offset(page)
		hi := lo + PageSize
		if hi > total {
			hi = total
		}
		p := Shape(all[lo:hi], page, total)
		assert.LessOrEqual(t, len(p.Items), PageSize)
		seen += len(p.Items)
		if p.IsLastPage {
			break
		}
		page = *p.NextPage
	}
	assert.Equal(t, total, seen)
	assert.Equal(t, 3, (total+PageSize-1)/PageSize)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1))
	assert.Equal(t, 10, Offset(2))
	assert.Equal(t, 0, Offset(-3))
}
