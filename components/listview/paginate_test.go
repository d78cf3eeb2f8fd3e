package listview

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginateFirstPage(t *testing.T) {
	items := numbers(25)
	page, err := Paginate(items, PageRequest{Page: 1, Size: 10})
	require.NoError(t, err)

	assert.Equal(t, items[0:10], page.Items)
	assert.Equal(t, 25, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	assert.False(t, page.HasPrev)
	assert.True(t, page.HasNext)
}

func TestPaginateLastPartialPage(t *testing.T) {
	page, err := Paginate(numbers(25), PageRequest{Page: 3, Size: 10})
	require.NoError(t, err)

	assert.Equal(t, []int{21, 22, 23, 24, 25}, page.Items)
	assert.Equal(t, 25, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 3, page.CurrentPage)
	assert.True(t, page.HasPrev)
	assert.False(t, page.HasNext)
}

func TestPaginateEmptyInputHasOnePage(t *testing.T) {
	page, err := Paginate([]int{}, PageRequest{Page: 1, Size: 10})
	require.NoError(t, err)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	assert.False(t, page.HasPrev)
	assert.False(t, page.HasNext)

	page, err = Paginate[int](nil, PageRequest{Page: 4, Size: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
}

func TestPaginateClampsOutOfRangePages(t *testing.T) {
	page, err := Paginate(numbers(25), PageRequest{Page: 99, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, page.CurrentPage)

	page, err = Paginate(numbers(25), PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, numbers(10), page.Items)
}

func TestPaginateStrictModeRejectsNonPositivePage(t *testing.T) {
	_, err := Paginate(numbers(5), PageRequest{Page: 0, Size: 2, Mode: StrictPage})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPage))

	var pageErr *InvalidPageError
	require.True(t, errors.As(err, &pageErr))
	assert.Equal(t, 0, pageErr.Page)

	page, err := Paginate(numbers(5), PageRequest{Page: 9, Size: 2, Mode: StrictPage})
	require.NoError(t, err)
	assert.Equal(t, 3, page.CurrentPage)
}

func TestPaginateRejectsInvalidSize(t *testing.T) {
	for _, size := range []int{0, -3} {
		_, err := Paginate(numbers(5), PageRequest{Page: 1, Size: size})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidPageSize))

		var sizeErr *InvalidPageSizeError
		require.True(t, errors.As(err, &sizeErr))
		assert.Equal(t, size, sizeErr.Size)
	}
}

func TestPaginatePagesPartitionInput(t *testing.T) {
	items := numbers(23)
	var seen []int
	for p := 1; p <= 5; p++ {
		page, err := Paginate(items, PageRequest{Page: p, Size: 5})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(page.Items), 5)
		seen = append(seen, page.Items...)
	}
	assert.Equal(t, items, seen)
}

func TestPaginateReturnsCopy(t *testing.T) {
	items := numbers(4)
	page, err := Paginate(items, PageRequest{Page: 1, Size: 2})
	require.NoError(t, err)
	page.Items[0] = 100
	assert.Equal(t, 1, items[0])
}

func TestPageWindow(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageWindow(1, 10, 5))
	assert.Equal(t, []int{4, 5, 6, 7, 8}, PageWindow(6, 10, 5))
	assert.Equal(t, []int{6, 7, 8, 9, 10}, PageWindow(10, 10, 5))
	assert.Equal(t, []int{1, 2, 3}, PageWindow(2, 3, 0))
	assert.Equal(t, []int{1}, PageWindow(5, 0, 3))

	page, err := Paginate(numbers(25), PageRequest{Page: 2, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, page.Window(5))
}
