package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageRequest_CoercesFromToPageBoundary(t *testing.T) {
	cases := []struct {
		from, size int
		wantPage   int
		wantOffset int
	}{
		{0, 10, 0, 0},
		{10, 10, 1, 10},
		{3, 2, 1, 2},
		{7, 3, 2, 6},
		{9, 10, 0, 0},
	}
	for _, tc := range cases {
		page, err := NewPageRequest(tc.from, tc.size)
		require.NoError(t, err, "from=%d size=%d", tc.from, tc.size)
		assert.Equal(t, tc.wantPage, page.Page, "from=%d size=%d", tc.from, tc.size)
		assert.Equal(t, tc.wantOffset, page.Offset(), "from=%d size=%d", tc.from, tc.size)
		assert.Equal(t, tc.size, page.Limit())
	}
}

func TestNewPageRequest_Validation(t *testing.T) {
	_, err := NewPageRequest(-1, 10)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = NewPageRequest(0, 0)
	require.ErrorAs(t, err, &validation)

	_, err = NewPageRequest(0, -5)
	require.ErrorAs(t, err, &validation)
}

func TestNewPaginatedResult(t *testing.T) {
	result := NewPaginatedResult([]string{"a", "b"}, 12, 1, 2)
	assert.Equal(t, []string{"a", "b"}, result.Items)
	assert.Equal(t, int64(12), result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 2, result.Limit)
}
