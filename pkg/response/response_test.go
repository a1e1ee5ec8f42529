package response

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuccessWithPagination(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		total int64
		pages int
	}{
		{"exact", 10, 30, 3},
		{"remainder", 20, 41, 3},
		{"empty", 20, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := SuccessWithPagination(http.StatusOK, []string{}, 1, tt.limit, tt.total)
			require.Equal(t, "success", res.Status)
			require.NotNil(t, res.Meta)
			require.Equal(t, tt.pages, res.Meta.TotalPages)
			require.Equal(t, tt.total, res.Meta.Total)
		})
	}
}

func TestError(t *testing.T) {
	res := Error(http.StatusNotFound, "not found")
	require.Equal(t, "error", res.Status)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.Nil(t, res.Meta)
}
