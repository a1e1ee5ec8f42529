package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func contextFor(query string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/"+query, nil)
	return c
}

func TestParse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query string
		want  Params
	}{
		{"", Params{Page: 1, Limit: DefaultLimit}},
		{"?page=3&limit=10", Params{Page: 3, Limit: 10}},
		{"?page=-1&limit=0", Params{Page: 1, Limit: DefaultLimit}},
		{"?page=2&limit=500", Params{Page: 2, Limit: MaxLimit}},
		{"?page=abc", Params{Page: 1, Limit: DefaultLimit}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			require.Equal(t, tt.want, Parse(contextFor(tt.query)))
		})
	}
}

func TestParseWithDefault(t *testing.T) {
	gin.SetMode(gin.TestMode)

	require.Equal(t, Params{Page: 1, Limit: 50}, ParseWithDefault(contextFor(""), 50))
	require.Equal(t, Params{Page: 1, Limit: 5}, ParseWithDefault(contextFor("?limit=5"), 50))
	require.Equal(t, Params{Page: 1, Limit: DefaultLimit}, ParseWithDefault(contextFor(""), 1000))
}

func TestOffsetAndTotalPages(t *testing.T) {
	p := Params{Page: 3, Limit: 20}
	require.Equal(t, 40, p.Offset())

	tests := []struct {
		total int64
		want  int
	}{
		{0, 0},
		{1, 1},
		{20, 1},
		{21, 2},
		{100, 5},
	}
	for _, tt := range tests {
		require.Equalf(t, tt.want, p.TotalPages(tt.total), "total=%d", tt.total)
	}
}
