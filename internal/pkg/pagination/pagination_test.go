package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v2/feedbacks?"+rawQuery, nil)
	return c
}

func TestFromContextDefaults(t *testing.T) {
	q := FromContext(queryContext(t, ""))
	assert.Equal(t, Query{Page: 1, Size: defaultSize}, q)
}

func TestFromContextClamps(t *testing.T) {
	tests := []struct {
		raw  string
		want Query
	}{
		{"page=3&size=20", Query{Page: 3, Size: 20}},
		{"page=0&size=0", Query{Page: 1, Size: defaultSize}},
		{"page=-2&size=-5", Query{Page: 1, Size: defaultSize}},
		{"page=abc&size=xyz", Query{Page: 1, Size: defaultSize}},
		{"size=500", Query{Page: 1, Size: maxSize}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FromContext(queryContext(t, tt.raw)), tt.raw)
	}
}
