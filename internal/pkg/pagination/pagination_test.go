package pagination

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromQuery(t *testing.T) {
	tests := []struct {
		query string
		want  Params
	}{
		{query: "", want: Params{Page: 1, Limit: DefaultLimit, Offset: 0}},
		{query: "?page=3&limit=10", want: Params{Page: 3, Limit: 10, Offset: 20}},
		{query: "?page=0&limit=-5", want: Params{Page: 1, Limit: DefaultLimit, Offset: 0}},
		{query: "?page=abc&limit=xyz", want: Params{Page: 1, Limit: DefaultLimit, Offset: 0}},
		{query: "?limit=1000", want: Params{Page: 1, Limit: MaxLimit, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return c.JSON(FromQuery(c))
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			var got Params
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPage(t *testing.T) {
	p := Params{Page: 2, Limit: 10, Offset: 10}

	page := NewPage([]int{11, 12, 13}, p, 23)
	assert.Equal(t, []int{11, 12, 13}, page.Data)
	assert.Equal(t, 3, page.Meta.TotalPages)
	assert.True(t, page.Meta.HasNext)
	assert.True(t, page.Meta.HasPrev)

	empty := NewPage[int](nil, Params{Page: 1, Limit: 10}, 0)
	assert.NotNil(t, empty.Data)
	assert.Equal(t, 0, empty.Meta.TotalPages)
	assert.False(t, empty.Meta.HasNext)
	assert.False(t, empty.Meta.HasPrev)
}
