package pagination_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"store/internal/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sortable = map[string]string{"id": "id", "name": "name", "placedDate": "placed_date"}

func parse(t *testing.T, query string) (pagination.Pageable, error) {
	t.Helper()

	app := fiber.New()
	var (
		got    pagination.Pageable
		gotErr error
	)
	app.Get("/api/items", func(c *fiber.Ctx) error {
		got, gotErr = pagination.Parse(c, sortable)
		pagination.WriteHeaders(c, got, 45)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/items"+query, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got, gotErr
}

func TestParse_Defaults(t *testing.T) {
	p, err := parse(t, "")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Page)
	assert.Equal(t, pagination.DefaultSize, p.Size)
	assert.Empty(t, p.Sort)
}

func TestParse_SortAndPaging(t *testing.T) {
	p, err := parse(t, "?page=2&size=10&sort=name,desc&sort=placedDate")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.Size)
	assert.Equal(t, 20, p.Offset())
	require.Len(t, p.Sort, 2)
	assert.Equal(t, pagination.Order{Property: "name", Column: "name", Ascending: false}, p.Sort[0])
	assert.Equal(t, pagination.Order{Property: "placedDate", Column: "placed_date", Ascending: true}, p.Sort[1])
}

func TestParse_SizeIsCapped(t *testing.T) {
	p, err := parse(t, "?size=5000")
	require.NoError(t, err)
	assert.Equal(t, pagination.MaxSize, p.Size)
}

func TestParse_Rejects(t *testing.T) {
	for _, query := range []string{"?page=-1", "?page=abc", "?size=0", "?sort=password,asc", "?sort=name,sideways",
		"?page=922337203685477580&size=20", "?page=9223372036854775807"} {
		_, err := parse(t, query)
		assert.Error(t, err, query)
	}
}

func TestWriteHeaders(t *testing.T) {
	app := fiber.New()
	app.Get("/api/items", func(c *fiber.Ctx) error {
		p := pagination.Pageable{Page: 1, Size: 20, Sort: []pagination.Order{{Property: "id", Column: "id", Ascending: false}}}
		pagination.WriteHeaders(c, p, 45)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/items", nil), -1)
	require.NoError(t, err)

	assert.Equal(t, "45", resp.Header.Get(pagination.HeaderTotalCount))
	link := resp.Header.Get("Link")
	assert.Contains(t, link, `rel="next"`)
	assert.Contains(t, link, `rel="prev"`)
	assert.Contains(t, link, `page=2&size=20&sort=id%2Cdesc>; rel="last"`)
	assert.True(t, strings.Contains(link, `page=0&size=20&sort=id%2Cdesc>; rel="first"`))
}
