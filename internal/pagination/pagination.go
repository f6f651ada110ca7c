// Package pagination parses page/size/sort query parameters and renders the
// X-Total-Count and Link headers of a paged listing.
package pagination

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	DefaultSize = 20
	MaxSize     = 1000

	HeaderTotalCount = "X-Total-Count"
)

// Order is one sort key. Column is the database column the JSON property maps to.
type Order struct {
	Property  string
	Column    string
	Ascending bool
}

// Pageable is a request for one page of a listing.
type Pageable struct {
	Page int
	Size int
	Sort []Order
}

// Unpaged returns the first page with the default size and id ordering.
func Unpaged() Pageable {
	return Pageable{Page: 0, Size: DefaultSize}
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}

// Parse reads page, size and every sort parameter from the request. Sort
// properties must be keys of sortable, which maps JSON properties to columns.
func Parse(c *fiber.Ctx, sortable map[string]string) (Pageable, error) {
	p := Unpaged()

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return p, fmt.Errorf("invalid page parameter %q", raw)
		}
		p.Page = page
	}

	if raw := c.Query("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return p, fmt.Errorf("invalid size parameter %q", raw)
		}
		if size > MaxSize {
			size = MaxSize
		}
		p.Size = size
	}

	if p.Page > math.MaxInt/p.Size {
		return p, fmt.Errorf("page %d is out of range for size %d", p.Page, p.Size)
	}

	for _, raw := range c.Context().QueryArgs().PeekMulti("sort") {
		order, err := parseOrder(string(raw), sortable)
		if err != nil {
			return p, err
		}
		p.Sort = append(p.Sort, order)
	}

	return p, nil
}

func parseOrder(raw string, sortable map[string]string) (Order, error) {
	parts := strings.Split(raw, ",")
	property := strings.TrimSpace(parts[0])
	column, ok := sortable[property]
	if !ok {
		return Order{}, fmt.Errorf("unknown sort property %q", property)
	}

	order := Order{Property: property, Column: column, Ascending: true}
	if len(parts) > 1 {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "asc", "":
		case "desc":
			order.Ascending = false
		default:
			return Order{}, fmt.Errorf("invalid sort direction %q", parts[1])
		}
	}
	return order, nil
}

// Apply adds ordering, limit and offset to the query. Listings without an
// explicit sort are ordered by id so pages are stable.
func (p Pageable) Apply(db *gorm.DB) *gorm.DB {
	if len(p.Sort) == 0 {
		db = db.Order("id asc")
	}
	for _, o := range p.Sort {
		dir := "asc"
		if !o.Ascending {
			dir = "desc"
		}
		db = db.Order(o.Column + " " + dir)
	}
	return db.Limit(p.Size).Offset(p.Offset())
}

// WriteHeaders sets X-Total-Count and a Link header with first, prev, next and last relations.
func WriteHeaders(c *fiber.Ctx, p Pageable, total int64) {
	c.Set(HeaderTotalCount, strconv.FormatInt(total, 10))

	lastPage := 0
	if total > 0 {
		lastPage = int((total - 1) / int64(p.Size))
	}

	var links []string
	if p.Page+1 <= lastPage {
		links = append(links, link(c, p, p.Page+1, "next"))
	}
	if p.Page > 0 && p.Page-1 <= lastPage {
		links = append(links, link(c, p, p.Page-1, "prev"))
	}
	links = append(links, link(c, p, lastPage, "last"), link(c, p, 0, "first"))

	c.Set(fiber.HeaderLink, strings.Join(links, ","))
}

func link(c *fiber.Ctx, p Pageable, page int, rel string) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(p.Size))
	for _, o := range p.Sort {
		dir := "asc"
		if !o.Ascending {
			dir = "desc"
		}
		q.Add("sort", o.Property+","+dir)
	}
	return fmt.Sprintf("<%s?%s>; rel=\"%s\"", c.Path(), q.Encode(), rel)
}
