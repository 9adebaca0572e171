package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"stridekart/internal/catalog"
	"stridekart/internal/render"
)

type ShopHandler struct {
	Catalog *catalog.Catalog
}

// List renders the shop grid. Criteria are seeded from the canonical query
// parameters (category, size, minPrice, maxPrice) on top of the
// unrestricted defaults; the filter controls round-trip through the same
// parameters.
func (h *ShopHandler) List(c *fiber.Ctx) error {
	q := url.Values{}
	for _, key := range []string{"category", "size", "minPrice", "maxPrice"} {
		if v := c.Query(key); v != "" {
			q.Set(key, v)
		}
	}
	cr := catalog.CriteriaFromQuery(q, catalog.DefaultCriteria(h.Catalog))
	products := catalog.Apply(h.Catalog.All(), cr)

	return renderPage(c, "shop", fiber.Map{
		"Products":   render.Cards(products),
		"Count":      len(products),
		"Categories": h.Catalog.Categories(),
		"Sizes":      h.Catalog.Sizes(),
		"Criteria": fiber.Map{
			"Category": cr.Category,
			"Size":     cr.Size,
			"MinPrice": cr.MinPrice.StringFixed(0),
			"MaxPrice": cr.MaxPrice.StringFixed(0),
		},
	})
}
