package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"stridekart/internal/catalog"
)

type SearchHandler struct{}

// Search compiles the free-form search box expression into canonical shop
// filter parameters and redirects there; the shop page does the filtering.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return c.Redirect("/shop")
	}
	params := catalog.ParseSearch(q)
	if len(params) == 0 {
		return c.Redirect("/shop")
	}
	return c.Redirect("/shop?" + params.Encode())
}
