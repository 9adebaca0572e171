package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stridekart/internal/catalog"
	"stridekart/internal/render"
)

// topSellerRating is the cutoff for the home page top-sellers strip.
const topSellerRating = 4.1

type HomeHandler struct {
	Catalog *catalog.Catalog
}

func (h *HomeHandler) Home(c *fiber.Ctx) error {
	return renderPage(c, "home", fiber.Map{
		"Top":        render.Cards(h.Catalog.Top(12)),
		"TopSellers": render.Cards(h.Catalog.TopSellers(topSellerRating)),
		"Categories": h.Catalog.Categories(),
	})
}
