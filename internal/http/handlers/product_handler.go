package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stridekart/internal/catalog"
	applog "stridekart/internal/log"
	"stridekart/internal/render"
	"stridekart/internal/validate"
)

type ProductHandler struct {
	Catalog *catalog.Catalog
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, ok := h.Catalog.Get(id)
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return renderPage(c, "product", fiber.Map{
		"P":       render.DetailFor(p),
		"Related": render.Cards(h.Catalog.Related(p, 7)),
	})
}
