package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	applog "stridekart/internal/log"
	"stridekart/internal/services"
	"stridekart/internal/validate"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	sid := ensureSID(c)
	return renderPage(c, "wishlist", fiber.Map{"Items": h.Wish.List(sid)})
}

// Save adds a product to the wishlist; a duplicate is rejected with its own
// message rather than merged.
func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	sid := ensureSID(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	added, p, err := h.Wish.Save(sid, pid)
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	case err != nil:
		applog.Error(c, "wishlist.save.fail", err, map[string]any{"product": pid})
		return c.Status(500).SendString("Could not save item")
	}
	if !added {
		setFlash(c, "This product is already in your wishlist.", true)
	} else {
		setFlash(c, fmt.Sprintf("%s added to your wishlist!", p.Title), false)
		applog.Audit(c, "wishlist.save", map[string]any{"product": pid})
	}
	return c.Redirect(backTo(c, "/wishlist"))
}

func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	sid := ensureSID(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Wish.Unsave(sid, pid); err != nil {
		applog.Error(c, "wishlist.unsave.fail", err, map[string]any{"product": pid})
		return c.Status(500).SendString("Could not remove item")
	}
	applog.Audit(c, "wishlist.unsave", map[string]any{"product": pid})
	return c.Redirect("/wishlist")
}
