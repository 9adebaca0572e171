package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"stridekart/internal/currency"
	applog "stridekart/internal/log"
	"stridekart/internal/render"
	"stridekart/internal/services"
	"stridekart/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv := h.Cart.View(sid)
	return renderPage(c, "cart", fiber.Map{
		"Rows":     render.CartRows(cv.Items),
		"Subtotal": currency.Format(cv.Subtotal),
		"Empty":    len(cv.Items) == 0,
	})
}

// Add handles every add-to-cart button. The product page posts an explicit
// size; quick-add buttons post none and get the product's first offered
// size. Same (product, size) merges quantities, a new size appends a line.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	size := validate.Size(c.FormValue("size"))
	qty := validate.Qty(c.FormValue("qty"))

	created, p, err := h.Cart.Add(sid, productID, size, qty)
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	case errors.Is(err, services.ErrNoSize):
		setFlash(c, "Please select a size first!", true)
		return c.Redirect("/product/" + productID)
	case err != nil:
		applog.Error(c, "cart.add.fail", err, map[string]any{"product": productID})
		setFlash(c, "There was an issue updating your cart. Please try again.", true)
		return c.Redirect(backTo(c, "/cart"))
	}

	if created {
		setFlash(c, fmt.Sprintf("%s added to cart!", p.Title), false)
	} else {
		setFlash(c, fmt.Sprintf("Updated quantity for %s in cart.", p.Title), false)
	}
	applog.Audit(c, "cart.add", map[string]any{"product": productID, "qty": qty, "created": created})
	return c.Redirect("/cart")
}

// Adjust bumps a line's quantity up or down; decrementing stops at 1.
func (h *CartHandler) Adjust(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	size := validate.Size(c.FormValue("size"))
	if !ok || size == 0 {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId or size")
	}
	delta := 1
	if c.FormValue("action") == "minus" {
		delta = -1
	}
	if err := h.Cart.Adjust(sid, productID, size, delta); err != nil {
		applog.Error(c, "cart.adjust.fail", err, map[string]any{"product": productID})
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	size := validate.Size(c.FormValue("size"))
	if !ok || size == 0 {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId or size")
	}
	if err := h.Cart.Remove(sid, productID, size); err != nil {
		applog.Error(c, "cart.remove.fail", err, map[string]any{"product": productID})
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Cart.Clear(sid); err != nil {
		applog.Error(c, "cart.clear.fail", err, nil)
	} else {
		setFlash(c, "Your cart has been cleared.", false)
	}
	return c.Redirect("/cart")
}

// Count serves the header badge refresh.
func (h *CartHandler) Count(c *fiber.Ctx) error {
	sid := ensureSID(c)
	return c.JSON(fiber.Map{"count": h.Cart.TotalQuantity(sid)})
}

func backTo(c *fiber.Ctx, fallback string) string {
	if back := c.Get("Referer"); back != "" {
		return back
	}
	return fallback
}
