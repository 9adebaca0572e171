package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"stridekart/internal/currency"
	applog "stridekart/internal/log"
	"stridekart/internal/render"
	"stridekart/internal/repos"
	"stridekart/internal/services"
	"stridekart/internal/validate"
)

type OrderHandler struct {
	Cart  *services.CartService
	Order *services.OrderService
	Repo  *repos.OrderRepo
}

// Checkout renders the billing form with the order summary.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv := h.Cart.View(sid)
	return renderPage(c, "checkout", fiber.Map{
		"Rows":     render.CartRows(cv.Items),
		"Subtotal": currency.Format(cv.Subtotal),
		"Empty":    len(cv.Items) == 0,
	})
}

func checkoutForm(c *fiber.Ctx) validate.CheckoutForm {
	return validate.CheckoutForm{
		FirstName:   c.FormValue("f_name"),
		LastName:    c.FormValue("l_name"),
		Address:     c.FormValue("street_address"),
		Town:        c.FormValue("town"),
		State:       c.FormValue("state"),
		Postcode:    c.FormValue("postcode"),
		Email:       c.FormValue("email"),
		Phone:       c.FormValue("phone"),
		CardNumber:  c.FormValue("card_number"),
		ExpiryMonth: c.FormValue("expiry_month"),
		ExpiryYear:  c.FormValue("expiry_year"),
		CVV:         c.FormValue("cvv"),
	}
}

// Place submits the checkout. Validation failures re-render the form with
// every failed field annotated; an empty cart blocks submission; success
// writes the order, clears the cart and redirects to the order page.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)
	form := checkoutForm(c)
	shipping := c.FormValue("shipping")

	orderID, res, err := h.Order.Place(c.UserContext(), sid, shipping, form)
	switch {
	case errors.Is(err, services.ErrValidation):
		cv := h.Cart.View(sid)
		return renderPage(c, "checkout", fiber.Map{
			"Rows":     render.CartRows(cv.Items),
			"Subtotal": currency.Format(cv.Subtotal),
			"Empty":    len(cv.Items) == 0,
			"Errors":   res.Errors,
			"Form":     form,
		})
	case errors.Is(err, services.ErrEmptyCart):
		setFlash(c, "Your cart is empty. Please add items before placing an order.", true)
		return c.Redirect("/cart")
	case err != nil:
		applog.Error(c, "order.place.fail", err, nil)
		setFlash(c, "Could not place your order. Please try again.", true)
		return c.Redirect("/checkout")
	}

	applog.Audit(c, "order.place", map[string]any{"order_id": orderID})
	return c.Redirect("/order/" + orderID)
}

// View shows a placed order; only its owning session may see it.
func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid := c.Params("id")
	if oid == "" {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	o, items, err := h.Repo.Get(oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	if sid := c.Cookies("sid"); sid == "" || sid != o.SessionID {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	return renderPage(c, "order", fiber.Map{
		"Order":    o,
		"Items":    render.OrderRows(items),
		"Subtotal": currency.Format(o.Subtotal),
		"Delivery": currency.Format(o.Delivery),
		"Total":    currency.Format(o.Total),
	})
}

// History lists the session's past orders, newest first.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	sid := ensureSID(c)
	orders, err := h.Repo.ListBySession(sid)
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return renderPage(c, "order_history", fiber.Map{"Orders": render.HistoryRows(orders)})
}
