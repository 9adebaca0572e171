package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// renderPage wraps c.Render with the cross-page chrome every template needs:
// badge counts, the csrf token and any pending flash message.
func renderPage(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Badge counts are attached by the middleware in main.
	if n, ok := c.Locals("cartCount").(int); ok {
		data["CartCount"] = n
	}
	if n, ok := c.Locals("wishCount").(int); ok {
		data["WishCount"] = n
	}
	// Pick up the token the CSRF middleware put into Locals
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	} else if cookTok := c.Cookies("csrf_"); cookTok != "" {
		data["CSRFToken"] = cookTok
	}
	if msg, isErr, ok := popFlash(c); ok {
		data["Flash"] = msg
		data["FlashErr"] = isErr
	}
	return c.Render(tmpl, data)
}

// ensureSID returns the browser session id, minting a cookie on first visit.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable true behind TLS
		})
	}
	return sid
}

// Flash messages back the toast notifications: one-shot, cleared on read.

func setFlash(c *fiber.Ctx, msg string, isErr bool) {
	val := url.QueryEscape(msg)
	if isErr {
		val = "!" + val
	}
	c.Cookie(&fiber.Cookie{Name: "flash", Value: val, Path: "/", HTTPOnly: true})
}

func popFlash(c *fiber.Ctx) (msg string, isErr bool, ok bool) {
	raw := c.Cookies("flash")
	if raw == "" {
		return "", false, false
	}
	c.Cookie(&fiber.Cookie{Name: "flash", Value: "", Path: "/", MaxAge: -1})
	if len(raw) > 0 && raw[0] == '!' {
		isErr = true
		raw = raw[1:]
	}
	msg, err := url.QueryUnescape(raw)
	if err != nil {
		return "", false, false
	}
	return msg, isErr, true
}
