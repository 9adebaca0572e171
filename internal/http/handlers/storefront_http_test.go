package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"stridekart/internal/catalog"
	"stridekart/internal/config"
	"stridekart/internal/http/handlers"
	"stridekart/internal/repos"
)

const httpTestCatalog = `[
  {"id": 1, "title": "AeroGlide Runner", "brand": "Strider", "category": "Running",
   "price": "₹1,299", "size": [6,7,8], "images": ["/media/a.jpg"], "rating": 4.5,
   "discount": 10, "discounted": true},
  {"id": 2, "title": "Court Classic", "brand": "Baseline", "category": "Sneakers",
   "price": "₹2,499", "size": [8,9,10], "images": ["/media/b.jpg"], "rating": 4.2}
]`

// Minimal app wiring mirroring main: views, csrf, badge counts, all routes.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	cat, err := catalog.Parse([]byte(httpTestCatalog))
	if err != nil {
		t.Fatal(err)
	}

	engine := html.New("../../../web/templates", ".html")
	engine.AddFunc("dict", func(kv ...any) map[string]any {
		m := make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			if k, ok := kv[i].(string); ok {
				m[k] = kv[i+1]
			}
		}
		return m
	})
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	deps := handlers.NewDeps(db, testConfig(), cat)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			c.Locals("cartCount", deps.CartSvc.TotalQuantity(sid))
			c.Locals("wishCount", deps.WishSvc.Count(sid))
		}
		return c.Next()
	})

	app.Get("/", deps.HomeHandler.Home)
	app.Get("/shop", deps.ShopHandler.List)
	app.Get("/search", deps.SearchHandler.Search)
	app.Get("/product/:id", deps.ProductHandler.Detail)
	api := app.Group("/api/v1")
	api.Get("/cart/count", deps.CartHandler.Count)
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/qty", deps.CartHandler.Adjust)
	app.Post("/cart/remove", deps.CartHandler.Remove)
	app.Get("/checkout", deps.OrderHandler.Checkout)
	app.Post("/orders", deps.OrderHandler.Place)
	app.Get("/order/:id", deps.OrderHandler.View)
	app.Get("/wishlist", deps.WishlistHandler.List)
	app.Post("/wishlist", deps.WishlistHandler.Save)
	return app
}

func testConfig() config.Config {
	return config.Config{DBDSN: ":memory:", MediaDir: "../../../web/media"}
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// tokens primes a csrf token and session id via a plain page load.
func tokens(t *testing.T, app *fiber.App) (csrfTok, sid string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/cart", nil))
	if err != nil {
		t.Fatal(err)
	}
	csrfTok = extractCookie(resp, "csrf_")
	sid = extractCookie(resp, "sid")
	if csrfTok == "" || sid == "" {
		t.Fatalf("missing bootstrap cookies: csrf=%q sid=%q", csrfTok, sid)
	}
	return csrfTok, sid
}

func postForm(t *testing.T, app *fiber.App, path, body, csrfTok, sid string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader("csrf="+csrfTok+"&"+body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestCartAddRedirectsAndCounts(t *testing.T) {
	app := newTestApp(t)
	csrfTok, sid := tokens(t, app)

	resp := postForm(t, app, "/cart", "productId=1&size=7&qty=2", csrfTok, sid)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("want 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/cart" {
		t.Fatalf("want redirect to /cart, got %q", loc)
	}

	req := httptest.NewRequest("GET", "/api/v1/cart/count", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp2, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp2.Body)
	if !strings.Contains(string(body), `"count":2`) {
		t.Fatalf("want count 2, got %s", body)
	}
}

func TestCartAddRejectsBadProductID(t *testing.T) {
	app := newTestApp(t)
	csrfTok, sid := tokens(t, app)

	resp := postForm(t, app, "/cart", "productId=%3Cscript%3E&qty=1", csrfTok, sid)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 for malformed id, got %d", resp.StatusCode)
	}

	resp = postForm(t, app, "/cart", "productId=999&qty=1", csrfTok, sid)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404 for unknown product, got %d", resp.StatusCode)
	}
}

func TestCheckoutValidationReRendersForm(t *testing.T) {
	app := newTestApp(t)
	csrfTok, sid := tokens(t, app)

	// something in the cart so the empty-cart branch doesn't win
	postForm(t, app, "/cart", "productId=2&size=9&qty=1", csrfTok, sid)

	resp := postForm(t, app, "/orders",
		"f_name=Asha&l_name=Rao&street_address=12+MG+Road&town=Bengaluru&state=KA"+
			"&postcode=560001&email=asha%40yahoo.com&phone=9876543210"+
			"&card_number=4111111111111111&expiry_month=09&expiry_year=2028&cvv=123"+
			"&shipping=free",
		csrfTok, sid)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("validation failure should re-render, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	if !strings.Contains(s, "Only @gmail.com emails are allowed.") {
		t.Fatalf("email error missing from re-render: %s", s)
	}
	// the good fields keep their values
	if !strings.Contains(s, `value="Asha"`) {
		t.Fatal("submitted values should be echoed back")
	}
}

func TestOrderOwnership(t *testing.T) {
	app := newTestApp(t)
	csrfTok, sid := tokens(t, app)

	postForm(t, app, "/cart", "productId=2&size=9&qty=1", csrfTok, sid)
	resp := postForm(t, app, "/orders",
		"f_name=Asha&l_name=Rao&street_address=12+MG+Road&town=Bengaluru&state=KA"+
			"&postcode=560001&email=asha%40gmail.com&phone=9876543210"+
			"&card_number=4111+1111+1111+1111&expiry_month=09&expiry_year=2028&cvv=123"+
			"&shipping=flat_rate",
		csrfTok, sid)
	if resp.StatusCode != http.StatusFound {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("want 302 on placement, got %d body=%s", resp.StatusCode, body)
	}
	loc := resp.Header.Get("Location")
	if !strings.HasPrefix(loc, "/order/") {
		t.Fatalf("want redirect to the order page, got %q", loc)
	}

	// owner sees it
	req := httptest.NewRequest("GET", loc, nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	respOwn, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if respOwn.StatusCode != http.StatusOK {
		t.Fatalf("owner should see the order, got %d", respOwn.StatusCode)
	}

	// another session gets a 404, not a 403 hint
	req2 := httptest.NewRequest("GET", loc, nil)
	req2.AddCookie(&http.Cookie{Name: "sid", Value: "someone-else"})
	respOther, err := app.Test(req2)
	if err != nil {
		t.Fatal(err)
	}
	if respOther.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign session must get 404, got %d", respOther.StatusCode)
	}
}

func TestSearchRedirectsToShop(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/search?q=size%3A9", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("want 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/shop?size=9" {
		t.Fatalf("want /shop?size=9, got %q", loc)
	}

	// empty query goes straight to the shop
	resp, err = app.Test(httptest.NewRequest("GET", "/search", nil))
	if err != nil {
		t.Fatal(err)
	}
	if loc := resp.Header.Get("Location"); loc != "/shop" {
		t.Fatalf("want /shop, got %q", loc)
	}
}

func TestProductPageEscapesAndRelated(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/product/1", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "AeroGlide Runner") {
		t.Fatal("product title missing")
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/product/does%20not%20exist", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("malformed id should 404, got %d", resp.StatusCode)
	}
}

func TestWishlistDuplicateFlash(t *testing.T) {
	app := newTestApp(t)
	csrfTok, sid := tokens(t, app)

	resp := postForm(t, app, "/wishlist", "productId=1", csrfTok, sid)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("want 302, got %d", resp.StatusCode)
	}

	resp = postForm(t, app, "/wishlist", "productId=1", csrfTok, sid)
	flash := extractCookie(resp, "flash")
	if flash == "" || flash[0] != '!' {
		t.Fatalf("duplicate save should set an error flash, got %q", flash)
	}
}
