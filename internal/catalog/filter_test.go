package catalog_test

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"

	"stridekart/internal/catalog"
)

func TestDefaultCriteriaKeepsAllPricedProducts(t *testing.T) {
	c := mustParse(t)
	got := catalog.Apply(c.All(), catalog.DefaultCriteria(c))
	// The unpriced product is excluded; everything priced survives.
	if len(got) != 3 {
		t.Fatalf("want 3, got %d", len(got))
	}
	for _, p := range got {
		if !p.PriceOK {
			t.Fatalf("unpriced product leaked through: %+v", p)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	c := mustParse(t)
	cr := catalog.DefaultCriteria(c)
	cr.Category = "running"
	once := catalog.Apply(c.All(), cr)
	twice := catalog.Apply(once, cr)
	if len(once) != len(twice) {
		t.Fatalf("filtering a filtered list changed it: %d -> %d", len(once), len(twice))
	}
}

func TestCategoryCaseInsensitive(t *testing.T) {
	c := mustParse(t)
	cr := catalog.DefaultCriteria(c)
	cr.Category = "CASUAL"
	got := catalog.Apply(c.All(), cr)
	if len(got) != 1 || got[0].ID != "4" {
		t.Fatalf("want the casual slip-on, got %+v", got)
	}
}

func TestSizeContainment(t *testing.T) {
	c := mustParse(t)
	cr := catalog.DefaultCriteria(c)
	cr.Size = "6"
	got := catalog.Apply(c.All(), cr)
	if len(got) != 2 {
		t.Fatalf("want 2 products offering size 6, got %d", len(got))
	}

	cr.Size = "not-a-size"
	if got := catalog.Apply(c.All(), cr); len(got) != 0 {
		t.Fatalf("malformed size should match nothing, got %d", len(got))
	}
}

func TestPriceBandInclusive(t *testing.T) {
	c := mustParse(t)
	cr := catalog.DefaultCriteria(c)
	cr.MinPrice = decimal.NewFromInt(999)
	cr.MaxPrice = decimal.NewFromInt(1299)
	got := catalog.Apply(c.All(), cr)
	// Both boundary prices are included.
	if len(got) != 2 {
		t.Fatalf("want 2 in [999,1299], got %d", len(got))
	}
}

func TestCategoryAndPriceTogether(t *testing.T) {
	c := mustParse(t)
	cr := catalog.DefaultCriteria(c)
	cr.Category = "running"
	cr.MaxPrice = decimal.NewFromInt(2000)
	got := catalog.Apply(c.All(), cr)
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("want just the AeroGlide, got %+v", got)
	}
}

func TestCriteriaFromQuery(t *testing.T) {
	c := mustParse(t)
	def := catalog.DefaultCriteria(c)

	q := url.Values{}
	q.Set("category", "Sneakers")
	q.Set("size", "9")
	q.Set("minPrice", "1000")
	q.Set("maxPrice", "3000")
	cr := catalog.CriteriaFromQuery(q, def)
	if cr.Category != "sneakers" || cr.Size != "9" {
		t.Fatalf("category/size not picked up: %+v", cr)
	}
	if !cr.MinPrice.Equal(decimal.NewFromInt(1000)) || !cr.MaxPrice.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("price band not picked up: %+v", cr)
	}

	// Malformed prices keep the defaults.
	q = url.Values{}
	q.Set("minPrice", "cheap")
	cr = catalog.CriteriaFromQuery(q, def)
	if !cr.MinPrice.Equal(def.MinPrice) {
		t.Fatalf("malformed minPrice should be ignored: %+v", cr)
	}
}
