package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testProducts() []Product {
	return []Product{
		{ID: "p1", Name: "Wireless Mouse", Description: "ergonomic mouse", Price: decimal.NewFromFloat(24.99), Category: "electronics", Stock: 5},
		{ID: "p2", Name: "Keyboard", Description: "mechanical keyboard", Price: decimal.NewFromFloat(89.50), Category: "electronics", Stock: 3},
		{ID: "p3", Name: "USB Hub", Description: "7-in-1 hub", Price: decimal.NewFromFloat(45), Category: "electronics", Stock: 0},
		{ID: "p4", Name: "Mug", Description: "ceramic mug", Price: decimal.NewFromFloat(12), Category: "kitchen", Stock: 10},
	}
}

func TestFindByID(t *testing.T) {
	t.Parallel()

	cat := New(testProducts())
	p, ok := cat.FindByID("p2")
	if !ok {
		t.Fatal("expected p2 to exist")
	}
	if p.Name != "Keyboard" {
		t.Fatalf("unexpected product: %s", p.Name)
	}
	if _, ok := cat.FindByID("nope"); ok {
		t.Fatal("expected miss for unknown id")
	}
}

func TestSearchExcludesOutOfStock(t *testing.T) {
	t.Parallel()

	cat := New(testProducts())
	res := cat.Search(Filter{Category: "electronics"})
	if res.TotalMatches != 2 {
		t.Fatalf("TotalMatches = %d, want 2 (p3 is out of stock)", res.TotalMatches)
	}
	for _, p := range res.Products {
		if p.Stock <= 0 {
			t.Fatalf("out-of-stock product returned: %s", p.ID)
		}
	}
}

func TestSearchConjunctiveFilters(t *testing.T) {
	t.Parallel()

	cat := New(testProducts())
	min := decimal.NewFromFloat(20)
	max := decimal.NewFromFloat(30)
	res := cat.Search(Filter{Query: "MOUSE", Category: "Electronics", MinPrice: &min, MaxPrice: &max})
	if res.TotalMatches != 1 || res.Products[0].ID != "p1" {
		t.Fatalf("unexpected result: %#v", res)
	}
}

func TestSearchPriceBoundsInclusive(t *testing.T) {
	t.Parallel()

	cat := New(testProducts())
	bound := decimal.NewFromFloat(24.99)
	res := cat.Search(Filter{MinPrice: &bound, MaxPrice: &bound})
	if res.TotalMatches != 1 || res.Products[0].ID != "p1" {
		t.Fatalf("inclusive bound failed: %#v", res)
	}
}

func TestSearchQueryMatchesDescription(t *testing.T) {
	t.Parallel()

	cat := New(testProducts())
	res := cat.Search(Filter{Query: "ceramic"})
	if res.TotalMatches != 1 || res.Products[0].ID != "p4" {
		t.Fatalf("description match failed: %#v", res)
	}
}

func TestSearchLimitAndTotalMatches(t *testing.T) {
	t.Parallel()

	var products []Product
	for i := 0; i < 15; i++ {
		products = append(products, Product{
			ID:    string(rune('a' + i)),
			Name:  "Thing",
			Price: decimal.NewFromInt(1),
			Stock: 1,
		})
	}
	cat := New(products)

	res := cat.Search(Filter{Query: "thing"})
	if res.TotalMatches != 15 {
		t.Fatalf("TotalMatches = %d, want 15", res.TotalMatches)
	}
	if len(res.Products) != 10 {
		t.Fatalf("default limit not applied, got %d", len(res.Products))
	}

	res = cat.Search(Filter{Query: "thing", Limit: 3})
	if res.TotalMatches != 15 || len(res.Products) != 3 {
		t.Fatalf("explicit limit failed: total=%d shown=%d", res.TotalMatches, len(res.Products))
	}
}

func TestSearchEmptyCatalog(t *testing.T) {
	t.Parallel()

	cat := New(nil)
	res := cat.Search(Filter{Query: "anything"})
	if res.TotalMatches != 0 || len(res.Products) != 0 {
		t.Fatalf("expected empty result, got %#v", res)
	}
}

func TestLoadMissingFileDegradesToEmpty(t *testing.T) {
	t.Parallel()

	cat := Load("/does/not/exist.json")
	if cat.Len() != 0 {
		t.Fatalf("expected empty catalog, got %d products", cat.Len())
	}
}

func TestLoadEmbeddedDefault(t *testing.T) {
	t.Parallel()

	cat := Load("")
	if cat.Len() == 0 {
		t.Fatal("embedded catalog must not be empty")
	}
	if _, ok := cat.FindByID("p001"); !ok {
		t.Fatal("embedded catalog missing p001")
	}
}
