package storefront

import (
	"strings"
	"testing"

	"nightmarket/internal/models"
)

func strptr(s string) *string { return &s }

func TestProductImage_ExplicitURLWins(t *testing.T) {
	p := &models.Product{
		Name:     "Studio Headphones",
		Slug:     "studio-headphones",
		ImageURL: strptr("https://cdn.example.com/headphones.jpg"),
	}
	if got := ProductImage(p); got != "https://cdn.example.com/headphones.jpg" {
		t.Errorf("ProductImage = %q, want explicit URL", got)
	}
}

func TestProductImage_CuratedKeyword(t *testing.T) {
	tests := []struct {
		name    string
		product models.Product
		keyword string
	}{
		{name: "slug match", product: models.Product{Name: "Logo", Slug: "night-market-tee"}, keyword: "tee"},
		{name: "name match", product: models.Product{Name: "Canvas Bag"}, keyword: "bag"},
		{name: "hoodie", product: models.Product{Name: "Cozy Hoodie", Slug: "cozy-hoodie"}, keyword: "hoodie"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProductImage(&tt.product)
			var want string
			for _, c := range curatedByKeyword {
				if c.keyword == tt.keyword {
					want = c.url
					break
				}
			}
			if got != want {
				t.Errorf("ProductImage = %q, want curated %q image %q", got, tt.keyword, want)
			}
		})
	}
}

// TestProductImage_FallbackDeterministic verifies a product without an
// explicit or curated image always gets the same fallback picture.
func TestProductImage_FallbackDeterministic(t *testing.T) {
	p := &models.Product{Name: "Mystery Object", Slug: "mystery-object"}

	first := ProductImage(p)
	if first == "" {
		t.Fatal("ProductImage returned empty URL")
	}
	if !strings.HasPrefix(first, "https://images.unsplash.com/") {
		t.Errorf("fallback URL = %q, want unsplash fallback", first)
	}
	for i := 0; i < 5; i++ {
		if got := ProductImage(p); got != first {
			t.Fatalf("ProductImage not deterministic: %q then %q", first, got)
		}
	}
}

func TestProductImage_EmptyProduct(t *testing.T) {
	if got := ProductImage(&models.Product{}); got == "" {
		t.Error("ProductImage for empty product returned empty URL")
	}
}

func TestHashString(t *testing.T) {
	if hashString("abc") != hashString("abc") {
		t.Error("hashString not stable")
	}
	if hashString("abc") == hashString("abd") {
		t.Error("hashString collides on trivially different inputs")
	}
}
