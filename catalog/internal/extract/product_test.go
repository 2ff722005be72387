package extract

import (
	"strings"
	"testing"
)

const productPage = `<html>
<head>
	<title>Winter Rose Bouquet | Example Flowers</title>
	<meta property="og:description" content="A hand-tied bouquet of winter roses.">
	<script type="application/ld+json">
	{"@context":"https://schema.org","@type":"BreadcrumbList","itemListElement":[]}
	</script>
	<script type="application/ld+json">
	{
		"@type": "Product",
		"name": "Winter Rose Bouquet",
		"sku": "WRB-100",
		"image": ["https://img.example/wrb-100.jpg", "https://img.example/wrb-100-alt.jpg"],
		"aggregateRating": {"ratingValue": 4.7, "reviewCount": 212},
		"offers": {"@type": "Offer", "price": "29.99", "availability": "https://schema.org/InStock"}
	}
	</script>
</head>
<body>
	<h1 class="products-name">Winter Rose Bouquet</h1>
	<input type="hidden" id="productid" name="productid" value="8841">
	<span class="price-retail">£29.99</span>
	<span class="size-cost">+ £5.00</span>
	<span class="size-cost">+ £10.00</span>
	<div class="delivery-info">Free next-day delivery</div>
</body>
</html>`

func TestProductFullPage(t *testing.T) {
	d, err := Product(productPage, DefaultSelectors())
	if err != nil {
		t.Fatalf("Product: %v", err)
	}
	if d.Name != "Winter Rose Bouquet" {
		t.Errorf("name = %q", d.Name)
	}
	if d.SKU != "WRB-100" {
		t.Errorf("sku = %q", d.SKU)
	}
	if d.VendorCode != "8841" {
		t.Errorf("vendor code = %q", d.VendorCode)
	}
	if d.Description != "A hand-tied bouquet of winter roses." {
		t.Errorf("description = %q", d.Description)
	}
	if d.ImageURL != "https://img.example/wrb-100.jpg" {
		t.Errorf("image = %q", d.ImageURL)
	}
	if d.PriceRetail == nil || *d.PriceRetail != 29.99 {
		t.Errorf("retail = %v", d.PriceRetail)
	}
	if d.PriceMedium == nil || *d.PriceMedium != 34.99 {
		t.Errorf("medium = %v", d.PriceMedium)
	}
	if d.PriceLarge == nil || *d.PriceLarge != 39.99 {
		t.Errorf("large = %v", d.PriceLarge)
	}
	if d.Rating == nil || *d.Rating != 4.7 {
		t.Errorf("rating = %v", d.Rating)
	}
	if d.Availability != "https://schema.org/InStock" {
		t.Errorf("availability = %q", d.Availability)
	}
	if d.DeliveryInfo != "Free next-day delivery" {
		t.Errorf("delivery = %q", d.DeliveryInfo)
	}
	if !strings.Contains(d.RawPayload, `"sku":"WRB-100"`) {
		t.Errorf("raw payload missing sku: %s", d.RawPayload)
	}
}

func TestProductStructuredDataList(t *testing.T) {
	// A single JSON-LD block may hold a list of objects; the Product one
	// must be selected.
	html := `<script type="application/ld+json">
	[{"@type":"Organization","name":"Example"},{"@type":"Product","name":"Holly Wreath","sku":"HW-1"}]
	</script>`
	d, err := Product(html, DefaultSelectors())
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != "Holly Wreath" || d.SKU != "HW-1" {
		t.Fatalf("got name=%q sku=%q", d.Name, d.SKU)
	}
}

func TestProductTypeList(t *testing.T) {
	html := `<script type="application/ld+json">
	{"@type":["Product","IndividualProduct"],"name":"Ivy"}
	</script>`
	d, err := Product(html, DefaultSelectors())
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != "Ivy" {
		t.Fatalf("name = %q", d.Name)
	}
}

func TestProductNameFallbackChain(t *testing.T) {
	// No structured data: fall back to heading.
	d, err := Product(`<h1 class="products-name"> Amaryllis </h1><title>ignored</title>`, DefaultSelectors())
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != "Amaryllis" {
		t.Fatalf("heading fallback: name = %q", d.Name)
	}

	// No heading either: fall back to title.
	d, err = Product(`<html><head><title>Amaryllis Plant | Shop</title></head><body></body></html>`, DefaultSelectors())
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != "Amaryllis Plant | Shop" {
		t.Fatalf("title fallback: name = %q", d.Name)
	}
}

func TestProductSKUTextFallback(t *testing.T) {
	d, err := Product(`<body><p>Product Code: AMR-77</p></body>`, DefaultSelectors())
	if err != nil {
		t.Fatal(err)
	}
	if d.SKU != "AMR-77" {
		t.Fatalf("sku = %q", d.SKU)
	}
}

func TestProductMalformedJSONLDSkipped(t *testing.T) {
	html := `
	<script type="application/ld+json">{not json at all</script>
	<script type="application/ld+json">{"@type":"Product","name":"Recovered"}</script>`
	d, err := Product(html, DefaultSelectors())
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != "Recovered" {
		t.Fatalf("name = %q, want value from the valid block", d.Name)
	}
}

func TestProductEmptyPage(t *testing.T) {
	d, err := Product("", DefaultSelectors())
	if err != nil {
		t.Fatalf("empty page should not error: %v", err)
	}
	if d.Name != "" || d.SKU != "" || d.PriceRetail != nil {
		t.Fatalf("empty page should yield an empty record: %+v", d)
	}
}

func TestProductDeliveryTextFallback(t *testing.T) {
	d, err := Product("<body><p>Delivery: within 3 working days</p></body>", DefaultSelectors())
	if err != nil {
		t.Fatal(err)
	}
	if d.DeliveryInfo != "within 3 working days" {
		t.Fatalf("delivery = %q", d.DeliveryInfo)
	}
}

func TestProductRatingAsString(t *testing.T) {
	html := `<script type="application/ld+json">
	{"@type":"Product","name":"X","aggregateRating":{"ratingValue":"4.2"}}
	</script>`
	d, err := Product(html, DefaultSelectors())
	if err != nil {
		t.Fatal(err)
	}
	if d.Rating == nil || *d.Rating != 4.2 {
		t.Fatalf("rating = %v", d.Rating)
	}
}

func TestProductOfferList(t *testing.T) {
	html := `<script type="application/ld+json">
	{"@type":"Product","name":"X","offers":[{"availability":"https://schema.org/OutOfStock"}]}
	</script>`
	d, err := Product(html, DefaultSelectors())
	if err != nil {
		t.Fatal(err)
	}
	if d.Availability != "https://schema.org/OutOfStock" {
		t.Fatalf("availability = %q", d.Availability)
	}
}
