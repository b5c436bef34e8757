package usecase

import (
	"fmt"
	"strings"

	"github.com/shoplens/backend/internal/domain"
)

const notAvailable = "N/A"

// PresentCatalog renders rich catalog records: one intro line and one bullet per record
func PresentCatalog(records []domain.ProductRecord) string {
	var b strings.Builder
	b.WriteString("I found the following products:\n\n")
	for _, p := range records {
		fmt.Fprintf(&b, "- **%s** (Brand: %s, Category: %s, Sub-Category: %s, Color: %s, Price: %s, Discount: %s, Availability: %s)\n",
			orNA(p.Name), orNA(p.Brand), orNA(p.Category), orNA(p.SubCategory),
			orNA(p.Color), orNA(p.SellingPrice), orNA(p.Discount), availabilityLabel(p.Availability))
	}
	return b.String()
}

// PresentByColor renders simple records under an intro naming the searched colors
func PresentByColor(colors []string, records []domain.ProductRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I found the following products in %s:\n\n", strings.Join(colors, ", "))
	for _, p := range records {
		fmt.Fprintf(&b, "- **%s** (Color: %s, Availability: %s)\n",
			p.Name, p.Color, availabilityLabel(p.Availability))
	}
	return b.String()
}

func availabilityLabel(available bool) string {
	if available {
		return "Available"
	}
	return "Out of stock"
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
