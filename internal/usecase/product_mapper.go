package usecase

import (
	"fmt"

	"github.com/shoplens/backend/internal/domain"
)

// MapToProductRecord converts a catalog document into its presentation shape.
// Simple catalog records carry name/color/availability/image_url; rich catalog records
// carry title/out_of_stock/product_details and the commerce metadata.
func MapToProductRecord(doc domain.Document) domain.ProductRecord {
	record := domain.ProductRecord{
		ID:            stringField(doc, "_id"),
		Name:          stringField(doc, "name"),
		Color:         stringField(doc, "color"),
		ImageURL:      stringField(doc, "image_url"),
		Brand:         stringField(doc, "brand"),
		Category:      stringField(doc, "category"),
		SubCategory:   stringField(doc, "sub_category"),
		Description:   stringField(doc, "description"),
		SellingPrice:  stringField(doc, "selling_price"),
		ActualPrice:   stringField(doc, "actual_price"),
		Discount:      stringField(doc, "discount"),
		AverageRating: stringField(doc, "average_rating"),
	}

	if record.Name == "" {
		record.Name = stringField(doc, "title")
	}

	if details, ok := doc["product_details"].([]any); ok {
		for _, d := range details {
			if m, ok := d.(map[string]any); ok {
				record.ProductDetails = append(record.ProductDetails, m)
			}
		}
	}
	if record.Color == "" {
		record.Color = detailColor(record.ProductDetails)
	}

	if images, ok := doc["images"].([]any); ok {
		for _, img := range images {
			if s, ok := img.(string); ok {
				record.Images = append(record.Images, s)
			}
		}
	}
	if record.ImageURL == "" && len(record.Images) > 0 {
		record.ImageURL = record.Images[0]
	}

	switch {
	case isBool(doc["availability"]):
		record.Availability = doc["availability"].(bool)
	case isBool(doc["out_of_stock"]):
		record.Availability = !doc["out_of_stock"].(bool)
	default:
		// out_of_stock is optional and projections may drop it
		record.Availability = true
	}

	return record
}

// detailColor returns the Color of the first product_details entry that has one
func detailColor(details []map[string]any) string {
	for _, d := range details {
		if c, ok := d["Color"]; ok {
			return fmt.Sprint(c)
		}
	}
	return ""
}

func stringField(doc domain.Document, key string) string {
	v, ok := doc[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}
