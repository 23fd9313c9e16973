// internal/domain/product/sample_catalog.go
package product

import "github.com/shopspring/decimal"

const unsplashBase = "https://images.unsplash.com/"
const unsplashParams = "?auto=format&fit=crop&w=800&q=80"

func unsplash(photo string) string { return unsplashBase + photo + unsplashParams }

// SampleCatalog is written by catalog initialization when the remote collection is empty.
// ids are fixed ("1".."8") so repeated seeds overwrite instead of duplicating.
func SampleCatalog() []Product {
	return []Product{
		{
			ID: "1", UserID: "sampleUser1",
			Name:        "Premium Wireless Headphones",
			Description: "High-quality wireless headphones with noise cancellation and premium sound quality.",
			Price:       decimal.RequireFromString("299.99"),
			Category:    "Electronics", Stock: 15,
			ImageURL: unsplash("photo-1505740420928-5e560c06d30e"),
		},
		{
			ID: "2", UserID: "sampleUser2",
			Name:        "Smart Watch Pro",
			Description: "Advanced smartwatch with health tracking, notifications, and long battery life.",
			Price:       decimal.RequireFromString("199.99"),
			Category:    "Electronics", Stock: 20,
			ImageURL: unsplash("photo-1523275335684-37898b6baf30"),
		},
		{
			ID: "3", UserID: "sampleUser1",
			Name:        "Premium Leather Wallet",
			Description: "Handcrafted genuine leather wallet with RFID protection.",
			Price:       decimal.RequireFromString("49.99"),
			Category:    "Accessories", Stock: 30,
			ImageURL: unsplash("photo-1627123424574-724758594e93"),
		},
		{
			ID: "4", UserID: "sampleUser2",
			Name:        "Minimalist Backpack",
			Description: "Stylish and functional backpack perfect for daily use and travel.",
			Price:       decimal.RequireFromString("79.99"),
			Category:    "Accessories", Stock: 25,
			ImageURL: unsplash("photo-1553062407-98eeb64c6a62"),
		},
		{
			ID: "5", UserID: "sampleUser1",
			Name:        "Wireless Gaming Mouse",
			Description: "High-precision wireless gaming mouse with customizable RGB lighting.",
			Price:       decimal.RequireFromString("89.99"),
			Category:    "Gaming", Stock: 18,
			ImageURL: unsplash("photo-1527814050087-3793815479db"),
		},
		{
			ID: "6", UserID: "sampleUser2",
			Name:        "Mechanical Keyboard",
			Description: "Professional mechanical keyboard with RGB backlighting and premium switches.",
			Price:       decimal.RequireFromString("149.99"),
			Category:    "Gaming", Stock: 12,
			ImageURL: unsplash("photo-1595044426077-d36d9236d54a"),
		},
		{
			ID: "7", UserID: "sampleUser1",
			Name:        "Premium Coffee Maker",
			Description: "Advanced coffee maker with temperature control and multiple brewing options.",
			Price:       decimal.RequireFromString("199.99"),
			Category:    "Home", Stock: 10,
			ImageURL: unsplash("photo-1520970014086-2208d157c9e2"),
		},
		{
			ID: "8", UserID: "sampleUser2",
			Name:        "Smart Home Speaker",
			Description: "Voice-controlled smart speaker with premium sound quality.",
			Price:       decimal.RequireFromString("129.99"),
			Category:    "Electronics", Stock: 22,
			ImageURL: unsplash("photo-1589003077984-894e133dabab"),
		},
	}
}
