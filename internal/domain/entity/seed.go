package entity

import "time"

var seedTime = NewTimestamp(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

func intPtr(v int) *int { return &v }

// SeedCatalog returns a fresh copy of the default catalog. Timestamps are
// fixed so resetting twice yields identical lists.
func SeedCatalog() []*Product {
	return []*Product{
		{
			ID:          "serum",
			Name:        "Sérum Éclat",
			Price:       100,
			Image:       "/assets/product-serum.jpg",
			Description: "Illumine et unifie le teint grâce à un complexe vitaminé.",
			Category:    "Soins",
			Stock:       intPtr(50),
			CreatedAt:   seedTime,
			UpdatedAt:   seedTime,
		},
		{
			ID:          "cream",
			Name:        "Crème Hydratante",
			Price:       122,
			Image:       "/assets/product-cream.jpg",
			Description: "Hydratation 24h, texture velours inspirée du rose gold.",
			Category:    "Soins",
			Stock:       intPtr(40),
			CreatedAt:   seedTime,
			UpdatedAt:   seedTime,
		},
		{
			ID:          "palette",
			Name:        "Palette Nude",
			Price:       99,
			Image:       "/assets/product-palette.jpg",
			Description: "Tons naturels et élégants pour un regard doux au quotidien.",
			Category:    "Maquillage",
			Stock:       intPtr(25),
			CreatedAt:   seedTime,
			UpdatedAt:   seedTime,
		},
	}
}
