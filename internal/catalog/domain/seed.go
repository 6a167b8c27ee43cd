package domain

import "time"

func seedDate(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

// SeedCatalog returns the built-in example listings shown even with an empty
// store. Each call returns fresh copies so callers can mutate them freely.
// Seed listings are not persisted until first mutated.
func SeedCatalog() []Property {
	return []Property{
		{
			ID:       "seed-1",
			Title:    "Luxury Beach House",
			Location: "Malibu, California",
			Price:    350,
			Image:    "https://images.unsplash.com/photo-1527030280862-64139fba04ca",
			Rating:   4.8,
			Reviews: []Review{
				{
					ID:       "seed-review-1",
					UserID:   "seed-user-1",
					UserName: "John Doe",
					Rating:   5,
					Comment:  "Amazing beachfront property with stunning views!",
					Date:     seedDate("2024-02-15"),
				},
			},
		},
		{
			ID:       "seed-2",
			Title:    "Mountain Retreat",
			Location: "Aspen, Colorado",
			Price:    250,
			Image:    "https://images.unsplash.com/photo-1520250497591-112f2f40a3f4",
			Rating:   4.9,
			Reviews: []Review{
				{
					ID:       "seed-review-2",
					UserID:   "seed-user-2",
					UserName: "Jane Smith",
					Rating:   4,
					Comment:  "Perfect for a winter getaway. Very cozy!",
					Date:     seedDate("2024-02-10"),
				},
			},
		},
		{
			ID:       "seed-3",
			Title:    "City Center Apartment",
			Location: "New York City, NY",
			Price:    200,
			Image:    "https://images.unsplash.com/photo-1502672260266-1c1ef2d93688",
			Rating:   4.7,
			Reviews: []Review{
				{
					ID:       "seed-review-3",
					UserID:   "seed-user-3",
					UserName: "Mike Johnson",
					Rating:   5,
					Comment:  "Fantastic location, modern amenities!",
					Date:     seedDate("2024-02-05"),
				},
			},
		},
	}
}
