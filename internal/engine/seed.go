package engine

// SeedPeople returns the starter collection shown on first launch or when
// the stored data cannot be read. Each call returns fresh values.
func SeedPeople() []Person {
	return []Person{
		{
			ID:       "person-1",
			Name:     "Mamá",
			Birthday: "15 de Mayo",
			Color:    ColorRose,
			Gifts: []Gift{
				{
					ID:          "gift-1-1",
					Name:        "Set de Jardinería Premium",
					Description: "Herramientas ergonómicas de acero inoxidable.",
					Status:      StatusPending,
					Priority:    PriorityHigh,
				},
				{
					ID:          "gift-1-2",
					Name:        "Colección de Agatha Christie",
					Description: "Edición especial de bolsillo con sus obras más famosas.",
					Status:      StatusPurchased,
					Price:       Price(45),
				},
			},
		},
		{
			ID:       "person-2",
			Name:     "Juan",
			Birthday: "22 de Noviembre",
			Color:    ColorBlue,
			Gifts: []Gift{
				{
					ID:          "gift-2-1",
					Name:        "Teclado Mecánico Compacto",
					Description: "Inalámbrico, con switches silenciosos para programar.",
					Status:      StatusPending,
					Link:        "https://amazon.es",
				},
				{
					ID:          "gift-2-2",
					Name:        "Suscripción a Café",
					Description: "Recibe granos de diferentes orígenes cada mes.",
					Status:      StatusPending,
					Price:       Price(25),
					Priority:    PriorityLow,
				},
			},
		},
	}
}
