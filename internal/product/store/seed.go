package store

// SampleCatalog returns the products the service starts with when seeding is enabled.
func SampleCatalog() []Product {
	return []Product{
		{ID: 1, Name: "Croquetas para perro", Price: 20.5, Category: "alimento", Stock: 10},
		{ID: 2, Name: "Pelota de goma", Price: 5.99, Category: "juguetes", Stock: 25},
		{ID: 3, Name: "Collar ajustable", Price: 12.0, Category: "accesorios", Stock: 15},
	}
}
