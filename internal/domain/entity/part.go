package entity

import "time"

// Part representa un repuesto del catálogo. SKU es la clave humana única.
type Part struct {
	ID        string
	SKU       string
	Label     string
	CreatedAt time.Time
}
