package entity

import "time"

// Site representa una sede física donde se almacena inventario.
// Pedidos e inventario la referencian por nombre, no por ID.
type Site struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
