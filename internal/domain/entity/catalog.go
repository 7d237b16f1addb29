package entity

import "time"

// Category agrupación de productos para filtros y reportes.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// Supplier proveedor habitual de un producto. Solo se listan los activos.
type Supplier struct {
	ID          string
	Name        string
	ContactName string
	Phone       string
	Email       string
	Address     string
	IsActive    bool
	CreatedAt   time.Time
}
