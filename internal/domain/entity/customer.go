package entity

import "time"

// Customer cliente al que se le asocian ventas.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	TaxID     string // RUC o cédula
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
