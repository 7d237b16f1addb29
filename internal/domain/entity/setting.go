package entity

import "time"

// Setting par clave/valor de configuración general del negocio.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
