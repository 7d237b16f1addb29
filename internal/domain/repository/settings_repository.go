package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// SettingsRepository configuración clave/valor.
type SettingsRepository interface {
	All(ctx context.Context) ([]*entity.Setting, error)
	Upsert(ctx context.Context, s *entity.Setting) error
}
