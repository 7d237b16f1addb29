package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

const maxSettingKey = 100

// SettingsUseCase configuración general clave/valor del negocio.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// All devuelve la configuración como mapa clave → valor.
func (uc *SettingsUseCase) All(ctx context.Context) (map[string]string, error) {
	list, err := uc.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(list))
	for _, s := range list {
		out[s.Key] = s.Value
	}
	return out, nil
}

// Set crea o reemplaza una clave.
func (uc *SettingsUseCase) Set(ctx context.Context, in dto.SettingRequest) error {
	key := strings.TrimSpace(in.Key)
	if key == "" || len(key) > maxSettingKey {
		return domain.Invalid("config_key", "obligatoria, máximo 100 caracteres")
	}
	return uc.repo.Upsert(ctx, &entity.Setting{Key: key, Value: in.Value, UpdatedAt: time.Now()})
}
