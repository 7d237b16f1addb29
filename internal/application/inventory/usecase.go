package inventory

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/inventory"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

const maxReasonLen = 500

// RegisterMovementUseCase registra entradas y salidas manuales de inventario.
// El movimiento y el ajuste relativo de stock se confirman en la misma transacción.
type RegisterMovementUseCase struct {
	txRunner      TxRunner
	publisher     ports.EventPublisher
	statsCache    ports.StatsCache
	allowNegative bool
	log           *logger.Logger
	now           func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. allowNegative desactiva el piso de stock en cero.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	publisher ports.EventPublisher,
	statsCache ports.StatsCache,
	allowNegative bool,
	log *logger.Logger,
) *RegisterMovementUseCase {
	if publisher == nil {
		publisher = ports.NopPublisher{}
	}
	if statsCache == nil {
		statsCache = ports.NopStatsCache{}
	}
	return &RegisterMovementUseCase{
		txRunner:      txRunner,
		publisher:     publisher,
		statsCache:    statsCache,
		allowNegative: allowNegative,
		log:           log.Named("inventory"),
		now:           time.Now,
	}
}

// RegisterMovement valida, inserta el movimiento y aplica +quantity (entrada) o -quantity (salida).
// Devuelve el stock resultante.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, userID string, in dto.CreateMovementRequest) (*dto.MovementCreatedResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if _, err := uuid.Parse(in.ProductID); err != nil {
		return nil, domain.Invalid("product_id", "identificador inválido")
	}
	movementType := strings.ToLower(strings.TrimSpace(in.MovementType))
	delta, err := inventory.MovementDelta(movementType, in.Quantity)
	if err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(in.Reason)
	if utf8.RuneCountInString(reason) > maxReasonLen {
		return nil, domain.Invalid("reason", "máximo 500 caracteres")
	}

	mov := &entity.InventoryMovement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Type:      movementType,
		Quantity:  in.Quantity,
		Reason:    reason,
		UserID:    userID,
		CreatedAt: uc.now(),
	}
	var newStock int
	err = uc.txRunner.Run(ctx, func(movRepo repository.InventoryMovementRepository, stockRepo repository.StockRepository) error {
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		stock, err := stockRepo.Adjust(ctx, mov.ProductID, delta, uc.allowNegative)
		if err != nil {
			return err
		}
		newStock = stock
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("kind", domain.KindOf(err).String()).Str("product_id", mov.ProductID).Msg("movimiento rechazado")
		return nil, err
	}

	uc.log.Info().
		Str("movement_id", mov.ID).
		Str("product_id", mov.ProductID).
		Str("type", mov.Type).
		Int("quantity", mov.Quantity).
		Int("new_stock", newStock).
		Msg("movimiento registrado")

	change := ports.StockChange{ProductID: mov.ProductID, Delta: delta, NewStock: newStock}
	if err := uc.publisher.MovementRecorded(ctx, ports.MovementRecordedEvent{
		MovementID:   mov.ID,
		MovementType: mov.Type,
		Quantity:     mov.Quantity,
		UserID:       userID,
		Stock:        change,
		OccurredAt:   mov.CreatedAt,
	}); err != nil {
		uc.log.Warn().Err(err).Str("movement_id", mov.ID).Msg("no se pudo publicar el evento de movimiento")
	}
	if err := uc.statsCache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché del dashboard")
	}

	return &dto.MovementCreatedResponse{ID: mov.ID, NewStock: newStock, Message: "Movimiento registrado correctamente"}, nil
}
