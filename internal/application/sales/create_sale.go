package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/inventory"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// CreateSaleUseCase registra una venta: cabecera, una línea por producto y el descuento de stock,
// todo en una sola transacción. Eventos y log solo después del commit.
type CreateSaleUseCase struct {
	txRunner      TxRunner
	customerRepo  repository.CustomerRepository
	publisher     ports.EventPublisher
	statsCache    ports.StatsCache
	allowNegative bool
	log           *logger.Logger
	now           func() time.Time
}

// NewCreateSaleUseCase construye el caso de uso. allowNegative desactiva el piso de stock en cero.
func NewCreateSaleUseCase(
	txRunner TxRunner,
	customerRepo repository.CustomerRepository,
	publisher ports.EventPublisher,
	statsCache ports.StatsCache,
	allowNegative bool,
	log *logger.Logger,
) *CreateSaleUseCase {
	if publisher == nil {
		publisher = ports.NopPublisher{}
	}
	if statsCache == nil {
		statsCache = ports.NopStatsCache{}
	}
	return &CreateSaleUseCase{
		txRunner:      txRunner,
		customerRepo:  customerRepo,
		publisher:     publisher,
		statsCache:    statsCache,
		allowNegative: allowNegative,
		log:           log.Named("sales"),
		now:           time.Now,
	}
}

// Execute valida la venta, la registra y devuelve id y número de venta.
// Errores: ErrInvalidInput (400), ErrNotFound (404), ErrInsufficientStock (409), ErrStorage (500).
func (uc *CreateSaleUseCase) Execute(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleCreatedResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	v, err := validate(in)
	if err != nil {
		return nil, err
	}
	if v.CustomerID != nil {
		c, err := uc.customerRepo.GetByID(ctx, *v.CustomerID)
		if err != nil {
			return nil, domain.StorageError(err)
		}
		if c == nil || !c.IsActive {
			return nil, fmt.Errorf("cliente %s: %w", *v.CustomerID, domain.ErrNotFound)
		}
	}

	now := uc.now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		SaleNumber:    newSaleNumber(now),
		CustomerID:    v.CustomerID,
		SaleDate:      now,
		Subtotal:      v.Subtotal,
		TaxAmount:     v.TaxAmount,
		TotalAmount:   v.TotalAmount,
		PaymentMethod: v.PaymentMethod,
		UserID:        userID,
		Status:        entity.SaleStatusCompleted,
		CreatedAt:     now,
	}
	lines := make([]inventory.Line, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, inventory.Line{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	deltas := inventory.SaleDeltas(lines)
	changes := make([]ports.StockChange, 0, len(deltas))

	err = uc.txRunner.RunSale(ctx, func(saleRepo repository.SaleRepository, stockRepo repository.StockRepository) error {
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for _, l := range v.Lines {
			item := &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
				LineTotal: l.LineTotal,
			}
			if err := saleRepo.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		// Orden por product id: dos ventas con productos en común bloquean filas en el mismo orden.
		for _, d := range deltas {
			stock, err := stockRepo.Adjust(ctx, d.ProductID, d.Amount, uc.allowNegative)
			if err != nil {
				return err
			}
			changes = append(changes, ports.StockChange{ProductID: d.ProductID, Delta: d.Amount, NewStock: stock})
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("kind", domain.KindOf(err).String()).Str("user_id", userID).Msg("venta rechazada")
		return nil, err
	}

	uc.afterCommit(ctx, sale, changes)
	return &dto.SaleCreatedResponse{ID: sale.ID, SaleNumber: sale.SaleNumber, Message: "Venta creada correctamente"}, nil
}

func (uc *CreateSaleUseCase) afterCommit(ctx context.Context, sale *entity.Sale, changes []ports.StockChange) {
	ev := uc.log.Info().
		Str("sale_id", sale.ID).
		Str("sale_number", sale.SaleNumber).
		Str("user_id", sale.UserID).
		Str("total", sale.TotalAmount.StringFixed(2))
	for _, c := range changes {
		ev = ev.Int("stock."+c.ProductID, c.NewStock)
	}
	ev.Msg("venta registrada")

	err := uc.publisher.SaleCreated(ctx, ports.SaleCreatedEvent{
		SaleID:      sale.ID,
		SaleNumber:  sale.SaleNumber,
		UserID:      sale.UserID,
		CustomerID:  sale.CustomerID,
		TotalAmount: sale.TotalAmount,
		Stock:       changes,
		OccurredAt:  sale.CreatedAt,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("sale_id", sale.ID).Msg("no se pudo publicar el evento de venta")
	}
	if err := uc.statsCache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché del dashboard")
	}
}

// newSaleNumber SALE-<unix ms>-<8 hex>. El sufijo evita colisiones entre ventas del mismo milisegundo.
func newSaleNumber(t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("SALE-%d-%s", t.UnixMilli(), suffix)
}
