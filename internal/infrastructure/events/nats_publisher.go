// Package events publica en NATS los cambios de stock ya confirmados.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/nats-io/nats.go"
)

// Sufijos de subject; el prefijo viene de la configuración (NATS_SUBJECT_PREFIX).
const (
	SubjectSaleCreated      = "sale.created"
	SubjectMovementRecorded = "inventory.movement"
)

// Conn lo mínimo que el publicador necesita de *nats.Conn.
type Conn interface {
	Publish(subject string, data []byte) error
}

var _ ports.EventPublisher = (*NATSPublisher)(nil)

// Connect abre la conexión a NATS con reconexión automática.
func Connect(url, name string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", url, err)
	}
	return nc, nil
}

// NATSPublisher serializa eventos a JSON y los publica en <prefix>.<subject>.
type NATSPublisher struct {
	conn   Conn
	prefix string
}

// NewNATSPublisher construye el publicador. prefix vacío usa "ventas".
func NewNATSPublisher(conn Conn, prefix string) *NATSPublisher {
	if prefix == "" {
		prefix = "ventas"
	}
	return &NATSPublisher{conn: conn, prefix: prefix}
}

func (p *NATSPublisher) SaleCreated(ctx context.Context, ev ports.SaleCreatedEvent) error {
	return p.publish(ctx, SubjectSaleCreated, ev)
}

func (p *NATSPublisher) MovementRecorded(ctx context.Context, ev ports.MovementRecordedEvent) error {
	return p.publish(ctx, SubjectMovementRecorded, ev)
}

func (p *NATSPublisher) publish(ctx context.Context, subject string, ev any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("serializar evento %s: %w", subject, err)
	}
	full := p.prefix + "." + subject
	if err := p.conn.Publish(full, data); err != nil {
		return fmt.Errorf("publicar %s: %w", full, err)
	}
	return nil
}
