package subscribers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/equipstore/pkg/cache"
	"github.com/ghuser/equipstore/pkg/logger"
	appsvcs "github.com/ghuser/equipstore/services/equipment/application/services"
	equipmentdomain "github.com/ghuser/equipstore/services/equipment/domain"
	"github.com/ghuser/equipstore/services/equipment/domain/models"
)

// ProjectionStore is the write side of the equipment read model.
type ProjectionStore interface {
	Set(ctx context.Context, e *cache.CachedEquipment) error
}

// StateSource returns the current state of a record.
type StateSource interface {
	Get(ctx context.Context, lookup appsvcs.Lookup) (*models.Equipment, error)
}

// Projection mirrors registry records into the Redis read model.
//
// Events on different topics may be handled out of order, so the payload is
// only used to learn which record changed: the record is re-read from the
// registry and written under one mutex, and the last write always carries
// state at least as new as the last mutation.
type Projection struct {
	mu     sync.Mutex
	source StateSource
	store  ProjectionStore
	log    logger.Logger
	now    func() time.Time
}

// NewProjection returns a Projection reading from source and writing to store.
func NewProjection(source StateSource, store ProjectionStore, log logger.Logger) *Projection {
	return &Projection{source: source, store: store, log: log, now: time.Now}
}

// Handle is the bus handler for every equipment topic.
func (p *Projection) Handle(ctx context.Context, msg *message.Message) error {
	env, err := decode(msg)
	if err != nil {
		// Malformed payloads never succeed on retry.
		p.log.ErrorContext(ctx, "projection: dropping undecodable event", "error", err)
		return nil
	}
	id := env.State.EquipmentID

	p.mu.Lock()
	defer p.mu.Unlock()

	e, err := p.source.Get(ctx, appsvcs.ByID(id))
	if errors.Is(err, equipmentdomain.ErrEquipmentNotFound) {
		p.log.WarnContext(ctx, "projection: event for unknown equipment", "equipment_id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("projection: read equipment %d: %w", id, err)
	}

	if err := p.store.Set(ctx, &cache.CachedEquipment{
		ID:            e.ID(),
		Name:          e.Name().String(),
		Supplier:      e.Supplier(),
		Amount:        e.Amount(),
		LowerBound:    e.LowerBound(),
		OrderQuantity: e.OrderQuantity(),
		UpdatedAt:     p.now().UTC(),
	}); err != nil {
		return fmt.Errorf("projection: write equipment %d: %w", id, err)
	}

	p.log.DebugContext(ctx, "projection updated", "equipment_id", id, "event_id", env.EventID)
	return nil
}
