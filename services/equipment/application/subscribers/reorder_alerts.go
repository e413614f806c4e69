package subscribers

import (
	"context"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/ghuser/equipstore/pkg/logger"
)

// seenEventTTL bounds how long delivered event ids are remembered for deduplication.
const seenEventTTL = 10 * time.Minute

// ReorderAlert describes equipment whose stock fell below its lower bound.
type ReorderAlert struct {
	EquipmentID   int
	Name          string
	Supplier      string
	Amount        int
	LowerBound    int
	OrderQuantity int
}

// ReorderAlerter raises an alert when an event shows equipment that needs
// reordering. Repeat alerts for the same equipment are suppressed until the
// cooldown expires or the equipment is restocked to its lower bound.
type ReorderAlerter struct {
	log      logger.Logger
	cooldown time.Duration
	seen     *gocache.Cache // event id -> struct{}
	alerted  *gocache.Cache // equipment id -> struct{}
	notify   func(context.Context, ReorderAlert)
	alerts   metric.Int64Counter
}

// NewReorderAlerter returns an alerter that logs each alert as a warning.
// A non-positive cooldown disables suppression.
func NewReorderAlerter(log logger.Logger, cooldown time.Duration) *ReorderAlerter {
	alerts, err := otel.Meter("github.com/ghuser/equipstore/services/equipment").Int64Counter(
		"equipment.reorder_alerts",
		metric.WithDescription("Reorder alerts raised"),
	)
	if err != nil {
		alerts = noop.Int64Counter{}
	}

	a := &ReorderAlerter{
		log:      log.With("subscriber", "reorder_alerts"),
		cooldown: cooldown,
		seen:     gocache.New(seenEventTTL, 2*seenEventTTL),
		alerted:  gocache.New(cooldown, 2*max(cooldown, time.Minute)),
		alerts:   alerts,
	}
	a.notify = a.logAlert
	return a
}

// OnAlert replaces the default log-only notification.
func (a *ReorderAlerter) OnAlert(fn func(context.Context, ReorderAlert)) {
	a.notify = fn
}

// Handle is the bus handler for every equipment topic.
func (a *ReorderAlerter) Handle(ctx context.Context, msg *message.Message) error {
	env, err := decode(msg)
	if err != nil {
		a.log.ErrorContext(ctx, "dropping undecodable event", "error", err)
		return nil
	}

	if env.EventID != "" {
		if err := a.seen.Add(env.EventID, struct{}{}, gocache.DefaultExpiration); err != nil {
			a.log.DebugContext(ctx, "duplicate event ignored", "event_id", env.EventID)
			return nil
		}
	}

	state := env.State
	key := strconv.Itoa(state.EquipmentID)

	if state.OrderQuantity == 0 {
		a.alerted.Delete(key)
		return nil
	}
	if a.cooldown > 0 {
		if err := a.alerted.Add(key, struct{}{}, gocache.DefaultExpiration); err != nil {
			return nil
		}
	}

	a.alerts.Add(ctx, 1)
	a.notify(ctx, ReorderAlert{
		EquipmentID:   state.EquipmentID,
		Name:          state.Name,
		Supplier:      state.Supplier,
		Amount:        state.Amount,
		LowerBound:    state.LowerBound,
		OrderQuantity: state.OrderQuantity,
	})
	return nil
}

func (a *ReorderAlerter) logAlert(ctx context.Context, alert ReorderAlert) {
	a.log.WarnContext(ctx, "reorder needed",
		"equipment_id", alert.EquipmentID,
		"name", alert.Name,
		"supplier", alert.Supplier,
		"amount", alert.Amount,
		"lower_bound", alert.LowerBound,
		"order_quantity", alert.OrderQuantity,
	)
}
