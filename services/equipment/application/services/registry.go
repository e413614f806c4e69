package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/equipstore/pkg/logger"
	equipmentdomain "github.com/ghuser/equipstore/services/equipment/domain"
	equipmentevents "github.com/ghuser/equipstore/services/equipment/domain/events"
	"github.com/ghuser/equipstore/services/equipment/domain/models"
	"github.com/ghuser/equipstore/services/equipment/domain/repositories"
	domainsvcs "github.com/ghuser/equipstore/services/equipment/domain/services"
)

const instrumentationName = "github.com/ghuser/equipstore/services/equipment"

// EventPublisher is the subset of events.EventBus the registry needs.
type EventPublisher interface {
	PublishJSON(ctx context.Context, topic, eventID string, payload any) error
}

// Lookup selects a record either by id or by case-insensitive name.
type Lookup struct {
	id     int
	name   string
	byName bool
}

// ByID looks equipment up by its registry-assigned id.
func ByID(id int) Lookup { return Lookup{id: id} }

// ByName looks equipment up by name, ignoring case.
func ByName(name string) Lookup { return Lookup{name: name, byName: true} }

func (l Lookup) String() string {
	if l.byName {
		return "name=" + l.name
	}
	return "id=" + strconv.Itoa(l.id)
}

// UpdateParams carries the mutable descriptive fields. Nil fields are left as they are.
type UpdateParams struct {
	Supplier   *string
	LowerBound *int
}

// Registry is the authoritative equipment collection. One mutex serializes
// every operation, readers included; events are published after it is released.
type Registry struct {
	mu   sync.Mutex
	repo repositories.EquipmentRepository

	publisher EventPublisher
	log       logger.Logger
	tracer    trace.Tracer

	registrations metric.Int64Counter
	alterations   metric.Int64Counter
}

// NewRegistry returns a Registry over repo. publisher may be nil, in which
// case no domain events are emitted.
func NewRegistry(repo repositories.EquipmentRepository, publisher EventPublisher, log logger.Logger) *Registry {
	meter := otel.Meter(instrumentationName)

	registrations, err := meter.Int64Counter("equipment.registrations",
		metric.WithDescription("Registration attempts by result"))
	if err != nil {
		log.Warn("registry: registrations counter unavailable", "error", err)
		registrations = noop.Int64Counter{}
	}
	alterations, err := meter.Int64Counter("equipment.supply_alterations",
		metric.WithDescription("Supply alterations by resulting status"))
	if err != nil {
		log.Warn("registry: supply alterations counter unavailable", "error", err)
		alterations = noop.Int64Counter{}
	}

	return &Registry{
		repo:          repo,
		publisher:     publisher,
		log:           log,
		tracer:        otel.Tracer(instrumentationName),
		registrations: registrations,
		alterations:   alterations,
	}
}

// Register stores a new Equipment under the next sequential id and returns a
// copy of it. A name equal to an existing one ignoring case yields
// ErrEquipmentAlreadyExists; an empty or malformed name yields
// ErrInvalidEquipmentName. Neither failure consumes an id.
func (r *Registry) Register(ctx context.Context, name, supplier string, amount, lowerBound int) (*models.Equipment, error) {
	ctx, span := r.tracer.Start(ctx, "Registry.Register", trace.WithAttributes(
		attribute.String("equipment.name", name),
	))
	defer span.End()

	equipmentName, err := models.NewEquipmentName(name)
	if err != nil {
		return nil, r.registerFailed(ctx, span, fmt.Errorf("%w: %w", equipmentdomain.ErrInvalidEquipmentName, err))
	}
	if err := domainsvcs.ValidateName(equipmentName); err != nil {
		return nil, r.registerFailed(ctx, span, fmt.Errorf("%w: %w", equipmentdomain.ErrInvalidEquipmentName, err))
	}

	r.mu.Lock()
	e, err := r.registerLocked(equipmentName, supplier, amount, lowerBound)
	r.mu.Unlock()
	if err != nil {
		return nil, r.registerFailed(ctx, span, err)
	}

	span.SetAttributes(attribute.Int("equipment.id", e.ID()))
	r.registrations.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "registered")))
	r.log.InfoContext(ctx, "equipment registered",
		"equipment_id", e.ID(),
		"name", e.Name().String(),
		"amount", e.Amount(),
		"lower_bound", e.LowerBound(),
	)

	r.publish(ctx, equipmentevents.TopicEquipmentRegistered, func(eventID uuid.UUID, now time.Time) any {
		return equipmentevents.EquipmentRegisteredEvent{EventID: eventID, Version: 1, State: stateOf(e), OccurredAt: now}
	})

	return e, nil
}

func (r *Registry) registerLocked(name models.EquipmentName, supplier string, amount, lowerBound int) (*models.Equipment, error) {
	if _, err := r.repo.FindByName(name.String()); err == nil {
		return nil, fmt.Errorf("%w: %q", equipmentdomain.ErrEquipmentAlreadyExists, name)
	} else if !errors.Is(err, equipmentdomain.ErrEquipmentNotFound) {
		return nil, fmt.Errorf("find equipment: %w", err)
	}

	e, err := models.NewEquipment(r.repo.NextID(), name, supplier, amount, lowerBound)
	if err != nil {
		return nil, fmt.Errorf("create equipment: %w", err)
	}
	if err := domainsvcs.ValidateEquipmentForRegistration(e); err != nil {
		return nil, fmt.Errorf("%w: %w", equipmentdomain.ErrInvalidEquipmentName, err)
	}
	if err := r.repo.Save(e); err != nil {
		return nil, fmt.Errorf("save equipment: %w", err)
	}
	return e.Clone(), nil
}

func (r *Registry) registerFailed(ctx context.Context, span trace.Span, err error) error {
	result := "invalid"
	if errors.Is(err, equipmentdomain.ErrEquipmentAlreadyExists) {
		result = "duplicate"
	}
	span.SetStatus(codes.Error, result)
	span.RecordError(err)
	r.registrations.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
	r.log.InfoContext(ctx, "equipment registration rejected", "result", result, "error", err)
	return err
}

// AlterSupply adds difference to the stored amount of the looked-up record.
// A rejected withdrawal leaves the amount unchanged.
func (r *Registry) AlterSupply(ctx context.Context, lookup Lookup, difference int) models.Status {
	ctx, span := r.tracer.Start(ctx, "Registry.AlterSupply", trace.WithAttributes(
		attribute.String("equipment.lookup", lookup.String()),
		attribute.Int("equipment.difference", difference),
	))
	defer span.End()

	r.mu.Lock()
	status, e := r.alterLocked(lookup, difference)
	r.mu.Unlock()

	span.SetAttributes(attribute.String("equipment.status", status.String()))
	r.alterations.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status.String())))

	if status != models.StatusOK {
		r.log.InfoContext(ctx, "supply alteration rejected",
			"lookup", lookup.String(), "difference", difference, "status", status.String())
		return status
	}

	r.log.InfoContext(ctx, "supply altered",
		"equipment_id", e.ID(), "difference", difference, "amount", e.Amount())
	r.publish(ctx, equipmentevents.TopicEquipmentSupplyAltered, func(eventID uuid.UUID, now time.Time) any {
		return equipmentevents.SupplyAlteredEvent{
			EventID: eventID, Version: 1, Difference: difference, State: stateOf(e), OccurredAt: now,
		}
	})
	return status
}

func (r *Registry) alterLocked(lookup Lookup, difference int) (models.Status, *models.Equipment) {
	e, err := r.find(lookup)
	if err != nil {
		return models.StatusNotFound, nil
	}
	if !e.ChangeAmount(difference) {
		return models.StatusNotEnoughStored, nil
	}
	return models.StatusOK, e.Clone()
}

// Get returns a copy of the looked-up record or ErrEquipmentNotFound.
func (r *Registry) Get(ctx context.Context, lookup Lookup) (*models.Equipment, error) {
	_, span := r.tracer.Start(ctx, "Registry.Get", trace.WithAttributes(
		attribute.String("equipment.lookup", lookup.String()),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.find(lookup)
	if err != nil {
		span.SetStatus(codes.Error, "not found")
		return nil, err
	}
	return e.Clone(), nil
}

// Update replaces the supplier and/or lower bound of the looked-up record.
// A negative lower bound is clamped to 0.
func (r *Registry) Update(ctx context.Context, lookup Lookup, params UpdateParams) (*models.Equipment, error) {
	ctx, span := r.tracer.Start(ctx, "Registry.Update", trace.WithAttributes(
		attribute.String("equipment.lookup", lookup.String()),
	))
	defer span.End()

	r.mu.Lock()
	e, err := r.find(lookup)
	if err == nil {
		if params.Supplier != nil {
			e.SetSupplier(*params.Supplier)
		}
		if params.LowerBound != nil {
			e.SetLowerBound(*params.LowerBound)
		}
		e = e.Clone()
	}
	r.mu.Unlock()

	if err != nil {
		span.SetStatus(codes.Error, "not found")
		return nil, err
	}

	r.log.InfoContext(ctx, "equipment updated",
		"equipment_id", e.ID(), "supplier", e.Supplier(), "lower_bound", e.LowerBound())
	r.publish(ctx, equipmentevents.TopicEquipmentUpdated, func(eventID uuid.UUID, now time.Time) any {
		return equipmentevents.EquipmentUpdatedEvent{EventID: eventID, Version: 1, State: stateOf(e), OccurredAt: now}
	})
	return e, nil
}

// Registered reports whether a record with the given id or, ignoring case,
// the given name exists.
func (r *Registry) Registered(_ context.Context, id int, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.repo.GetByID(id); err == nil {
		return true
	}
	if name == "" {
		return false
	}
	_, err := r.repo.FindByName(name)
	return err == nil
}

// Len reports the number of registered records.
func (r *Registry) Len(_ context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.repo.Count()
}

// Snapshot returns copies of every record in ascending id order.
func (r *Registry) Snapshot(ctx context.Context) []*models.Equipment {
	_, span := r.tracer.Start(ctx, "Registry.Snapshot")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.repo.List()
	out := make([]*models.Equipment, len(list))
	for i, e := range list {
		out[i] = e.Clone()
	}
	span.SetAttributes(attribute.Int("equipment.count", len(out)))
	return out
}

func (r *Registry) find(lookup Lookup) (*models.Equipment, error) {
	if lookup.byName {
		return r.repo.FindByName(lookup.name)
	}
	return r.repo.GetByID(lookup.id)
}

// publish emits one event built by build. Failures are logged only: the
// mutation has already been committed.
func (r *Registry) publish(ctx context.Context, topic string, build func(eventID uuid.UUID, now time.Time) any) {
	if r.publisher == nil {
		return
	}
	eventID := uuid.New()
	if err := r.publisher.PublishJSON(ctx, topic, eventID.String(), build(eventID, time.Now().UTC())); err != nil {
		r.log.ErrorContext(ctx, "registry: publish event failed", "topic", topic, "error", err)
	}
}

func stateOf(e *models.Equipment) equipmentevents.EquipmentState {
	return equipmentevents.EquipmentState{
		EquipmentID:   e.ID(),
		Name:          e.Name().String(),
		Supplier:      e.Supplier(),
		Amount:        e.Amount(),
		LowerBound:    e.LowerBound(),
		OrderQuantity: e.OrderQuantity(),
	}
}
