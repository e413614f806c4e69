package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the equipment registry.
const (
	TopicEquipmentRegistered    = "equipment.registered"
	TopicEquipmentSupplyAltered = "equipment.supply_altered"
	TopicEquipmentUpdated       = "equipment.updated"
)

// Topics lists every equipment topic, in publish order of a record's lifecycle.
var Topics = []string{TopicEquipmentRegistered, TopicEquipmentSupplyAltered, TopicEquipmentUpdated}

// EquipmentState is the full record as it stood right after the change.
type EquipmentState struct {
	EquipmentID   int    `json:"equipment_id"`
	Name          string `json:"name"`
	Supplier      string `json:"supplier"`
	Amount        int    `json:"amount"`
	LowerBound    int    `json:"lower_bound"`
	OrderQuantity int    `json:"order_quantity"`
}

// EquipmentRegisteredEvent is published after a new Equipment is stored.
type EquipmentRegisteredEvent struct {
	EventID    uuid.UUID      `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int            `json:"version"`  // Schema version; increment on breaking changes
	State      EquipmentState `json:"state"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// SupplyAlteredEvent is published after a successful supply alteration.
type SupplyAlteredEvent struct {
	EventID    uuid.UUID      `json:"event_id"`
	Version    int            `json:"version"`
	Difference int            `json:"difference"`
	State      EquipmentState `json:"state"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// EquipmentUpdatedEvent is published after supplier or lower bound changes.
type EquipmentUpdatedEvent struct {
	EventID    uuid.UUID      `json:"event_id"`
	Version    int            `json:"version"`
	State      EquipmentState `json:"state"`
	OccurredAt time.Time      `json:"occurred_at"`
}
