package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePeriodCreated      = "budget.period.created"
	EventTypeCategoryAdded      = "budget.category.added"
	EventTypeCategoryUpdated    = "budget.category.updated"
	EventTypeCategoryRemoved    = "budget.category.removed"
	EventTypeTransactionAdded   = "budget.transaction.added"
	EventTypeTransactionUpdated = "budget.transaction.updated"
	EventTypeTransactionRemoved = "budget.transaction.removed"
)

// BudgetEventTypes lists every event that changes a period's summary.
var BudgetEventTypes = []string{
	EventTypePeriodCreated,
	EventTypeCategoryAdded,
	EventTypeCategoryUpdated,
	EventTypeCategoryRemoved,
	EventTypeTransactionAdded,
	EventTypeTransactionUpdated,
	EventTypeTransactionRemoved,
}

// BudgetChangedEvent tells subscribers that the snapshot of a period changed
// and any derived figures must be recomputed.
type BudgetChangedEvent struct {
	BaseEvent
	PeriodID int64  `json:"period_id"`
	EntityID int64  `json:"entity_id"`
	Month    string `json:"month,omitempty"`
	Year     int    `json:"year,omitempty"`
	Actor    string `json:"actor,omitempty"`
}

// WithActor records who made the change. An empty actor is left out.
func (e *BudgetChangedEvent) WithActor(actor string) *BudgetChangedEvent {
	if actor == "" {
		return e
	}
	e.Actor = actor
	e.Data["actor"] = actor
	return e
}

func NewBudgetChangedEvent(eventType string, periodID, entityID int64) *BudgetChangedEvent {
	return &BudgetChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"period_id": periodID,
				"entity_id": entityID,
			},
		},
		PeriodID: periodID,
		EntityID: entityID,
	}
}

func NewPeriodCreatedEvent(periodID int64, month string, year int) *BudgetChangedEvent {
	e := NewBudgetChangedEvent(EventTypePeriodCreated, periodID, periodID)
	e.Month = month
	e.Year = year
	e.Data["month"] = month
	e.Data["year"] = year
	return e
}
