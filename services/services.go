// Package services содержит бизнес-логику LOOM: значения по умолчанию, валидацию,
// частичные обновления и составные операции в одной транзакции.
// Сервисы не знают об HTTP и возвращают ошибки из пакета common.
package services

import (
	"time"

	"loom_server_go/data"
	"loom_server_go/logging"
)

// base - общие зависимости всех сервисов.
type base struct {
	store *data.Store
	log   logging.Logger
	now   func() time.Time
}

func newBase(store *data.Store, log logging.Logger, component string) base {
	return base{
		store: store,
		log:   log.With("component", component),
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// SetClock подменяет источник текущего времени (для тестов).
func (b *base) SetClock(now func() time.Time) {
	b.now = now
}

// DefaultRecentLimit - размер выборки upcoming/past по умолчанию.
const DefaultRecentLimit = 50

// Set - все сервисы приложения, созданные над одним хранилищем.
type Set struct {
	Notes         *NoteService
	Events        *EventService
	Todos         *TodoService
	Recipes       *RecipeService
	Subscriptions *SubscriptionService
	Travel        *TravelService
	Dashboard     *DashboardService
}

func NewSet(store *data.Store, log logging.Logger) *Set {
	return &Set{
		Notes:         NewNoteService(store, log),
		Events:        NewEventService(store, log),
		Todos:         NewTodoService(store, log),
		Recipes:       NewRecipeService(store, log),
		Subscriptions: NewSubscriptionService(store, log),
		Travel:        NewTravelService(store, log),
		Dashboard:     NewDashboardService(store, log),
	}
}
