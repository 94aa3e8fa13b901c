package controllers

import (
	"net/http"

	"loom_server_go/logging"
	"loom_server_go/middleware"
	"loom_server_go/services"

	"github.com/gorilla/mux"
)

// NewRouter регистрирует все маршруты API. Префиксы совпадают с разделами веб-интерфейса.
func NewRouter(db Pinger, svc *services.Set, log logging.Logger) *mux.Router {
	log = log.With("component", "http")

	router := mux.NewRouter()
	router.Use(middleware.RequestID, middleware.AccessLog(log), middleware.Recover(log))
	setFallbackHandlers(router)

	health := NewHealthController(db, log)
	router.HandleFunc("/health", health.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", health.ReadinessCheck).Methods(http.MethodGet)

	dashboard := NewDashboardController(svc.Dashboard, log)
	router.HandleFunc("/api/overview", dashboard.GetOverviewHandler).Methods(http.MethodGet)

	notes := NewNotesController(svc.Notes, log)
	notesRouter := apiSubrouter(router, "/notes/api")
	notesRouter.HandleFunc("/notes", notes.GetNotesHandler).Methods(http.MethodGet)
	notesRouter.HandleFunc("/notes", notes.CreateNoteHandler).Methods(http.MethodPost)
	notesRouter.HandleFunc("/notes/{id:[0-9]+}", notes.GetNoteHandler).Methods(http.MethodGet)
	notesRouter.HandleFunc("/notes/{id:[0-9]+}", notes.UpdateNoteHandler).Methods(http.MethodPut)
	notesRouter.HandleFunc("/notes/{id:[0-9]+}", notes.DeleteNoteHandler).Methods(http.MethodDelete)

	events := NewEventsController(svc.Events, log)
	calendarRouter := apiSubrouter(router, "/calendar/api")
	calendarRouter.HandleFunc("/events", events.GetEventsHandler).Methods(http.MethodGet)
	calendarRouter.HandleFunc("/events", events.CreateEventHandler).Methods(http.MethodPost)
	calendarRouter.HandleFunc("/events/{id:[0-9]+}", events.GetEventHandler).Methods(http.MethodGet)
	calendarRouter.HandleFunc("/events/{id:[0-9]+}", events.UpdateEventHandler).Methods(http.MethodPut)
	calendarRouter.HandleFunc("/events/{id:[0-9]+}", events.DeleteEventHandler).Methods(http.MethodDelete)
	eventsRouter := apiSubrouter(router, "/events/api")
	eventsRouter.HandleFunc("/events/upcoming", events.GetUpcomingEventsHandler).Methods(http.MethodGet)
	eventsRouter.HandleFunc("/events/past", events.GetPastEventsHandler).Methods(http.MethodGet)

	todos := NewTodosController(svc.Todos, log)
	todosRouter := apiSubrouter(router, "/todos/api")
	todosRouter.HandleFunc("/todos", todos.GetTodosHandler).Methods(http.MethodGet)
	todosRouter.HandleFunc("/todos", todos.CreateTodoHandler).Methods(http.MethodPost)
	todosRouter.HandleFunc("/todos/weekly", todos.GetWeeklyTodosHandler).Methods(http.MethodGet)
	todosRouter.HandleFunc("/todos/{id:[0-9]+}", todos.GetTodoHandler).Methods(http.MethodGet)
	todosRouter.HandleFunc("/todos/{id:[0-9]+}", todos.UpdateTodoHandler).Methods(http.MethodPut)
	todosRouter.HandleFunc("/todos/{id:[0-9]+}", todos.DeleteTodoHandler).Methods(http.MethodDelete)
	todosRouter.HandleFunc("/todos/{id:[0-9]+}/reminders", todos.CreateReminderHandler).Methods(http.MethodPost)
	todosRouter.HandleFunc("/reminders/{id:[0-9]+}", todos.DeleteReminderHandler).Methods(http.MethodDelete)

	recipes := NewRecipesController(svc.Recipes, log)
	recipesRouter := apiSubrouter(router, "/recipes/api")
	recipesRouter.HandleFunc("/recipes", recipes.GetRecipesHandler).Methods(http.MethodGet)
	recipesRouter.HandleFunc("/recipes", recipes.CreateRecipeHandler).Methods(http.MethodPost)
	recipesRouter.HandleFunc("/recipes/{id:[0-9]+}", recipes.GetRecipeHandler).Methods(http.MethodGet)
	recipesRouter.HandleFunc("/recipes/{id:[0-9]+}", recipes.UpdateRecipeHandler).Methods(http.MethodPut)
	recipesRouter.HandleFunc("/recipes/{id:[0-9]+}", recipes.DeleteRecipeHandler).Methods(http.MethodDelete)
	recipesRouter.HandleFunc("/shopping-list", recipes.GetShoppingListHandler).Methods(http.MethodGet)
	recipesRouter.HandleFunc("/shopping-list", recipes.CreateShoppingItemHandler).Methods(http.MethodPost)
	recipesRouter.HandleFunc("/shopping-list/from-recipe/{recipe_id:[0-9]+}", recipes.AddRecipeToShoppingListHandler).Methods(http.MethodPost)
	recipesRouter.HandleFunc("/shopping-list/{id:[0-9]+}", recipes.UpdateShoppingItemHandler).Methods(http.MethodPut)
	recipesRouter.HandleFunc("/shopping-list/{id:[0-9]+}", recipes.DeleteShoppingItemHandler).Methods(http.MethodDelete)

	subs := NewSubscriptionsController(svc.Subscriptions, log)
	subsRouter := apiSubrouter(router, "/subscriptions/api")
	subsRouter.HandleFunc("/subscriptions", subs.GetSubscriptionsHandler).Methods(http.MethodGet)
	subsRouter.HandleFunc("/subscriptions", subs.CreateSubscriptionHandler).Methods(http.MethodPost)
	subsRouter.HandleFunc("/subscriptions/reminders", subs.GetRemindersHandler).Methods(http.MethodGet)
	subsRouter.HandleFunc("/subscriptions/{id:[0-9]+}", subs.GetSubscriptionHandler).Methods(http.MethodGet)
	subsRouter.HandleFunc("/subscriptions/{id:[0-9]+}", subs.UpdateSubscriptionHandler).Methods(http.MethodPut)
	subsRouter.HandleFunc("/subscriptions/{id:[0-9]+}", subs.DeleteSubscriptionHandler).Methods(http.MethodDelete)
	subsRouter.HandleFunc("/subscriptions/{id:[0-9]+}/renew", subs.RenewSubscriptionHandler).Methods(http.MethodPost)

	travel := NewTravelController(svc.Travel, log)
	travelRouter := apiSubrouter(router, "/travel/api")
	travelRouter.HandleFunc("/trips", travel.GetTripsHandler).Methods(http.MethodGet)
	travelRouter.HandleFunc("/trips", travel.CreateTripHandler).Methods(http.MethodPost)
	travelRouter.HandleFunc("/trips/{id:[0-9]+}", travel.GetTripHandler).Methods(http.MethodGet)
	travelRouter.HandleFunc("/trips/{id:[0-9]+}", travel.UpdateTripHandler).Methods(http.MethodPut)
	travelRouter.HandleFunc("/trips/{id:[0-9]+}", travel.DeleteTripHandler).Methods(http.MethodDelete)
	travelRouter.HandleFunc("/trips/{id:[0-9]+}/itinerary", travel.CreateItineraryHandler).Methods(http.MethodPost)
	travelRouter.HandleFunc("/itinerary/{id:[0-9]+}", travel.UpdateItineraryHandler).Methods(http.MethodPut)
	travelRouter.HandleFunc("/itinerary/{id:[0-9]+}", travel.DeleteItineraryHandler).Methods(http.MethodDelete)
	travelRouter.HandleFunc("/trips/{id:[0-9]+}/packing-list", travel.CreateTripPackingListHandler).Methods(http.MethodPost)
	travelRouter.HandleFunc("/trips/{id:[0-9]+}/packing-list/from-template/{template_id:[0-9]+}", travel.CopyTemplateHandler).Methods(http.MethodPost)
	travelRouter.HandleFunc("/packing-lists", travel.GetPackingListsHandler).Methods(http.MethodGet)
	travelRouter.HandleFunc("/packing-lists", travel.CreateTemplateHandler).Methods(http.MethodPost)
	travelRouter.HandleFunc("/packing-lists/{id:[0-9]+}", travel.GetPackingListHandler).Methods(http.MethodGet)
	travelRouter.HandleFunc("/packing-lists/{id:[0-9]+}", travel.DeletePackingListHandler).Methods(http.MethodDelete)
	travelRouter.HandleFunc("/packing-lists/{id:[0-9]+}/items", travel.CreatePackingItemHandler).Methods(http.MethodPost)
	travelRouter.HandleFunc("/packing-items/{id:[0-9]+}", travel.UpdatePackingItemHandler).Methods(http.MethodPut)
	travelRouter.HandleFunc("/packing-items/{id:[0-9]+}", travel.DeletePackingItemHandler).Methods(http.MethodDelete)
	travelRouter.HandleFunc("/trips/{id:[0-9]+}/expenses", travel.CreateExpenseHandler).Methods(http.MethodPost)
	travelRouter.HandleFunc("/expenses/{id:[0-9]+}", travel.DeleteExpenseHandler).Methods(http.MethodDelete)

	return router
}

// setFallbackHandlers отдает JSON вместо текстовых ответов mux для неизвестных путей и методов.
func setFallbackHandlers(router *mux.Router) {
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}

// apiSubrouter создает подмаршрутизатор раздела со своими JSON-обработчиками 404/405:
// mux не передает их из корневого роутера в подмаршрутизаторы.
func apiSubrouter(router *mux.Router, prefix string) *mux.Router {
	sub := router.PathPrefix(prefix).Subrouter()
	setFallbackHandlers(sub)
	return sub
}
