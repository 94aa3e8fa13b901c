package models

// Overview - сводка для главной страницы.
type Overview struct {
	UpcomingEvents []Event `json:"upcoming_events"`
	PendingTodos   []Todo  `json:"pending_todos"`
	RecentNotes    []Note  `json:"recent_notes"`
}
