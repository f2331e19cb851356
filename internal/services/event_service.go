package services

import (
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/talentgrid/talentgrid-be/internal/models"
)

// Notifier pushes an event to whoever is watching the employer's live feed.
type Notifier interface {
	Publish(employerID int64, message []byte)
}

// EventServiceProvider defines the interface for activity-log services.
type EventServiceProvider interface {
	CreateEvent(employerID int64, eventType, level, message string)
	GetRecentEvents(employerID int64, limit int) ([]models.Event, error)
}

// EventService records employer activity and fans it out to the live feed.
type EventService struct {
	db       *sql.DB
	notifier Notifier
}

// NewEventService creates a new EventService. notifier may be nil.
func NewEventService(db *sql.DB, notifier Notifier) *EventService {
	return &EventService{db: db, notifier: notifier}
}

// CreateEvent logs a new event. Failures are logged and swallowed: activity
// records never fail the operation that produced them.
func (s *EventService) CreateEvent(employerID int64, eventType, level, message string) {
	event := models.Event{
		ID:         uuid.New().String(),
		EmployerID: employerID,
		Type:       eventType,
		Level:      level,
		Message:    message,
	}

	_, err := s.db.Exec(
		"INSERT INTO events (id, employer_id, type, level, message) VALUES (?, ?, ?, ?, ?)",
		event.ID, event.EmployerID, event.Type, event.Level, event.Message)
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to record event")
		return
	}

	if s.notifier != nil {
		payload, err := json.Marshal(map[string]interface{}{"action": eventType, "payload": event})
		if err != nil {
			log.Error().Err(err).Msg("Failed to encode event for feed")
			return
		}
		s.notifier.Publish(employerID, payload)
	}
}

// GetRecentEvents retrieves the most recent events for one employer.
func (s *EventService) GetRecentEvents(employerID int64, limit int) ([]models.Event, error) {
	rows, err := s.db.Query(`
		SELECT id, employer_id, type, level, message, created_at
		FROM events WHERE employer_id = ? ORDER BY created_at DESC LIMIT ?`, employerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.EmployerID, &event.Type, &event.Level, &event.Message, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
