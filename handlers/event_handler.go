package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"scheduler-backend/services"
)

type EventHandler struct {
	events *services.EventService
}

func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// ListEvents - events overlapping the optional [from,to) range
func (h *EventHandler) ListEvents(e *core.RequestEvent) error {
	query := e.Request.URL.Query()

	events, err := h.events.ListEvents(e.Request.Context(), query.Get("from"), query.Get("to"))
	if err != nil {
		return apis.NewBadRequestError("Failed to list events", err)
	}

	return e.JSON(http.StatusOK, events)
}

// UpdateEvent - partial update plus optional series cascade
func (h *EventHandler) UpdateEvent(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	var body map[string]any
	if err := e.BindBody(&body); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.events.UpdateEvent(e.Request.Context(), id, body); err != nil {
		if errors.Is(err, services.ErrDateRequired) {
			return apis.NewBadRequestError(err.Error(), nil)
		}
		return apis.NewBadRequestError("Failed to update event", err)
	}

	return e.JSON(http.StatusOK, map[string]any{})
}

func (h *EventHandler) DeleteEvent(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	if err := h.events.DeleteEvent(e.Request.Context(), id); err != nil {
		return apis.NewBadRequestError("Failed to delete event", err)
	}

	return e.JSON(http.StatusOK, map[string]any{})
}

func (h *EventHandler) CreateEvent(e *core.RequestEvent) error {
	var body map[string]any
	if err := e.BindBody(&body); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	id, err := h.events.InsertEvent(e.Request.Context(), body)
	if err != nil {
		return apis.NewBadRequestError("Failed to create event", err)
	}

	return e.JSON(http.StatusOK, map[string]any{"id": id})
}
