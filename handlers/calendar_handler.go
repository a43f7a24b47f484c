package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"scheduler-backend/services"
)

type CalendarHandler struct {
	calendars *services.CalendarService
}

func NewCalendarHandler(calendars *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendars: calendars}
}

func (h *CalendarHandler) ListCalendars(e *core.RequestEvent) error {
	calendars, err := h.calendars.ListCalendars(e.Request.Context())
	if err != nil {
		return apis.NewBadRequestError("Failed to list calendars", err)
	}

	return e.JSON(http.StatusOK, calendars)
}

func (h *CalendarHandler) UpdateCalendar(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	var body map[string]any
	if err := e.BindBody(&body); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.calendars.UpdateCalendar(e.Request.Context(), id, body); err != nil {
		return apis.NewBadRequestError("Failed to update calendar", err)
	}

	return e.JSON(http.StatusOK, map[string]any{})
}

// DeleteCalendar - removes the calendar and every event belonging to it
func (h *CalendarHandler) DeleteCalendar(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	if err := h.calendars.DeleteCalendar(e.Request.Context(), id); err != nil {
		return apis.NewBadRequestError("Failed to delete calendar", err)
	}

	return e.JSON(http.StatusOK, map[string]any{})
}

func (h *CalendarHandler) CreateCalendar(e *core.RequestEvent) error {
	var body map[string]any
	if err := e.BindBody(&body); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	id, err := h.calendars.InsertCalendar(e.Request.Context(), body)
	if err != nil {
		return apis.NewBadRequestError("Failed to create calendar", err)
	}

	return e.JSON(http.StatusOK, map[string]any{"id": id})
}
