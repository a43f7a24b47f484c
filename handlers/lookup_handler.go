package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"scheduler-backend/services"
)

// LookupHandler serves the read-only units and sections tables.
type LookupHandler struct {
	lookups *services.LookupService
}

func NewLookupHandler(lookups *services.LookupService) *LookupHandler {
	return &LookupHandler{lookups: lookups}
}

func (h *LookupHandler) ListUnits(e *core.RequestEvent) error {
	units, err := h.lookups.ListUnits(e.Request.Context())
	if err != nil {
		return apis.NewBadRequestError("Failed to list units", err)
	}

	return e.JSON(http.StatusOK, units)
}

func (h *LookupHandler) ListSections(e *core.RequestEvent) error {
	sections, err := h.lookups.ListSections(e.Request.Context())
	if err != nil {
		return apis.NewBadRequestError("Failed to list sections", err)
	}

	return e.JSON(http.StatusOK, sections)
}
