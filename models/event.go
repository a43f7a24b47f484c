package models

// Event is a single calendar entry. A recurring master has a non-empty
// Recurring rule; generated instances of a series point back to the
// master through OriginID. SeriesEndDate mirrors the UNTIL part of the
// rule ("" when the series is unbounded).
type Event struct {
	ID            string `json:"id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	AllDay        bool   `json:"all_day"`
	Text          string `json:"text"`
	Details       string `json:"details"`
	Color         string `json:"color"`
	Calendar      string `json:"calendar"`
	Recurring     string `json:"recurring"`
	OriginID      string `json:"origin_id"`
	SeriesEndDate string `json:"series_end_date"`
	Units         string `json:"units"`
	Section       string `json:"section"`
}

// EventFields is the full attribute set a client may set on an event.
// Anything else in a request body is dropped before it reaches the store.
var EventFields = []string{
	"start_date",
	"end_date",
	"all_day",
	"text",
	"details",
	"color",
	"recurring",
	"calendar",
	"origin_id",
	"series_end_date",
	"units",
	"section",
}

// FilterEventFields maps an arbitrary attribute map to the subset of
// allow-listed event attributes. The input is never modified.
func FilterEventFields(body map[string]any) map[string]any {
	return filterFields(body, EventFields)
}

func filterFields(body map[string]any, allowed []string) map[string]any {
	out := make(map[string]any, len(body))
	for _, f := range allowed {
		if v, ok := body[f]; ok {
			out[f] = v
		}
	}
	return out
}

// Attributes returns the event as a store attribute map. Seed data
// carries fixed identifiers so cross-record references stay stable; the
// seeding code peels the id off before setting fields.
func (e Event) Attributes() map[string]any {
	return map[string]any{
		"id":              e.ID,
		"start_date":      e.StartDate,
		"end_date":        e.EndDate,
		"all_day":         e.AllDay,
		"text":            e.Text,
		"details":         e.Details,
		"color":           e.Color,
		"calendar":        e.Calendar,
		"recurring":       e.Recurring,
		"origin_id":       e.OriginID,
		"series_end_date": e.SeriesEndDate,
		"units":           e.Units,
		"section":         e.Section,
	}
}
