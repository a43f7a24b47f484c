package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"scheduler-backend/models"
	"scheduler-backend/monitoring"
	"scheduler-backend/recurrence"
)

// rangeFilter folds recurrence semantics into the store's filter
// language: an event overlaps [from,to) when it starts before to and
// either ends after from, its precomputed series end reaches from, or it
// recurs with no series end at all (unbounded series).
const rangeFilter = "start_date < {:to} && (end_date >= {:from} || series_end_date >= {:from} || (recurring != '' && series_end_date = ''))"

// ErrDateRequired is returned when a "next" series update arrives
// without the date that marks the edit point.
var ErrDateRequired = errors.New("date must be provided")

type EventService struct {
	store  Store
	cache  *EventCache
	notify *Notifier
}

func NewEventService(store Store, cache *EventCache, notify *Notifier) *EventService {
	return &EventService{
		store:  store,
		cache:  cache,
		notify: notify,
	}
}

// ListEvents returns all events overlapping [from,to), sorted ascending
// by start_date, recurrence folded in per rangeFilter. With an
// incomplete range it returns every event.
func (s *EventService) ListEvents(ctx context.Context, from, to string) ([]map[string]any, error) {
	monitoring.TrackOperation(CollectionEvents, "list")

	ranged := from != "" && to != ""
	if ranged {
		if cached, ok := s.cache.Get(ctx, from, to); ok {
			return cached, nil
		}
	}

	filter := ""
	params := dbx.Params{}
	if ranged {
		filter = rangeFilter
		params = dbx.Params{"from": from, "to": to}
	}

	records, err := s.store.FindRecordsByFilter(CollectionEvents, filter, "start_date", -1, 0, params)
	if err != nil {
		return nil, err
	}

	events := PublicRecords(records)
	if ranged {
		s.cache.Set(ctx, from, to, events)
	}

	return events, nil
}

// UpdateEvent applies an allow-listed partial update, then cascades to
// the event's series per recurring_update_mode:
//
//   - "all": every generated instance of the series is removed, only the
//     updated master remains.
//   - "next": the series tail starting at recurring_update_date is
//     removed; earlier instances stay untouched.
//
// Any other mode leaves the series alone. A missing record is a silent
// no-op, matching the store's zero-match update semantics.
func (s *EventService) UpdateEvent(ctx context.Context, id string, body map[string]any) error {
	mode, _ := body["recurring_update_mode"].(string)
	date, _ := body["recurring_update_date"].(string)
	if mode == "next" && date == "" {
		return ErrDateRequired
	}

	record, err := s.store.FindRecordById(CollectionEvents, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if record != nil {
		for f, v := range withSeriesEnd(models.FilterEventFields(body)) {
			record.Set(f, v)
		}
		if err := s.store.Save(record); err != nil {
			return err
		}
	}

	var cascadeErr error
	switch mode {
	case "all":
		cascadeErr = s.deleteSubEvents("origin_id = {:id}", dbx.Params{"id": id})
	case "next":
		// An update may arrive for a generated instance; the cascade
		// always truncates the master's series.
		master := id
		if record != nil {
			if origin := record.GetString("origin_id"); origin != "" && origin != "0" {
				master = origin
			}
		}
		cascadeErr = s.deleteSubEvents(
			"origin_id = {:id} && start_date >= {:date}",
			dbx.Params{"id": master, "date": date},
		)
	}
	if cascadeErr != nil {
		return cascadeErr
	}

	s.changed(ctx, "update", id)
	return nil
}

// DeleteEvent removes the event and every generated instance pointing at
// it. Deleting an already deleted event is a no-op.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	record, err := s.store.FindRecordById(CollectionEvents, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if record != nil {
		if err := s.store.Delete(record); err != nil {
			return err
		}
	}

	if err := s.deleteSubEvents("origin_id = {:id}", dbx.Params{"id": id}); err != nil {
		return err
	}

	s.changed(ctx, "delete", id)
	return nil
}

// InsertEvent stores the allow-listed attributes as a new event and
// returns the assigned identifier.
func (s *EventService) InsertEvent(ctx context.Context, body map[string]any) (string, error) {
	collection, err := s.store.FindCollectionByNameOrId(CollectionEvents)
	if err != nil {
		return "", err
	}

	record := core.NewRecord(collection)
	for f, v := range withSeriesEnd(models.FilterEventFields(body)) {
		record.Set(f, v)
	}
	if err := s.store.Save(record); err != nil {
		return "", err
	}

	s.changed(ctx, "insert", record.Id)
	return record.Id, nil
}

func (s *EventService) deleteSubEvents(filter string, params dbx.Params) error {
	if err := deleteAllByFilter(s.store, CollectionEvents, filter, params); err != nil {
		return err
	}
	monitoring.TrackCascade(CollectionEvents)
	return nil
}

func (s *EventService) changed(ctx context.Context, action, id string) {
	monitoring.TrackOperation(CollectionEvents, action)
	s.cache.Invalidate(ctx)
	s.notify.RecordsChanged(CollectionEvents, action, id)
}

// withSeriesEnd keeps series_end_date in step with the recurring rule:
// when a mutation sets the rule without precomputing the series end, it
// is derived from the rule's UNTIL part (empty for unbounded series).
func withSeriesEnd(fields map[string]any) map[string]any {
	rule, ok := fields["recurring"].(string)
	if !ok {
		return fields
	}
	if _, given := fields["series_end_date"]; !given {
		fields["series_end_date"] = recurrence.SeriesEndString(rule)
	}
	return fields
}
