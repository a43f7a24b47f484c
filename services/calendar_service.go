package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"scheduler-backend/monitoring"
)

type CalendarService struct {
	store  Store
	cache  *EventCache
	notify *Notifier
}

func NewCalendarService(store Store, cache *EventCache, notify *Notifier) *CalendarService {
	return &CalendarService{
		store:  store,
		cache:  cache,
		notify: notify,
	}
}

// ListCalendars returns all calendars sorted by their display order.
func (s *CalendarService) ListCalendars(ctx context.Context) ([]map[string]any, error) {
	monitoring.TrackOperation(CollectionCalendars, "list")

	records, err := s.store.FindRecordsByFilter(CollectionCalendars, "", "order", -1, 0, dbx.Params{})
	if err != nil {
		return nil, err
	}

	return PublicRecords(records), nil
}

// UpdateCalendar sets the body attributes verbatim on the calendar.
// Attributes without a matching schema field are skipped since the store
// would reject them; a missing record is a silent no-op.
func (s *CalendarService) UpdateCalendar(ctx context.Context, id string, body map[string]any) error {
	record, err := s.store.FindRecordById(CollectionCalendars, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}

	setKnownFields(record, body)
	if err := s.store.Save(record); err != nil {
		return err
	}

	s.changed(ctx, "update", id)
	return nil
}

// DeleteCalendar removes the calendar and every event belonging to it.
func (s *CalendarService) DeleteCalendar(ctx context.Context, id string) error {
	record, err := s.store.FindRecordById(CollectionCalendars, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if record != nil {
		if err := s.store.Delete(record); err != nil {
			return err
		}
	}

	if err := deleteAllByFilter(s.store, CollectionEvents, "calendar = {:id}", dbx.Params{"id": id}); err != nil {
		return err
	}
	monitoring.TrackCascade(CollectionCalendars)

	s.changed(ctx, "delete", id)
	return nil
}

// InsertCalendar stores a new calendar and returns the assigned
// identifier.
func (s *CalendarService) InsertCalendar(ctx context.Context, body map[string]any) (string, error) {
	collection, err := s.store.FindCollectionByNameOrId(CollectionCalendars)
	if err != nil {
		return "", err
	}

	record := core.NewRecord(collection)
	setKnownFields(record, body)
	if err := s.store.Save(record); err != nil {
		return "", err
	}

	s.changed(ctx, "insert", record.Id)
	return record.Id, nil
}

func (s *CalendarService) changed(ctx context.Context, action, id string) {
	monitoring.TrackOperation(CollectionCalendars, action)
	// Calendar changes affect event queries too (cascade deletes,
	// color/label lookups), so the events cache goes as well.
	s.cache.Invalidate(ctx)
	s.notify.RecordsChanged(CollectionCalendars, action, id)
}

func setKnownFields(record *core.Record, body map[string]any) {
	fields := record.Collection().Fields
	for f, v := range body {
		if f == "id" {
			continue
		}
		if fields.GetByName(f) != nil {
			record.Set(f, v)
		}
	}
}
