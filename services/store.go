package services

import (
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

// Collection names of the four record stores.
const (
	CollectionEvents    = "events"
	CollectionCalendars = "calendars"
	CollectionUnits     = "units"
	CollectionSections  = "sections"
)

// Store is the slice of the record store the services depend on.
// core.App satisfies it directly; tests substitute an in-memory fake.
type Store interface {
	FindRecordsByFilter(collectionModelOrIdentifier any, filter string, sort string, limit int, offset int, params ...dbx.Params) ([]*core.Record, error)
	FindRecordById(collectionModelOrIdentifier any, recordId string, optFilters ...func(q *dbx.SelectQuery) error) (*core.Record, error)
	FindCollectionByNameOrId(nameOrId string) (*core.Collection, error)
	Save(model core.Model) error
	Delete(model core.Model) error
}

// deleteAllByFilter removes every record matching the filter, one store
// call per record. Aborts on the first failing delete; already deleted
// records stay deleted (no rollback across cascade steps).
func deleteAllByFilter(store Store, collection, filter string, params dbx.Params) error {
	records, err := store.FindRecordsByFilter(collection, filter, "", -1, 0, params)
	if err != nil {
		return err
	}

	for _, record := range records {
		if err := store.Delete(record); err != nil {
			return err
		}
	}

	return nil
}
