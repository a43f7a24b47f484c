package services

import (
	"context"

	"github.com/pocketbase/dbx"

	"scheduler-backend/monitoring"
)

// LookupService serves the read-only reference collections of the
// evolved scheduler views. No mutation endpoints exist for these.
type LookupService struct {
	store Store
}

func NewLookupService(store Store) *LookupService {
	return &LookupService{store: store}
}

func (s *LookupService) ListUnits(ctx context.Context) ([]map[string]any, error) {
	monitoring.TrackOperation(CollectionUnits, "list")

	records, err := s.store.FindRecordsByFilter(CollectionUnits, "", "order", -1, 0, dbx.Params{})
	if err != nil {
		return nil, err
	}

	return PublicRecords(records), nil
}

func (s *LookupService) ListSections(ctx context.Context) ([]map[string]any, error) {
	monitoring.TrackOperation(CollectionSections, "list")

	records, err := s.store.FindRecordsByFilter(CollectionSections, "", "", -1, 0, dbx.Params{})
	if err != nil {
		return nil, err
	}

	return PublicRecords(records), nil
}
