package cmd

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pocketbase/pocketbase/core"

	"scheduler-backend/models"
	"scheduler-backend/services"
)

// seeded is anything that can turn itself into a store attribute map.
type seeded interface {
	Attributes() map[string]any
}

// seedAll populates each empty collection from data/<collection>.json.
// Already populated collections are left alone, so seeding only runs on
// a fresh data directory.
func seedAll(app core.App, dir string) error {
	if err := seedCollection(app, services.CollectionEvents, dir, decodeRows[models.Event]); err != nil {
		return err
	}
	if err := seedCollection(app, services.CollectionCalendars, dir, decodeRows[models.Calendar]); err != nil {
		return err
	}
	if err := seedCollection(app, services.CollectionUnits, dir, decodeRows[models.Unit]); err != nil {
		return err
	}
	return seedCollection(app, services.CollectionSections, dir, decodeRows[models.Section])
}

func seedCollection(app core.App, name, dir string, decode func([]byte) ([]map[string]any, error)) error {
	total, err := app.CountRecords(name)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(dir, name+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("seed: no data file, skipping", "collection", name)
		return nil
	}
	if err != nil {
		return err
	}

	rows, err := decode(data)
	if err != nil {
		return err
	}

	collection, err := app.FindCollectionByNameOrId(name)
	if err != nil {
		return err
	}

	for _, attrs := range rows {
		record := core.NewRecord(collection)
		for f, v := range attrs {
			if f == "id" {
				if id, _ := v.(string); id != "" {
					record.Id = id
				}
				continue
			}
			record.Set(f, v)
		}
		if err := app.Save(record); err != nil {
			return err
		}
	}

	slog.Info("seed: collection populated", "collection", name, "records", len(rows))
	return nil
}

func decodeRows[T seeded](data []byte) ([]map[string]any, error) {
	var rows []T
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}

	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		out[i] = row.Attributes()
	}
	return out, nil
}
