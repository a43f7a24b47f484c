package services

import "github.com/pocketbase/pocketbase/core"

// PublicRecord converts a store record into the attribute map the UI
// expects: all field values plus the store-assigned identifier under the
// public "id" key. Applying it twice is harmless.
func PublicRecord(record *core.Record) map[string]any {
	data := record.FieldsData()
	data["id"] = record.Id
	return data
}

func PublicRecords(records []*core.Record) []map[string]any {
	out := make([]map[string]any, len(records))
	for i, record := range records {
		out[i] = PublicRecord(record)
	}
	return out
}
