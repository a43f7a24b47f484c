package services

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

// fakeStore is an in-memory Store covering the filter language subset
// the services issue: =, !=, <, >= comparisons combined with && and ||
// plus parentheses, with {:param} bindings and '' literals.
type fakeStore struct {
	collections map[string]*core.Collection
	records     map[string][]*core.Record
	nextID      int
	failWith    error
}

func newFakeStore(collections ...*core.Collection) *fakeStore {
	s := &fakeStore{
		collections: map[string]*core.Collection{},
		records:     map[string][]*core.Record{},
	}
	for _, c := range collections {
		s.collections[c.Name] = c
	}
	return s
}

// add seeds a record directly, bypassing the service layer.
func (s *fakeStore) add(collection string, attrs map[string]any) *core.Record {
	record := core.NewRecord(s.collections[collection])
	s.nextID++
	record.Id = fmt.Sprintf("rec%012d", s.nextID)
	for f, v := range attrs {
		record.Set(f, v)
	}
	s.records[collection] = append(s.records[collection], record)
	return record
}

func (s *fakeStore) count(collection string) int {
	return len(s.records[collection])
}

func (s *fakeStore) FindRecordsByFilter(col any, filter string, sortField string, limit int, offset int, params ...dbx.Params) ([]*core.Record, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}

	p := dbx.Params{}
	if len(params) > 0 {
		p = params[0]
	}

	var out []*core.Record
	for _, record := range s.records[col.(string)] {
		ok, err := evalExpr(filter, record, p)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, record)
		}
	}

	if sortField != "" {
		field := strings.TrimPrefix(sortField, "+")
		sort.SliceStable(out, func(i, j int) bool {
			if field == "order" {
				return out[i].GetFloat(field) < out[j].GetFloat(field)
			}
			return out[i].GetString(field) < out[j].GetString(field)
		})
	}

	if offset > 0 && offset < len(out) {
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}

	return out, nil
}

func (s *fakeStore) FindRecordById(col any, recordID string, _ ...func(q *dbx.SelectQuery) error) (*core.Record, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}

	for _, record := range s.records[col.(string)] {
		if record.Id == recordID {
			return record, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeStore) FindCollectionByNameOrId(nameOrID string) (*core.Collection, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}

	collection, ok := s.collections[nameOrID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return collection, nil
}

func (s *fakeStore) Save(model core.Model) error {
	if s.failWith != nil {
		return s.failWith
	}

	record := model.(*core.Record)
	name := record.Collection().Name
	if record.Id == "" {
		s.nextID++
		record.Id = fmt.Sprintf("rec%012d", s.nextID)
	}
	for _, existing := range s.records[name] {
		if existing.Id == record.Id {
			return nil
		}
	}
	s.records[name] = append(s.records[name], record)
	return nil
}

func (s *fakeStore) Delete(model core.Model) error {
	if s.failWith != nil {
		return s.failWith
	}

	record := model.(*core.Record)
	name := record.Collection().Name
	kept := s.records[name][:0]
	for _, existing := range s.records[name] {
		if existing.Id != record.Id {
			kept = append(kept, existing)
		}
	}
	s.records[name] = kept
	return nil
}

func evalExpr(expr string, record *core.Record, params dbx.Params) (bool, error) {
	expr = trimParens(strings.TrimSpace(expr))
	if expr == "" {
		return true, nil
	}

	if parts := splitTopLevel(expr, "||"); len(parts) > 1 {
		for _, part := range parts {
			ok, err := evalExpr(part, record, params)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}

	if parts := splitTopLevel(expr, "&&"); len(parts) > 1 {
		for _, part := range parts {
			ok, err := evalExpr(part, record, params)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}

	return evalComparison(expr, record, params)
}

// trimParens strips a pair of parentheses wrapping the whole expression.
func trimParens(s string) string {
	for strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		depth := 0
		wraps := true
		for i := 0; i < len(s); i++ {
			switch s[i] {
			case '(':
				depth++
			case ')':
				depth--
			}
			if depth == 0 && i < len(s)-1 {
				wraps = false
			}
		}
		if !wraps {
			return s
		}
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

func splitTopLevel(s, sep string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 && strings.HasPrefix(s[i:], sep) {
			parts = append(parts, s[start:i])
			i += len(sep) - 1
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func evalComparison(expr string, record *core.Record, params dbx.Params) (bool, error) {
	for _, op := range []string{"!=", ">=", "<", "="} {
		idx := strings.Index(expr, op)
		if idx < 0 {
			continue
		}

		field := strings.TrimSpace(expr[:idx])
		value, err := resolveValue(strings.TrimSpace(expr[idx+len(op):]), params)
		if err != nil {
			return false, err
		}

		got := record.GetString(field)
		switch op {
		case "=":
			return got == value, nil
		case "!=":
			return got != value, nil
		case "<":
			return got < value, nil
		case ">=":
			return got >= value, nil
		}
	}
	return false, fmt.Errorf("fake store: unsupported expression %q", expr)
}

func resolveValue(raw string, params dbx.Params) (string, error) {
	switch {
	case strings.HasPrefix(raw, "{:") && strings.HasSuffix(raw, "}"):
		name := raw[2 : len(raw)-1]
		v, ok := params[name]
		if !ok {
			return "", fmt.Errorf("fake store: missing filter param %q", name)
		}
		return fmt.Sprint(v), nil
	case strings.HasPrefix(raw, "'") && strings.HasSuffix(raw, "'"):
		return strings.Trim(raw, "'"), nil
	}
	return "", fmt.Errorf("fake store: unsupported value %q", raw)
}
