package audit

import (
	"encoding/json"
	"sort"

	"github.com/google/go-cmp/cmp"

	"roombook/internal/pkg/errs"
)

// Fields that change incidentally on every write and must not trigger
// a false-positive diff.
var excludedFields = map[string]struct{}{
	"updatedAt": {},
	"createdAt": {},
	"userId":    {},
}

// FieldChange holds the typed before/after values of one field.
type FieldChange struct {
	OldValue any `json:"oldValue"`
	NewValue any `json:"newValue"`
}

// Diff compares two full appointment snapshots field by field and
// returns the sorted list of changed field names together with the
// old/new value pairs. Comparison goes through the canonical JSON
// representation, so nested room-booking arrays are compared by value,
// and a field present in only one snapshot counts as changed.
// Diff(x, x) is always empty.
func Diff(before, after any) ([]string, map[string]FieldChange, error) {
	oldFields, err := toFieldMap(before)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to canonicalize before snapshot")
	}
	newFields, err := toFieldMap(after)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to canonicalize after snapshot")
	}

	names := make(map[string]struct{}, len(oldFields)+len(newFields))
	for name := range oldFields {
		names[name] = struct{}{}
	}
	for name := range newFields {
		names[name] = struct{}{}
	}

	changed := make([]string, 0, len(names))
	details := make(map[string]FieldChange)
	for name := range names {
		if _, skip := excludedFields[name]; skip {
			continue
		}
		oldValue, inOld := oldFields[name]
		newValue, inNew := newFields[name]
		if inOld && inNew && cmp.Equal(oldValue, newValue) {
			continue
		}
		changed = append(changed, name)
		details[name] = FieldChange{OldValue: oldValue, NewValue: newValue}
	}
	sort.Strings(changed)

	return changed, details, nil
}

// toFieldMap canonicalizes a snapshot via a JSON round trip. A nil
// snapshot yields an empty map, so create/delete diffs fall out of the
// same union logic.
func toFieldMap(snapshot any) (map[string]any, error) {
	if snapshot == nil {
		return map[string]any{}, nil
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}
