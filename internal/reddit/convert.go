package reddit

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rickgao/redditor/internal/model"
)

// ErrMissingField is wrapped by a FieldError for an absent field.
var ErrMissingField = errors.New("missing field")

// FieldError reports a listing field that is absent or cannot be parsed.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("field %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("field %s: value %s: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ToItem decodes the raw post fields into a model.Item.
func (p PostData) ToItem() (model.Item, error) {
	title, err := DecodeString("title", p.Title)
	if err != nil {
		return model.Item{}, err
	}

	permalink, err := DecodeString("permalink", p.Permalink)
	if err != nil {
		return model.Item{}, err
	}

	created, err := ParseCreatedUTC(p.CreatedUTC)
	if err != nil {
		return model.Item{}, err
	}

	return model.Item{
		ID:        p.Name,
		Title:     title,
		Permalink: permalink,
		CreatedAt: created,
	}, nil
}

// DecodeString unwraps a JSON string token. Only the enclosing quotes are
// removed; escaped quotes inside the value are kept as literal quotes.
func DecodeString(field string, raw json.RawMessage) (string, error) {
	if isAbsent(raw) {
		return "", &FieldError{Field: field, Err: ErrMissingField}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", &FieldError{Field: field, Value: string(raw), Err: errors.New("not a string")}
	}
	return s, nil
}

// ParseCreatedUTC parses an epoch-seconds timestamp. Reddit encodes it as a
// float with a ".0" suffix; that suffix is stripped and the rest must be an
// integer. A JSON string holding the same text is also accepted.
func ParseCreatedUTC(raw json.RawMessage) (time.Time, error) {
	if isAbsent(raw) {
		return time.Time{}, &FieldError{Field: "created_utc", Err: ErrMissingField}
	}

	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(raw, &text); err != nil {
			return time.Time{}, &FieldError{Field: "created_utc", Value: string(raw), Err: err}
		}
	}

	secs, err := strconv.ParseInt(strings.TrimSuffix(text, ".0"), 10, 64)
	if err != nil {
		return time.Time{}, &FieldError{Field: "created_utc", Value: text, Err: errors.New("not an epoch timestamp")}
	}

	return time.Unix(secs, 0), nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// ToSnapshot decodes every child of a listing, in order. The first bad entry
// fails the whole snapshot.
func (r *ListingResponse) ToSnapshot() (model.Snapshot, error) {
	if r.Data == nil {
		return nil, &FieldError{Field: "data", Err: ErrMissingField}
	}
	if r.Data.Children == nil {
		return nil, &FieldError{Field: "data.children", Err: ErrMissingField}
	}

	children := *r.Data.Children
	snapshot := make(model.Snapshot, 0, len(children))
	for i, child := range children {
		item, err := child.Data.ToItem()
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		snapshot = append(snapshot, item)
	}

	return snapshot, nil
}
