package score

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// legacyTimestampLayout is the local-time format of older score files.
const legacyTimestampLayout = "2006-01-02 15:04:05"

// Field aliases accepted on read, in lookup order.
var (
	correctKeys  = []string{"correct", "tačnih", "tacnih", "correct_count"}
	wrongKeys    = []string{"wrong", "pogrešnih", "pogresnih", "wrong_count"}
	timedOutKeys = []string{"timed_out", "unanswered", "neodgovorenih", "unanswered_count"}
	totalKeys    = []string{"total", "ukupno", "total_questions"}
	durationKeys = []string{"duration_s", "trajanje_s"}
	stampKeys    = []string{"timestamp", "vrijeme"}
)

// decodeRecord parses one stored entry, filling fields older writers did
// not know about. The stored bytes are never modified.
func decodeRecord(data []byte, category string) (Record, error) {
	var fields map[string]any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&fields); err != nil {
		return Record{}, err
	}
	return normalizeFields(fields, category)
}

func normalizeFields(fields map[string]any, category string) (Record, error) {
	record := Record{
		SessionID: stringField(fields, "session_id"),
		Category:  stringField(fields, "category"),
		Mode:      stringField(fields, "mode"),
		Status:    stringField(fields, "status"),
	}
	if record.Category == "" {
		record.Category = category
	}
	if record.Mode == "" {
		record.Mode = "quiz"
	}
	if record.Status == "" {
		record.Status = StatusComplete
	}

	var err error
	if record.Correct, err = intField(fields, correctKeys); err != nil {
		return Record{}, err
	}
	if record.Wrong, err = intField(fields, wrongKeys); err != nil {
		return Record{}, err
	}
	if record.TimedOut, err = intField(fields, timedOutKeys); err != nil {
		return Record{}, err
	}
	if _, ok := lookup(fields, totalKeys); ok {
		if record.Total, err = intField(fields, totalKeys); err != nil {
			return Record{}, err
		}
	} else {
		record.Total = record.Correct + record.Wrong + record.TimedOut
	}
	if record.Planned, err = intField(fields, []string{"planned"}); err != nil {
		return Record{}, err
	}
	if record.Planned == 0 {
		record.Planned = record.Total
	}
	if record.DurationSeconds, err = floatField(fields, durationKeys); err != nil {
		return Record{}, err
	}
	if raw, ok := lookup(fields, stampKeys); ok {
		record.Timestamp = parseTimestamp(fmt.Sprint(raw))
	}
	return record, nil
}

func lookup(fields map[string]any, keys []string) (any, bool) {
	for _, key := range keys {
		if value, ok := fields[key]; ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

func stringField(fields map[string]any, key string) string {
	if value, ok := fields[key].(string); ok {
		return value
	}
	return ""
}

func floatField(fields map[string]any, keys []string) (float64, error) {
	value, ok := lookup(fields, keys)
	if !ok {
		return 0, nil
	}
	switch typed := value.(type) {
	case json.Number:
		return typed.Float64()
	case float64:
		return typed, nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, fmt.Errorf("field %s: %w", keys[0], err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("field %s: unexpected %T", keys[0], value)
	}
}

func intField(fields map[string]any, keys []string) (int, error) {
	value, err := floatField(fields, keys)
	if err != nil {
		return 0, err
	}
	return int(math.Round(value)), nil
}

func parseTimestamp(value string) time.Time {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed
	}
	if parsed, err := time.ParseInLocation(legacyTimestampLayout, value, time.Local); err == nil {
		return parsed
	}
	return time.Time{}
}
