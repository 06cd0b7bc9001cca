package graph

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
)

// getStringFromRecord safely extracts a string value from a record
func getStringFromRecord(record *db.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

// getTimeFromRecord safely extracts a timestamp from a record. The
// driver returns datetime properties as time.Time; stored RFC3339
// strings are parsed as a fallback.
func getTimeFromRecord(record *db.Record, key string) time.Time {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return time.Time{}
	}
	switch v := val.(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
