package surreal

import (
	"fmt"
	"strconv"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// recordNumber extracts the numeric part of a record id such as person:1001
func recordNumber(id interface{}) (int64, error) {
	switch v := id.(type) {
	case models.RecordID:
		return toInt64(v.ID)
	case *models.RecordID:
		if v != nil {
			return toInt64(v.ID)
		}
	case map[string]interface{}:
		// Handle {"tb": "table", "id": 1001} format
		return toInt64(v["id"])
	default:
		return toInt64(v)
	}
	return 0, fmt.Errorf("unexpected record id %v", id)
}

// toInt64 converts the numeric types the CBOR decoder may produce
func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case float32:
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	}
	return 0, fmt.Errorf("unexpected numeric value %v (%T)", v, v)
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getInt64 extracts an integer value from a map, zero when absent
func getInt64(m map[string]interface{}, key string) int64 {
	n, err := toInt64(m[key])
	if err != nil {
		return 0
	}
	return n
}
