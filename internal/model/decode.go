package model

import (
	"math"
	"strconv"
)

// Stored documents carry no schema, so every record is decoded through the
// helpers below. A field that is missing, null or of the wrong type falls
// back to its default:
//
//	kind            default
//	number          0
//	string          ""
//	string list     empty list
//	status          processing
//	tableNumber     absent ("")
//
// Numbers written by older clients as floats or numeric strings are rounded
// to the nearest integer.

func stringField(data map[string]any, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

func intField(data map[string]any, key string) int64 {
	switch v := data[key].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return int64(math.Round(v))
	case int:
		return int64(v)
	case int64:
		return v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return int64(math.Round(f))
		}
	}
	return 0
}

func stringsField(data map[string]any, key string) []string {
	out := []string{}
	switch v := data[key].(type) {
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, v...)
	}
	return out
}
