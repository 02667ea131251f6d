package models

import (
	"strconv"
	"time"
)

// Helpers for reading loosely-typed Firestore document maps. The catalog
// collections grew without a versioned schema, so the same concept can
// appear under several field names and numeric fields arrive as int64,
// float64 or string depending on which client wrote the document. Every
// reader goes through these so the fallbacks live in exactly one place.

// docString returns the first non-empty string found under keys.
func docString(data map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := data[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// docFloat returns the first non-zero numeric value found under keys.
// A present-but-zero price means "unset" in the source data, never free.
func docFloat(data map[string]interface{}, keys ...string) float64 {
	for _, k := range keys {
		v, ok := data[k]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			if n != 0 {
				return n
			}
		case int64:
			if n != 0 {
				return float64(n)
			}
		case int:
			if n != 0 {
				return float64(n)
			}
		case string:
			if f, err := strconv.ParseFloat(n, 64); err == nil && f != 0 {
				return f
			}
		}
	}
	return 0
}

// docBool returns the first boolean found under keys, defaulting to def.
func docBool(data map[string]interface{}, def bool, keys ...string) bool {
	for _, k := range keys {
		if v, ok := data[k]; ok {
			if b, ok := v.(bool); ok {
				return b
			}
		}
	}
	return def
}

// docStrings returns the first string slice found under keys. Elements of
// mixed-type arrays that are not strings are skipped.
func docStrings(data map[string]interface{}, keys ...string) []string {
	for _, k := range keys {
		v, ok := data[k]
		if !ok {
			continue
		}
		raw, ok := v.([]interface{})
		if !ok {
			continue
		}
		var out []string
		for _, e := range raw {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// docStringMap flattens a map field to map[string]string, stringifying
// numeric values on the way.
func docStringMap(data map[string]interface{}, keys ...string) map[string]string {
	for _, k := range keys {
		v, ok := data[k]
		if !ok {
			continue
		}
		raw, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		out := make(map[string]string, len(raw))
		for key, val := range raw {
			switch s := val.(type) {
			case string:
				out[key] = s
			case float64:
				out[key] = strconv.FormatFloat(s, 'f', -1, 64)
			case int64:
				out[key] = strconv.FormatInt(s, 10)
			case bool:
				out[key] = strconv.FormatBool(s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// docTime returns the first time.Time found under keys.
func docTime(data map[string]interface{}, keys ...string) time.Time {
	for _, k := range keys {
		if v, ok := data[k]; ok {
			if t, ok := v.(time.Time); ok {
				return t
			}
		}
	}
	return time.Time{}
}
