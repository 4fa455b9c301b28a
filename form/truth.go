package form

import (
	"reflect"
	"strings"
)

// Truthy coerces a loosely typed checked value to a bool, the way
// markup attributes are read: the strings "true", "on" and "" (after
// trimming, case-insensitively) are true and every other string is
// false, booleans count as themselves, nil is false, and numbers are
// true when nonzero.
func Truthy(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "":
			return true
		}
		return false
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	}
	return false
}
