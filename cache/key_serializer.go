package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// KeySeparator defines the delimiter used between cache key segments.
// ExtractPattern depends on it: the first separator closes the pattern.
const KeySeparator = ":"

// KeySerializer builds a cache key from a resource name and arbitrary parts.
// Keys follow the "{resource}:{id}:{subresource}" convention.
type KeySerializer interface {
	SerializeKey(resource string, parts ...any) string
}

// defaultKeySerializer renders parts with reflection so callers can pass
// ids of any basic type, pointers or slices.
type defaultKeySerializer struct{}

var defaultSerializer = NewDefaultKeySerializer()

// NewDefaultKeySerializer creates a new instance of the default key serializer.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{}
}

// Key builds a key with the default serializer, e.g.
// Key("checklists", id, "items") -> "checklists:<id>:items".
func Key(resource string, parts ...any) string {
	return defaultSerializer.SerializeKey(resource, parts...)
}

// SerializeKey joins the resource and the serialized parts with KeySeparator.
func (s *defaultKeySerializer) SerializeKey(resource string, parts ...any) string {
	if len(parts) == 0 {
		return resource
	}

	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, resource)
	for _, part := range parts {
		segments = append(segments, s.serializeValue(part))
	}

	return strings.Join(segments, KeySeparator)
}

func (s *defaultKeySerializer) serializeValue(v any) string {
	if v == nil {
		return "nil"
	}

	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return "nil"
		}
		return s.serializeValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return "nil"
		}
		items := make([]string, rv.Len())
		for i := range items {
			items[i] = s.serializeValue(rv.Index(i).Interface())
		}
		return strings.Join(items, ",")
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%v", v)
	}

	return s.jsonFallback(v)
}

func (s *defaultKeySerializer) jsonFallback(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%T", v)
	}
	return string(data)
}

// ExtractPattern returns the bucket a key is registered under: the key up
// to and including its first separator. A key with no separator, or one that
// starts with it, is its own pattern.
//
//	ExtractPattern("checklists:abc123:items") // "checklists:"
//	ExtractPattern("checklists")              // "checklists"
func ExtractPattern(key string) string {
	idx := strings.Index(key, KeySeparator)
	if idx > 0 {
		return key[:idx+len(KeySeparator)]
	}
	return key
}
