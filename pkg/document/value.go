package document

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Kind int

const (
	Null Kind = iota
	Scalar
	Sequence
	Mapping
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	}
	return "null"
}

// Entry is a single key/value pair of a mapping.
type Entry struct {
	Key   string
	Value Value
}

// Value is a node of a parsed YAML document. The zero Value is Null.
// Accessors never fail: asking a value for something its kind does not
// have returns the zero result.
type Value struct {
	kind    Kind
	scalar  interface{}
	items   []Value
	entries []Entry
}

// Parse decodes a YAML document. An empty document yields a Null value.
func Parse(data []byte) (Value, error) {
	var v Value
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Value{}, err
	}
	return v, nil
}

// UnmarshalYAML decodes generic maps as yaml.MapSlice so that mapping
// entries keep their document order.
func (v *Value) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch raw.(type) {
	case map[interface{}]interface{}:
		var ms yaml.MapSlice
		if err := unmarshal(&ms); err != nil {
			return err
		}
		*v = fromInterface(ms)
	case []interface{}:
		var items []Value
		if err := unmarshal(&items); err != nil {
			return err
		}
		*v = Value{kind: Sequence, items: items}
	default:
		*v = fromInterface(raw)
	}
	return nil
}

func fromInterface(raw interface{}) Value {
	switch x := raw.(type) {
	case nil:
		return Value{}
	case yaml.MapSlice:
		entries := make([]Entry, 0, len(x))
		for _, item := range x {
			entries = append(entries, Entry{Key: keyString(item.Key), Value: fromInterface(item.Value)})
		}
		return Value{kind: Mapping, entries: entries}
	case map[interface{}]interface{}:
		// only reached for maps nested outside a MapSlice decode; order is lost.
		entries := make([]Entry, 0, len(x))
		for k, item := range x {
			entries = append(entries, Entry{Key: keyString(k), Value: fromInterface(item)})
		}
		return Value{kind: Mapping, entries: entries}
	case []interface{}:
		items := make([]Value, 0, len(x))
		for _, item := range x {
			items = append(items, fromInterface(item))
		}
		return Value{kind: Sequence, items: items}
	default:
		return Value{kind: Scalar, scalar: x}
	}
}

func keyString(k interface{}) string {
	switch x := k.(type) {
	case string:
		return x
	case nil:
		return "null"
	default:
		return fmt.Sprint(x)
	}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == Null }

func (v Value) IsMapping() bool { return v.kind == Mapping }

func (v Value) IsSequence() bool { return v.kind == Sequence }

// Has reports whether a mapping contains key.
func (v Value) Has(key string) bool {
	_, ok := v.Lookup(key)
	return ok
}

// Lookup returns the value stored under key in a mapping.
func (v Value) Lookup(key string) (Value, bool) {
	for _, e := range v.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Get returns the value stored under key, or Null.
func (v Value) Get(key string) Value {
	r, _ := v.Lookup(key)
	return r
}

// Keys returns the keys of a mapping in document order.
func (v Value) Keys() []string {
	if v.kind != Mapping {
		return nil
	}
	keys := make([]string, 0, len(v.entries))
	for _, e := range v.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

func (v Value) Entries() []Entry {
	return v.entries
}

// Len is the number of entries of a mapping or items of a sequence.
func (v Value) Len() int {
	switch v.kind {
	case Mapping:
		return len(v.entries)
	case Sequence:
		return len(v.items)
	}
	return 0
}

// String returns the text of a scalar; non-scalars yield "".
func (v Value) String() string {
	if v.kind != Scalar {
		return ""
	}
	switch x := v.scalar.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// StringOr returns the scalar text, or def when v is not a scalar.
func (v Value) StringOr(def string) string {
	if v.kind != Scalar {
		return def
	}
	return v.String()
}

// Strings normalises a scalar or a sequence of scalars into a list.
// Non-scalar sequence items are skipped.
func (v Value) Strings() []string {
	switch v.kind {
	case Scalar:
		return []string{v.String()}
	case Sequence:
		result := make([]string, 0, len(v.items))
		for _, item := range v.items {
			if item.kind == Scalar {
				result = append(result, item.String())
			}
		}
		return result
	}
	return nil
}

// MarshalJSON encodes mappings as JSON objects preserving entry order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Null:
		return []byte("null"), nil
	case Scalar:
		if f, ok := v.scalar.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			return json.Marshal(v.String())
		}
		return json.Marshal(v.scalar)
	case Sequence:
		items := v.items
		if items == nil {
			items = []Value{}
		}
		return json.Marshal(items)
	}

	buf := []byte{'{'}
	for i, e := range v.entries {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		val, err := e.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}
