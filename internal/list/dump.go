package list

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jmagar/giphy-launchbar/internal/model"
)

// Kind is the type of a decoded JSON value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
)

// Field is one member of a map value.
type Field struct {
	Key   string
	Value Value
}

// Value is a decoded JSON document that keeps object keys in document order.
type Value struct {
	Kind   Kind
	Bool   bool
	Text   string // number literal or string contents
	Items  []Value
	Fields []Field
}

var errTrailingData = errors.New("unexpected data after JSON value")

// ParseValue decodes a single JSON document.
func ParseValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, errTrailingData
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Value{Kind: KindNull}, nil
	case bool:
		return Value{Kind: KindBool, Bool: t}, nil
	case json.Number:
		return Value{Kind: KindNumber, Text: t.String()}, nil
	case string:
		return Value{Kind: KindString, Text: t}, nil
	case json.Delim:
		switch t {
		case '[':
			v := Value{Kind: KindList, Items: []Value{}}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				v.Items = append(v.Items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return v, nil
		case '{':
			v := Value{Kind: KindMap, Fields: []Field{}}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := kt.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key %v", kt)
				}
				child, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				v.set(key, child)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return v, nil
		}
	}
	return Value{}, fmt.Errorf("unexpected JSON token %v", tok)
}

// set keeps the first position of a repeated key and the last value.
func (v *Value) set(key string, child Value) {
	for i := range v.Fields {
		if v.Fields[i].Key == key {
			v.Fields[i].Value = child
			return
		}
	}
	v.Fields = append(v.Fields, Field{Key: key, Value: child})
}

// Truthy reports whether a scalar is non-empty: not null, false, zero or "".
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		f, err := strconv.ParseFloat(v.Text, 64)
		return err != nil || f != 0
	case KindString:
		return v.Text != ""
	case KindList, KindMap:
		return true
	}
	return false
}

// String returns the display text of a scalar.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNumber, KindString:
		return v.Text
	case KindNull:
		return "null"
	}
	return ""
}

func (v Value) entries() []Field {
	switch v.Kind {
	case KindMap:
		return v.Fields
	case KindList:
		fields := make([]Field, len(v.Items))
		for i, item := range v.Items {
			fields[i] = Field{Key: strconv.Itoa(i), Value: item}
		}
		return fields
	}
	return nil
}

// expand replaces a string holding a JSON document with the decoded value.
func expand(v Value) Value {
	if v.Kind != KindString {
		return v
	}
	parsed, err := ParseValue([]byte(v.Text))
	if err != nil {
		return v
	}
	return parsed
}

// Dump renders a raw JSON document as a tree of rows, one per key.
// Malformed input yields no rows.
func Dump(raw []byte) []model.ListItem {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []model.ListItem{}
	}
	v, err := ParseValue(raw)
	if err != nil {
		return []model.ListItem{}
	}
	return DumpValue(v)
}

// DumpValue renders the members of a map or list.
func DumpValue(v Value) []model.ListItem {
	entries := v.entries()
	items := make([]model.ListItem, 0, len(entries))
	for _, e := range entries {
		item := model.ListItem{Title: e.Key, Icon: model.IconDump}
		child := expand(e.Value)
		switch {
		case child.Kind == KindList:
			item.Badge = fmt.Sprintf("%d item", len(child.Items))
			item.Children = DumpValue(child)
		case child.Kind == KindMap:
			item.Badge = "Object"
			item.Children = DumpValue(child)
		case child.Truthy():
			item.Label = child.String()
			item.Children = []model.ListItem{{Title: item.Label}}
		default:
			item.Badge = "null"
		}
		items = append(items, item)
	}
	return items
}
