package models

import (
	"bytes"
	"encoding/json"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// Extra holds the keys of a stored object that no struct field covers.
// They are written back unchanged on the next save.
type Extra map[string]json.RawMessage

var knownKeys sync.Map // reflect.Type -> []string

// jsonKeys lists the keys encoding/json uses for the fields of t.
func jsonKeys(t reflect.Type) []string {
	if keys, ok := knownKeys.Load(t); ok {
		return keys.([]string)
	}

	keys := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}

		keys = append(keys, name)
	}

	knownKeys.Store(t, keys)

	return keys
}

// encoding/json matches object keys to fields case-insensitively.
func isKnown(keys []string, key string) bool {
	return slices.ContainsFunc(keys, func(k string) bool { return strings.EqualFold(k, key) })
}

// decodeWithExtra fills the struct v points to and collects the remaining keys into extra.
func decodeWithExtra(data []byte, v any, extra *Extra) error {
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}

	keys := jsonKeys(reflect.TypeOf(v).Elem())
	for k := range all {
		if isKnown(keys, k) {
			delete(all, k)
		}
	}

	if len(all) == 0 {
		*extra = nil
		return nil
	}

	*extra = all

	return nil
}

// encodeWithExtra encodes v and appends the extra keys after its own fields, sorted.
func encodeWithExtra(v any, extra Extra) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	if len(extra) == 0 {
		return data, nil
	}

	keys := jsonKeys(reflect.TypeOf(v))
	names := make([]string, 0, len(extra))
	for k := range extra {
		if !isKnown(keys, k) {
			names = append(names, k)
		}
	}
	slices.Sort(names)

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])

	empty := len(data) == 2
	for _, k := range names {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		if !empty {
			buf.WriteByte(',')
		}
		empty = false

		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(extra[k])
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	return decodeWithExtra(data, (*plain)(u), &u.Extra)
}

func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	return encodeWithExtra(plain(u), u.Extra)
}

func (e *Employee) UnmarshalJSON(data []byte) error {
	type plain Employee
	return decodeWithExtra(data, (*plain)(e), &e.Extra)
}

func (e Employee) MarshalJSON() ([]byte, error) {
	type plain Employee
	return encodeWithExtra(plain(e), e.Extra)
}

func (m *Manager) UnmarshalJSON(data []byte) error {
	type plain Manager
	return decodeWithExtra(data, (*plain)(m), &m.Extra)
}

func (m Manager) MarshalJSON() ([]byte, error) {
	type plain Manager
	return encodeWithExtra(plain(m), m.Extra)
}

func (a *Admin) UnmarshalJSON(data []byte) error {
	type plain Admin
	return decodeWithExtra(data, (*plain)(a), &a.Extra)
}

func (a Admin) MarshalJSON() ([]byte, error) {
	type plain Admin
	return encodeWithExtra(plain(a), a.Extra)
}

func (m *Message) UnmarshalJSON(data []byte) error {
	type plain Message
	return decodeWithExtra(data, (*plain)(m), &m.Extra)
}

func (m Message) MarshalJSON() ([]byte, error) {
	type plain Message
	return encodeWithExtra(plain(m), m.Extra)
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	type plain Snapshot
	return decodeWithExtra(data, (*plain)(s), &s.Extra)
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	type plain Snapshot
	return encodeWithExtra(plain(s), s.Extra)
}
