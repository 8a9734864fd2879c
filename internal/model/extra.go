package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Extra holds object keys the model does not recognize. Values are kept as
// compacted JSON and written back after the known keys, sorted by key.
type Extra map[string]json.RawMessage

func (e Extra) clone() Extra {
	if len(e) == 0 {
		return nil
	}
	out := make(Extra, len(e))
	for k, v := range e {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// objectWriter emits a JSON object with keys in call order.
type objectWriter struct {
	buf  bytes.Buffer
	keys map[string]bool
	err  error
}

func (w *objectWriter) field(key string, v any) {
	if w.err != nil {
		return
	}
	raw, err := encodeJSON(v)
	if err != nil {
		w.err = fmt.Errorf("%s: %w", key, err)
		return
	}
	w.raw(key, raw)
}

func (w *objectWriter) raw(key string, raw []byte) {
	if w.keys == nil {
		w.keys = make(map[string]bool)
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	k, _ := encodeJSON(key)
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(raw)
	w.keys[key] = true
}

func (w *objectWriter) extra(e Extra) {
	keys := make([]string, 0, len(e))
	for k := range e {
		if !w.keys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		w.raw(k, e[k])
	}
}

func (w *objectWriter) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if w.keys == nil {
		return []byte("{}"), nil
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}

// objectReader consumes known keys from a JSON object; what is left over
// becomes Extra.
type objectReader struct {
	fields map[string]json.RawMessage
}

func readObject(data []byte) (*objectReader, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("expected object, got null")
	}
	return &objectReader{fields: fields}, nil
}

// take decodes key into dst and removes it. A null value counts as absent.
func (r *objectReader) take(key string, dst any) (bool, error) {
	raw, ok := r.fields[key]
	if !ok {
		return false, nil
	}
	delete(r.fields, key)
	if string(bytes.TrimSpace(raw)) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("%s: %w", key, err)
	}
	return true, nil
}

// drop discards keys that are known but do not apply to the decoded variant.
func (r *objectReader) drop(keys ...string) {
	for _, k := range keys {
		delete(r.fields, k)
	}
}

func (r *objectReader) rest() (Extra, error) {
	if len(r.fields) == 0 {
		return nil, nil
	}
	out := make(Extra, len(r.fields))
	for k, v := range r.fields {
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		out[k] = buf.Bytes()
	}
	return out, nil
}

// discriminator reads a required string tag such as "step" or "type".
func (r *objectReader) discriminator(key string) (string, error) {
	var s string
	ok, err := r.take(key, &s)
	if err != nil {
		return "", err
	}
	if !ok || strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("missing %q", key)
	}
	return s, nil
}
