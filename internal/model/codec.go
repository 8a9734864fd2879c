package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Marshal renders the document as two-space indented JSON with a stable key
// order. The output ends with a newline.
func Marshal(d *Document) ([]byte, error) {
	raw, err := encodeJSON(d)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Parse reads a document. Malformed input and unknown discriminators fail
// with ErrParse; a missing workflow is read as empty and a missing version
// as CurrentVersion.
func Parse(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &d, nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	var w objectWriter
	version := d.Version
	if version == "" {
		version = CurrentVersion
	}
	w.field("version", version)
	w.field("workflow", nonNil(d.Workflow))
	w.extra(d.Extra)
	return w.bytes()
}

func (d *Document) UnmarshalJSON(data []byte) error {
	r, err := readObject(data)
	if err != nil {
		return fmt.Errorf("document: %w", err)
	}
	out := Document{Version: CurrentVersion}
	if _, err := r.take("version", &out.Version); err != nil {
		return fmt.Errorf("document: %w", err)
	}
	if _, err := r.take("workflow", &out.Workflow); err != nil {
		return fmt.Errorf("document: %w", err)
	}
	out.Workflow = nonNil(out.Workflow)
	if out.Extra, err = r.rest(); err != nil {
		return fmt.Errorf("document: %w", err)
	}
	*d = out
	return nil
}
