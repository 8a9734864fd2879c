package server

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/mj1618/macro-cli/internal/edit"
	"github.com/mj1618/macro-cli/internal/model"
	"github.com/mj1618/macro-cli/internal/output"
)

// session is the document a client is editing. Callers hold Server.mu.
type session struct {
	doc   *model.Document
	path  string
	dirty bool
}

// openSession loads path when it exists and starts an empty document bound
// to path otherwise.
func openSession(path string) (*session, error) {
	if path == "" {
		return &session{doc: model.New()}, nil
	}
	doc, err := model.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &session{doc: model.New(), path: path}, nil
	}
	if err != nil {
		return nil, err
	}
	return &session{doc: doc, path: path}, nil
}

func (s *session) reset(path string) {
	s.doc = model.New()
	if path != "" {
		s.path = path
	}
	s.dirty = true
}

func (s *session) load(path string) error {
	doc, err := model.Load(path)
	if err != nil {
		return err
	}
	s.doc = doc
	s.path = path
	s.dirty = false
	return nil
}

func (s *session) save(path string) (string, error) {
	if path == "" {
		path = s.path
	}
	if path == "" {
		return "", fmt.Errorf("no file to save to: pass path or load a document first")
	}
	if err := model.Save(path, s.doc); err != nil {
		return "", err
	}
	s.path = path
	s.dirty = false
	return path, nil
}

func (s *session) apply(op string, params map[string]any) (edit.Result, error) {
	res, err := edit.Apply(s.doc, op, edit.Params(params))
	if err != nil {
		return res, err
	}
	s.dirty = true
	return res, nil
}

func (s *session) outline() output.OutlineResult {
	return output.OutlineResult{
		File:    s.path,
		Version: s.doc.Version,
		Steps:   s.doc.Len(),
		Entries: model.Outline(s.doc),
	}
}
