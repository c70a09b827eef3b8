package dataforged

import (
	"github.com/KirkDiggler/ironsworn-content/internal/errors"
)

// Document is one fetched content document
type Document struct {
	Name Name
	Root any
}

// Set holds fetched documents in request order
type Set struct {
	docs  []*Document
	index map[Name]*Document
}

// NewSet creates an empty document set
func NewSet() *Set {
	return &Set{index: make(map[Name]*Document)}
}

// Add appends a document, replacing any document with the same name in place
func (s *Set) Add(name Name, root any) {
	if doc, ok := s.index[name]; ok {
		doc.Root = root
		return
	}
	doc := &Document{Name: name, Root: root}
	s.docs = append(s.docs, doc)
	s.index[name] = doc
}

// Get returns the document with the given name
func (s *Set) Get(name Name) (*Document, bool) {
	doc, ok := s.index[name]
	return doc, ok
}

// Root returns the root value of the named document or a
// FailedPrecondition error when it was never fetched
func (s *Set) Root(name Name) (any, error) {
	doc, ok := s.index[name]
	if !ok {
		return nil, errors.Newf(errors.CodeFailedPrecondition, "document %s was not fetched", name)
	}
	return doc.Root, nil
}

// Documents returns the documents in request order
func (s *Set) Documents() []*Document {
	return s.docs
}

// Len returns the number of documents
func (s *Set) Len() int {
	return len(s.docs)
}
