// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bridge

import "sync"

// Element is a node that carries text content.
type Element interface {
	ID() string
	Text() string
	SetText(text string)
}

// Document is the minimal DOM surface the bridge needs.
type Document interface {
	// ElementByID returns the first element with the given id, or nil.
	ElementByID(id string) Element
	// CreateHiddenElement creates a hidden element, appends it to the
	// document body and returns it.
	CreateHiddenElement(id string) Element
}

// MemDocument is an in-process Document. Each form session owns one.
type MemDocument struct {
	mu    sync.RWMutex
	nodes []*memElement
}

func NewMemDocument() *MemDocument {
	return &MemDocument{}
}

func (d *MemDocument) ElementByID(id string) Element {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, n := range d.nodes {
		if n.id == id {
			return n
		}
	}
	return nil
}

func (d *MemDocument) CreateHiddenElement(id string) Element {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := &memElement{id: id}
	d.nodes = append(d.nodes, n)
	return n
}

// Count returns how many elements carry the given id.
func (d *MemDocument) Count(id string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	count := 0
	for _, n := range d.nodes {
		if n.id == id {
			count++
		}
	}
	return count
}

type memElement struct {
	mu   sync.RWMutex
	id   string
	text string
}

func (e *memElement) ID() string { return e.id }

func (e *memElement) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text
}

func (e *memElement) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
}
