// Package chart draws the dashboard's SVG charts and manages their lifetime.
//
// A Slot owns at most one live chart Instance. Replacing the chart in a slot
// always releases the previous instance before the new one is drawn, so
// repeated renders never accumulate chart buffers.
package chart

import (
	"bytes"
	"io"
	"sync"
)

var bufPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// DrawFunc writes one complete SVG document.
type DrawFunc func(w io.Writer) error

// Instance is a drawn chart. Its markup is only valid until it is released.
type Instance struct {
	buf *bytes.Buffer
}

// SVG returns the inline <svg> element without the XML prolog.
func (i *Instance) SVG() string {
	if i == nil || i.buf == nil {
		return ""
	}
	b := i.buf.Bytes()
	if idx := bytes.Index(b, []byte("<svg")); idx > 0 {
		b = b[idx:]
	}
	return string(b)
}

func (i *Instance) release() {
	if i.buf == nil {
		return
	}
	i.buf.Reset()
	bufPool.Put(i.buf)
	i.buf = nil
}

type Slot struct {
	name string

	mu       sync.Mutex
	current  *Instance
	created  int
	released int
}

func NewSlot(name string) *Slot {
	return &Slot{name: name}
}

func (s *Slot) Name() string { return s.name }

// Replace releases the live instance, if any, and draws a new one. When
// drawing fails the slot is left empty.
func (s *Slot) Replace(draw DrawFunc) (*Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseLocked()

	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	inst := &Instance{buf: buf}
	s.created++

	if err := draw(buf); err != nil {
		inst.release()
		s.released++
		return nil, err
	}
	s.current = inst
	return inst, nil
}

// Release disposes of the live instance.
func (s *Slot) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseLocked()
}

func (s *Slot) releaseLocked() {
	if s.current == nil {
		return
	}
	s.current.release()
	s.current = nil
	s.released++
}

// Live is the number of instances drawn by this slot and not yet released.
func (s *Slot) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.created - s.released
}
