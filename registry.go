// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snailmail

import (
	"fmt"
)

// Registry holds participants keyed by name. Enumeration follows insertion
// order.
type Registry struct {
	byName map[string]*Participant
	order  []*Participant
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Participant)}
}

// Add inserts a copy of p. Names must be unique.
func (r *Registry) Add(p Participant) error {
	if p.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidParticipant)
	}
	if _, ok := r.byName[p.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateParticipant, p.Name)
	}
	if p.Send < 0 || p.Receive < 0 || p.MaxReceive < 0 || p.Receive > p.MaxReceive {
		return fmt.Errorf("%w: %q send=%d receive=%d max_receive=%d",
			ErrInvalidParticipant, p.Name, p.Send, p.Receive, p.MaxReceive)
	}

	rec := p
	r.byName[p.Name] = &rec
	r.order = append(r.order, &rec)
	return nil
}

func (r *Registry) Get(name string) (*Participant, bool) {
	p, ok := r.byName[name]
	return p, ok
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Participants returns the records in insertion order. The pointers are
// shared with the registry.
func (r *Registry) Participants() []*Participant {
	ps := make([]*Participant, len(r.order))
	copy(ps, r.order)
	return ps
}

func (r *Registry) Totals() (send, receive int) {
	for _, p := range r.order {
		send += p.Send
		receive += p.Receive
	}
	return
}

// Clone returns a deep copy, so a run can balance without touching the
// loaded data.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		byName: make(map[string]*Participant, len(r.order)),
		order:  make([]*Participant, len(r.order)),
	}
	for i, p := range r.order {
		rec := *p
		c.byName[rec.Name] = &rec
		c.order[i] = &rec
	}
	return c
}
