// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package snailmail provides demand balancing and randomized constrained
// matching for postal pen-pal exchanges.
package snailmail

import (
	"math/rand/v2"
)

// Participant is one exchange member.
type Participant struct {
	Name    string
	Email   string
	Role    string
	Address string

	Send       int // letters to send, fixed after load
	Receive    int // current receive target, raised by Balance
	MaxReceive int
}

// Matcher computes an assignment of senders to receivers.
type Matcher interface {
	Match(reg *Registry) (Assignment, error)
}

// Assignment maps a sender name to its receiver names.
type Assignment map[string][]string

// Rand is the randomness source used by Balance and GreedyMatcher.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a PCG backed source seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Incoming counts how many times each receiver appears in a.
func (a Assignment) Incoming() map[string]int {
	counts := make(map[string]int)
	for _, receivers := range a {
		for _, r := range receivers {
			counts[r]++
		}
	}
	return counts
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
