// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exchange runs a snail mail exchange: it loads the sign-up sheet,
// balances demand and matches senders with receivers.
package exchange

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/someonegg/snailmail"
)

type State int

const (
	Loaded State = iota
	Balanced
	Assigned
	Committed
	Aborted
	Infeasible
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Balanced:
		return "balanced"
	case Assigned:
		return "assigned"
	case Committed:
		return "committed"
	case Aborted:
		return "aborted"
	case Infeasible:
		return "infeasible"
	}
	return "unknown"
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Committed || s == Aborted || s == Infeasible
}

// MatcherFunc builds the assignment engine for one run.
type MatcherFunc func(rng snailmail.Rand, logger *zap.Logger) snailmail.Matcher

type Exchange struct {
	Seed uint64

	// Defaults to snailmail.GreedyMatcher.
	NewMatcher MatcherFunc

	Logger *zap.Logger
}

type Summary struct {
	Participants int `json:"participants"`
	Senders      int `json:"senders"`
	Receivers    int `json:"receivers"`
	TotalSend    int `json:"total_send"`
	TotalReceive int `json:"total_receive"`
	Absorbed     int `json:"absorbed"`
	Unplaced     int `json:"unplaced"`
}

type Result struct {
	RunID uuid.UUID
	Seed  uint64
	State State

	// Registry is the balanced copy the run worked on.
	Registry   *snailmail.Registry
	Assignment snailmail.Assignment // nil unless Committed
	Balance    snailmail.BalanceOutcome
	Summary    Summary

	// Warnings holds non-fatal conditions, such as a capacity shortfall.
	Warnings []error
}
