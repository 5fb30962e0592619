// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snailmail

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrDuplicateParticipant is returned when a name is added to a registry twice.
	ErrDuplicateParticipant = errors.New("duplicate participant")

	// ErrInvalidParticipant is returned for records with negative counts or
	// a receive target above the maximum.
	ErrInvalidParticipant = errors.New("invalid participant")

	// ErrInsufficientSupply is matched by *InsufficientSupplyError.
	ErrInsufficientSupply = errors.New("insufficient supply")

	// ErrInsufficientCapacity is matched by *InsufficientCapacityError.
	ErrInsufficientCapacity = errors.New("insufficient capacity")

	// ErrInfeasible is matched by *InfeasibleError.
	ErrInfeasible = errors.New("infeasible assignment")

	// ErrInvalidAssignment is returned by Verify.
	ErrInvalidAssignment = errors.New("invalid assignment")
)

// InsufficientSupplyError reports that fewer letters are sent than requested.
type InsufficientSupplyError struct {
	Deficit int
}

func (e *InsufficientSupplyError) Error() string {
	return fmt.Sprintf("not enough mail being sent: %d more mail needs to be sent", e.Deficit)
}

func (e *InsufficientSupplyError) Is(target error) bool {
	return target == ErrInsufficientSupply
}

// InsufficientCapacityError reports surplus letters nobody has room to receive.
type InsufficientCapacityError struct {
	Unplaced int
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("not enough capacity to receive all the mail being sent: %d mail(s) cannot be received", e.Unplaced)
}

func (e *InsufficientCapacityError) Is(target error) bool {
	return target == ErrInsufficientCapacity
}

// InfeasibleError reports the shortfalls left by a failed matching attempt.
type InfeasibleError struct {
	Unsent     map[string]int // sender -> letters not placed
	Unreceived map[string]int // receiver -> letters not received
}

func (e *InfeasibleError) Error() string {
	var b strings.Builder
	b.WriteString("unable to find a distribution where all senders send and all receivers receive their letters")
	if len(e.Unsent) > 0 {
		b.WriteString("; unsent: ")
		b.WriteString(formatShortfall(e.Unsent))
	}
	if len(e.Unreceived) > 0 {
		b.WriteString("; unreceived: ")
		b.WriteString(formatShortfall(e.Unreceived))
	}
	return b.String()
}

func (e *InfeasibleError) Is(target error) bool {
	return target == ErrInfeasible
}

func formatShortfall(m map[string]int) string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, m[name])
	}
	return strings.Join(parts, ", ")
}
