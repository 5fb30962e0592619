// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snailmail

import (
	"go.uber.org/zap"
)

type BalanceOutcome struct {
	TotalSend    int
	TotalReceive int // before balancing
	Absorbed     int
	Unplaced     int
}

// Warning reports the capacity shortfall, if any. It is not fatal: the
// registry keeps the partial balance.
func (o BalanceOutcome) Warning() error {
	if o.Unplaced <= 0 {
		return nil
	}
	return &InsufficientCapacityError{Unplaced: o.Unplaced}
}

// Balance raises receive targets so that they absorb any surplus of letters
// being sent. Participants with headroom are picked uniformly at random, one
// letter at a time.
//
// A deficit is returned as *InsufficientSupplyError and leaves reg untouched.
func Balance(reg *Registry, rng Rand, logger *zap.Logger) (BalanceOutcome, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var out BalanceOutcome
	out.TotalSend, out.TotalReceive = reg.Totals()

	diff := out.TotalSend - out.TotalReceive
	if diff < 0 {
		return out, &InsufficientSupplyError{Deficit: -diff}
	}
	if diff == 0 {
		return out, nil
	}

	var eligible []*Participant
	for _, p := range reg.order {
		if p.Receive < p.MaxReceive {
			eligible = append(eligible, p)
		}
	}

	for diff > 0 && len(eligible) > 0 {
		i := rng.IntN(len(eligible))
		p := eligible[i]

		p.Receive++
		diff--
		out.Absorbed++
		logger.Debug("receive target raised",
			zap.String("participant", p.Name), zap.Int("receive", p.Receive))

		if p.Receive == p.MaxReceive {
			last := len(eligible) - 1
			eligible[i] = eligible[last]
			eligible = eligible[:last]
		}
	}

	out.Unplaced = diff
	return out, nil
}
