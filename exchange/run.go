// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exchange

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/someonegg/snailmail"
)

// Run balances a copy of reg and matches it once. The loaded registry is
// left untouched, so a caller can retry with a different seed.
//
// The returned Result is never nil; its State tells where the run stopped.
// The error is non-nil for Aborted and Infeasible runs.
func (x *Exchange) Run(reg *snailmail.Registry) (*Result, error) {
	logger := x.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	newMatcher := x.NewMatcher
	if newMatcher == nil {
		newMatcher = snailmail.GreedyMatcher
	}

	res := &Result{
		RunID:    uuid.New(),
		Seed:     x.Seed,
		State:    Loaded,
		Registry: reg.Clone(),
	}
	logger = logger.With(zap.Stringer("run_id", res.RunID), zap.Uint64("seed", x.Seed))
	rng := snailmail.NewRand(x.Seed)

	out, err := snailmail.Balance(res.Registry, rng, logger)
	res.Balance = out
	if err != nil {
		res.State = Aborted
		res.summarize()
		logger.Error("exchange aborted", zap.Error(err))
		return res, err
	}
	if w := out.Warning(); w != nil {
		res.Warnings = append(res.Warnings, w)
		logger.Warn("surplus not absorbed", zap.Int("unplaced", out.Unplaced), zap.Error(w))
	}
	res.State = Balanced
	logger.Info("exchange balanced",
		zap.Int("total_send", out.TotalSend),
		zap.Int("total_receive", out.TotalReceive),
		zap.Int("absorbed", out.Absorbed))

	a, err := newMatcher(rng, logger).Match(res.Registry)
	res.State = Assigned
	if err == nil {
		if verr := snailmail.Verify(res.Registry, a); verr != nil {
			err = fmt.Errorf("%w: %v", snailmail.ErrInfeasible, verr)
		}
	}
	if err != nil {
		res.State = Infeasible
		res.summarize()
		if errors.Is(err, snailmail.ErrInfeasible) {
			logger.Warn("exchange infeasible", zap.Error(err))
		} else {
			logger.Error("exchange failed", zap.Error(err))
		}
		return res, err
	}

	res.Assignment = a
	res.State = Committed
	res.summarize()
	logger.Info("exchange committed",
		zap.Int("senders", res.Summary.Senders),
		zap.Int("receivers", res.Summary.Receivers))
	return res, nil
}

func (r *Result) summarize() {
	var s Summary
	for _, p := range r.Registry.Participants() {
		s.Participants++
		if p.Send > 0 {
			s.Senders++
		}
		if p.Receive > 0 {
			s.Receivers++
		}
	}
	s.TotalSend, s.TotalReceive = r.Registry.Totals()
	s.Absorbed = r.Balance.Absorbed
	s.Unplaced = r.Balance.Unplaced
	r.Summary = s
}
