// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snailmail

import (
	"go.uber.org/zap"
)

type greedyMatcher struct {
	rng    Rand
	logger *zap.Logger
}

// GreedyMatcher fills each sender one letter at a time, picking uniformly
// among receivers that still have room, are not the sender, are not already
// matched with it, and do not already send to it. There is no backtracking,
// so it can fail on inputs that do have a valid assignment.
func GreedyMatcher(rng Rand, logger *zap.Logger) Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return greedyMatcher{rng, logger}
}

func (m greedyMatcher) Match(reg *Registry) (Assignment, error) {
	var senders, receivers []*Participant
	for _, p := range reg.order {
		if p.Send > 0 {
			senders = append(senders, p)
		}
		if p.Receive > 0 {
			receivers = append(receivers, p)
		}
	}

	dist := make(Assignment, len(senders))
	for _, s := range senders {
		dist[s.Name] = make([]string, 0, s.Send)
	}
	received := make(map[string]int, len(receivers))

	candidates := make([]*Participant, 0, len(receivers))
	for _, s := range senders {
		for n := 0; n < s.Send; n++ {
			candidates = candidates[:0]
			for _, r := range receivers {
				if received[r.Name] >= r.Receive ||
					r.Name == s.Name ||
					contains(dist[s.Name], r.Name) ||
					contains(dist[r.Name], s.Name) {
					continue
				}
				candidates = append(candidates, r)
			}

			if len(candidates) == 0 {
				m.logger.Debug("sender left short",
					zap.String("sender", s.Name),
					zap.Int("send", s.Send), zap.Int("placed", n))
				break
			}

			r := candidates[m.rng.IntN(len(candidates))]
			dist[s.Name] = append(dist[s.Name], r.Name)
			received[r.Name]++
		}
	}

	var ierr InfeasibleError
	for _, s := range senders {
		if rest := s.Send - len(dist[s.Name]); rest > 0 {
			if ierr.Unsent == nil {
				ierr.Unsent = make(map[string]int)
			}
			ierr.Unsent[s.Name] = rest
		}
	}
	for _, r := range receivers {
		if rest := r.Receive - received[r.Name]; rest > 0 {
			if ierr.Unreceived == nil {
				ierr.Unreceived = make(map[string]int)
			}
			ierr.Unreceived[r.Name] = rest
		}
	}
	if len(ierr.Unsent) > 0 || len(ierr.Unreceived) > 0 {
		return nil, &ierr
	}

	return dist, nil
}
