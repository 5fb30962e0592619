// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snailmail

import (
	"fmt"
)

// Verify checks a against reg: known names only, no self or repeated
// pairings, no pair matched in both directions, every sender sends exactly
// Send letters and every receiver gets exactly Receive letters.
func Verify(reg *Registry, a Assignment) error {
	for sender, receivers := range a {
		if _, ok := reg.Get(sender); !ok {
			return fmt.Errorf("%w: unknown sender %q", ErrInvalidAssignment, sender)
		}
		for i, r := range receivers {
			if _, ok := reg.Get(r); !ok {
				return fmt.Errorf("%w: unknown receiver %q", ErrInvalidAssignment, r)
			}
			if r == sender {
				return fmt.Errorf("%w: %q sends to itself", ErrInvalidAssignment, sender)
			}
			if contains(receivers[:i], r) {
				return fmt.Errorf("%w: %q sends to %q twice", ErrInvalidAssignment, sender, r)
			}
			if contains(a[r], sender) {
				return fmt.Errorf("%w: %q and %q send to each other", ErrInvalidAssignment, sender, r)
			}
		}
	}

	incoming := a.Incoming()
	for _, p := range reg.order {
		if got := len(a[p.Name]); got != p.Send {
			return fmt.Errorf("%w: %q sends %d, want %d", ErrInvalidAssignment, p.Name, got, p.Send)
		}
		if got := incoming[p.Name]; got != p.Receive {
			return fmt.Errorf("%w: %q receives %d, want %d", ErrInvalidAssignment, p.Name, got, p.Receive)
		}
	}
	return nil
}
