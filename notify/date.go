// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package notify

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the format dates are entered and printed in,
// e.g. "Saturday, July 8, 2023".
const DateLayout = "Monday, January 2, 2006"

// ParseDate validates s against DateLayout. The weekday must agree with the
// date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not in the expected format, use 'Day, Month Date, Year', e.g. 'Saturday, July 8, 2023'", s)
	}
	if wd := strings.SplitN(s, ",", 2)[0]; wd != t.Weekday().String() {
		return time.Time{}, fmt.Errorf("date %q falls on a %s, not a %s", s, t.Weekday(), wd)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
