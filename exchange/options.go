// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exchange

import (
	"errors"
	"fmt"
	"strings"
)

// The sign-up form's option phrases, without apostrophes.
const (
	OptionSend1Receive1  = "I would like to send 1 mail and receive 1 mail."
	OptionSend2Receive2  = "I would like to send 2 mail and receive 2 mail."
	OptionReceiveOnly    = "I cannot send a mail but would like to receive 1 mail."
	OptionSend1NoReceive = "I can send 1 mail and dont mind if I dont receive any mail."
	OptionSend2NoReceive = "I can send 2 mail and dont mind if I dont receive any mail."
)

// ErrMalformedOption is matched by *MalformedOptionError.
var ErrMalformedOption = errors.New("malformed option")

type MalformedOptionError struct {
	Row    int
	Name   string
	Option string
}

func (e *MalformedOptionError) Error() string {
	return fmt.Sprintf("row %d: %q chose an unrecognized option %q; loaded with no letters to send or receive",
		e.Row, e.Name, e.Option)
}

func (e *MalformedOptionError) Is(target error) bool {
	return target == ErrMalformedOption
}

type Counts struct {
	Send       int
	Receive    int
	MaxReceive int
}

var optionCounts = map[string]Counts{
	OptionSend1Receive1:  {1, 1, 1},
	OptionSend2Receive2:  {2, 2, 2},
	OptionReceiveOnly:    {0, 1, 1},
	OptionSend1NoReceive: {1, 0, 1},
	OptionSend2NoReceive: {2, 0, 2},
}

// ParseOption maps a sign-up option phrase to letter counts. Apostrophes are
// ignored, so "don't" and "dont" are the same. Unknown phrases yield zero
// counts and ok == false.
func ParseOption(phrase string) (c Counts, ok bool) {
	phrase = strings.TrimSpace(strings.NewReplacer("'", "", "’", "").Replace(phrase))
	c, ok = optionCounts[phrase]
	return
}
