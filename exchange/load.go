// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"

	"github.com/someonegg/snailmail"
)

// Columns names the sign-up sheet headers.
type Columns struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Role    string `yaml:"role"`
	Address string `yaml:"address"`
	Option  string `yaml:"option"`
}

var DefaultColumns = Columns{
	Name:    "Name",
	Email:   "Email Address",
	Role:    "I am a",
	Address: "Current Mailing Address",
	Option:  "Choose an option:",
}

// LoadCSV reads a sign-up sheet export into a registry.
//
// Unrecognized option phrases do not stop the load: those participants get
// zero counts, and the returned error combines one *MalformedOptionError per
// row alongside a non-nil registry. Any other error comes with a nil
// registry.
func LoadCSV(r io.Reader, cols Columns) (*snailmail.Registry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty sign-up sheet")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	var at [5]int
	for i, col := range []string{cols.Name, cols.Email, cols.Role, cols.Address, cols.Option} {
		n, ok := idx[col]
		if !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
		at[i] = n
	}

	field := func(rec []string, i int) string {
		if at[i] < len(rec) {
			return strings.TrimSpace(rec[at[i]])
		}
		return ""
	}

	var (
		reg       = snailmail.NewRegistry()
		malformed error
	)
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}

		p := snailmail.Participant{
			Name:    field(rec, 0),
			Email:   field(rec, 1),
			Role:    field(rec, 2),
			Address: field(rec, 3),
		}
		if p.Name == "" {
			continue
		}

		option := field(rec, 4)
		c, ok := ParseOption(option)
		if !ok {
			multierr.AppendInto(&malformed, &MalformedOptionError{Row: row, Name: p.Name, Option: option})
		}
		p.Send, p.Receive, p.MaxReceive = c.Send, c.Receive, c.MaxReceive

		if err := reg.Add(p); err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
	}

	return reg, malformed
}
