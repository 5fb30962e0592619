// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exchange

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/someonegg/snailmail"
)

func loadFixture(t *testing.T, name string) (*snailmail.Registry, error) {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()
	return LoadCSV(f, DefaultColumns)
}

func makeRegistry(t *testing.T, ps ...snailmail.Participant) *snailmail.Registry {
	t.Helper()
	reg := snailmail.NewRegistry()
	for _, p := range ps {
		require.NoError(t, reg.Add(p))
	}
	return reg
}

func TestParseOption(t *testing.T) {
	cases := []struct {
		phrase string
		want   Counts
		ok     bool
	}{
		{"I would like to send 1 mail and receive 1 mail.", Counts{1, 1, 1}, true},
		{"I would like to send 2 mail and receive 2 mail.", Counts{2, 2, 2}, true},
		{"I cannot send a mail but would like to receive 1 mail.", Counts{0, 1, 1}, true},
		{"I can send 1 mail and don't mind if I don't receive any mail.", Counts{1, 0, 1}, true},
		{"I can send 2 mail and don’t mind if I don’t receive any mail.  ", Counts{2, 0, 2}, true},
		{"I can send 3 mail.", Counts{}, false},
		{"", Counts{}, false},
	}
	for _, tc := range cases {
		got, ok := ParseOption(tc.phrase)
		assert.Equal(t, tc.ok, ok, tc.phrase)
		assert.Equal(t, tc.want, got, tc.phrase)
	}
}

func TestLoadCSV(t *testing.T) {
	t.Run("SignUpSheet", func(t *testing.T) {
		reg, err := loadFixture(t, "signup.csv")
		require.NoError(t, err)
		require.Equal(t, 6, reg.Len())

		ps := reg.Participants()
		assert.Equal(t, "Ada", ps[0].Name)
		assert.Equal(t, "Finn", ps[5].Name)

		ben, ok := reg.Get("Ben")
		require.True(t, ok)
		assert.Equal(t, "ben@example.com", ben.Email)
		assert.Equal(t, "Teacher", ben.Role)
		assert.Equal(t, "2 Branch Ave, Shelbyville", ben.Address)
		assert.Equal(t, 2, ben.Send)

		dev, _ := reg.Get("Dev")
		assert.Equal(t, snailmail.Participant{
			Name:       "Dev",
			Email:      "dev@example.com",
			Role:       "Student",
			Address:    "4 Heap Blvd, North Haverbrook",
			Send:       1,
			Receive:    0,
			MaxReceive: 1,
		}, *dev)
	})

	t.Run("MalformedOption", func(t *testing.T) {
		reg, err := loadFixture(t, "malformed.csv")
		require.NotNil(t, reg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedOption))

		errs := multierr.Errors(err)
		require.Len(t, errs, 1)
		var merr *MalformedOptionError
		require.True(t, errors.As(errs[0], &merr))
		assert.Equal(t, 3, merr.Row)
		assert.Equal(t, "Ben", merr.Name)

		ben, _ := reg.Get("Ben")
		assert.Zero(t, ben.Send)
		assert.Zero(t, ben.Receive)
		assert.Zero(t, ben.MaxReceive)
		assert.Equal(t, 3, reg.Len())
	})

	t.Run("DuplicateName", func(t *testing.T) {
		reg, err := loadFixture(t, "duplicate.csv")
		assert.Nil(t, reg)
		assert.True(t, errors.Is(err, snailmail.ErrDuplicateParticipant))
		assert.ErrorContains(t, err, "row 3")
	})

	t.Run("MissingColumn", func(t *testing.T) {
		reg, err := LoadCSV(strings.NewReader("Name,Email Address\nAda,a@x\n"), DefaultColumns)
		assert.Nil(t, reg)
		assert.ErrorContains(t, err, `missing column "I am a"`)
	})

	t.Run("Empty", func(t *testing.T) {
		reg, err := LoadCSV(strings.NewReader(""), DefaultColumns)
		assert.Nil(t, reg)
		assert.Error(t, err)
	})

	t.Run("CustomColumns", func(t *testing.T) {
		cols := Columns{Name: "who", Email: "mail", Role: "role", Address: "addr", Option: "opt"}
		in := "who,mail,role,addr,opt\nAda,a@x,Student,1 Rd,I would like to send 1 mail and receive 1 mail.\n"
		reg, err := LoadCSV(strings.NewReader(in), cols)
		require.NoError(t, err)
		ada, ok := reg.Get("Ada")
		require.True(t, ok)
		assert.Equal(t, 1, ada.Send)
	})
}

func TestExchangeRun(t *testing.T) {
	t.Run("Aborted", func(t *testing.T) {
		reg := makeRegistry(t,
			snailmail.Participant{Name: "A", Send: 0, Receive: 1, MaxReceive: 1},
			snailmail.Participant{Name: "B", Send: 1, Receive: 1, MaxReceive: 1},
		)
		x := &Exchange{Seed: 1}
		res, err := x.Run(reg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, snailmail.ErrInsufficientSupply))
		assert.Equal(t, Aborted, res.State)
		assert.True(t, res.State.Terminal())
		assert.Nil(t, res.Assignment)
		assert.NotEqual(t, uuid.Nil, res.RunID)
	})

	t.Run("Infeasible", func(t *testing.T) {
		reg := makeRegistry(t,
			snailmail.Participant{Name: "A", Send: 1, Receive: 1, MaxReceive: 1},
			snailmail.Participant{Name: "B", Send: 1, Receive: 1, MaxReceive: 1},
		)
		res, err := (&Exchange{Seed: 1}).Run(reg)
		assert.True(t, errors.Is(err, snailmail.ErrInfeasible))
		assert.Equal(t, Infeasible, res.State)
		assert.Nil(t, res.Assignment)
	})

	t.Run("Committed", func(t *testing.T) {
		reg, err := loadFixture(t, "signup.csv")
		require.NoError(t, err)

		var res *Result
		for seed := uint64(0); seed < 300; seed++ {
			res, err = (&Exchange{Seed: seed, Logger: zap.NewNop()}).Run(reg)
			if err == nil {
				break
			}
			require.True(t, errors.Is(err, snailmail.ErrInfeasible))
		}
		require.NoError(t, err)
		assert.Equal(t, Committed, res.State)
		require.NoError(t, snailmail.Verify(res.Registry, res.Assignment))

		assert.Equal(t, Summary{
			Participants: 6,
			Senders:      5,
			Receivers:    res.Summary.Receivers,
			TotalSend:    8,
			TotalReceive: 8,
			Absorbed:     2,
		}, res.Summary)
		assert.Empty(t, res.Warnings)

		_, recv := reg.Totals()
		assert.Equal(t, 6, recv, "loaded registry is not balanced in place")
	})

	t.Run("CapacityWarning", func(t *testing.T) {
		reg := makeRegistry(t,
			snailmail.Participant{Name: "A", Send: 2, Receive: 0, MaxReceive: 0},
			snailmail.Participant{Name: "B", Send: 0, Receive: 0, MaxReceive: 1},
		)
		res, err := (&Exchange{Seed: 1}).Run(reg)
		require.Len(t, res.Warnings, 1)
		assert.True(t, errors.Is(res.Warnings[0], snailmail.ErrInsufficientCapacity))
		assert.Equal(t, 1, res.Summary.Unplaced)
		assert.True(t, errors.Is(err, snailmail.ErrInfeasible))
	})

	t.Run("CustomMatcher", func(t *testing.T) {
		reg := makeRegistry(t,
			snailmail.Participant{Name: "A", Send: 1, Receive: 1, MaxReceive: 1},
			snailmail.Participant{Name: "B", Send: 1, Receive: 1, MaxReceive: 1},
			snailmail.Participant{Name: "C", Send: 1, Receive: 1, MaxReceive: 1},
		)
		x := &Exchange{NewMatcher: func(snailmail.Rand, *zap.Logger) snailmail.Matcher {
			return fixedMatcher{"A": {"B"}, "B": {"A"}, "C": {"C"}}
		}}
		res, err := x.Run(reg)
		assert.ErrorIs(t, err, snailmail.ErrInfeasible)
		assert.Equal(t, Infeasible, res.State)
	})
}

type fixedMatcher snailmail.Assignment

func (m fixedMatcher) Match(*snailmail.Registry) (snailmail.Assignment, error) {
	return snailmail.Assignment(m), nil
}
