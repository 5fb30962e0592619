// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package notify writes the messages sent to participants once an exchange
// is committed.
package notify

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/someonegg/snailmail"
)

type Dates struct {
	ContactBy time.Time // receive-only participants report missing mail after this
	MailBy    time.Time
}

const receiverText = `{{.Email}}

Hi {{.Name}},

Matches have been sent out to the senders. Please let me know if you don't receive anything in the mail by {{date .ContactBy}}.
Thanks for participating in the Snail Mail Exchange!
Cheers,


`

const senderText = `{{.Email}}

Hi {{.Name}},

You have been matched with:
{{range .Matches}}{{.Name}} ({{.Role}})
{{.Address}}
{{end}}

Please send out the letters by {{date .MailBy}}.


Notes:
	•	The people whom you will RECEIVE mail from are NOT the same as those you will be SENDING mail to.
	•	You can send a postcard, stickers, a drawing, a joke on a post-it, and/or whatever you want (as long as it follows our community guidelines of upholding a safe and inclusive environment).
	•	This is one time only, so you don't have to send more than one mail to each person you are assigned.
Resources:
	•	How to mail a letter: https://www.wikihow.com/Mail-a-Letter


Thanks for participating in the snail mail exchange!
Cheers,


`

var (
	funcs = template.FuncMap{"date": FormatDate}

	receiverTmpl = template.Must(template.New("receiver").Funcs(funcs).Parse(receiverText))
	senderTmpl   = template.Must(template.New("sender").Funcs(funcs).Parse(senderText))
)

type message struct {
	*snailmail.Participant
	Dates
	Matches []*snailmail.Participant
}

// Render writes one message per participant, in registry order. Senders get
// their matches and the mail-by date; receive-only participants get the
// contact-by date. Participants with nothing to send or receive are skipped.
func Render(w io.Writer, reg *snailmail.Registry, a snailmail.Assignment, dates Dates) error {
	for _, p := range reg.Participants() {
		msg := message{Participant: p, Dates: dates}

		tmpl := senderTmpl
		switch {
		case p.Send > 0:
			for _, name := range a[p.Name] {
				r, ok := reg.Get(name)
				if !ok {
					return fmt.Errorf("%s is matched with unknown participant %q", p.Name, name)
				}
				msg.Matches = append(msg.Matches, r)
			}
		case p.Receive > 0:
			tmpl = receiverTmpl
		default:
			continue
		}

		if err := tmpl.Execute(w, msg); err != nil {
			return fmt.Errorf("render message for %s: %w", p.Name, err)
		}
	}
	return nil
}
