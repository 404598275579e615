// Copyright (C) 2025 - 2026 iDigitalFlame
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.
//

package profile

import (
	"strings"

	"github.com/iDigitalFlame/vdep/keystore"
)

// Field check state constants.
const (
	Pass = State(0)
	Warn = State(1)
	Fail = State(2)
)

// State is the tri-state outcome of a single field or diagnostic check.
type State uint8

// Field is the audit outcome for a single recognized assignment in a rendered
// profile.
type Field struct {
	Name   string
	Value  string
	Detail string
	State  State
}

// Report is the result of auditing a rendered profile. Each recognized field
// is audited independently, duplicate assignments resolve to the first
// occurrence in file order.
type Report struct {
	Address Field
	Private Field
	Server  Field
}

// Ok returns true when every audited field passed. Warnings never affect the
// result.
func (r Report) Ok() bool {
	return r.Address.State != Fail && r.Private.State != Fail && r.Server.State != Fail
}

// Fields returns the audited fields in file-format order for display.
func (r Report) Fields() [3]Field {
	return [3]Field{r.Address, r.Private, r.Server}
}
func (s State) String() string {
	switch s {
	case Warn:
		return "warn"
	case Fail:
		return "fail"
	}
	return "pass"
}

// Audit re-parses a rendered profile and re-runs the generation-time
// validation rules against it. The profile is never modified.
func Audit(b []byte) *Report {
	var (
		r Report
		l = strings.Split(string(b), "\n")
	)
	r.Address = field(l, "address")
	r.Private = field(l, "private_key")
	r.Server = field(l, "server_pub_key")
	if r.Address.State == Pass && strings.Contains(r.Address.Value, Placeholder) {
		r.Address.State, r.Address.Detail = Warn, "placeholder address, update before deploying"
	}
	// Only the two key fields carry the decoded length rule.
	if r.Private.State == Pass {
		check(&r.Private)
	}
	if r.Server.State == Pass {
		check(&r.Server)
	}
	return &r
}
func check(f *Field) {
	if err := keystore.Valid(f.Name, f.Value); err != nil {
		f.State, f.Detail = Fail, err.Error()
	}
}
func field(l []string, k string) Field {
	f := Field{Name: k, State: Fail, Detail: "empty or missing"}
	for i := range l {
		v, ok := extract(l[i], k)
		if !ok {
			continue
		}
		if len(v) == 0 {
			return f
		}
		f.Value, f.State, f.Detail = v, Pass, ""
		return f
	}
	return f
}

// extract matches a line of the form 'key = "value"', ignoring surrounding
// whitespace, and returns the double-quoted value.
func extract(s, k string) (string, bool) {
	v := strings.TrimSpace(s)
	if !strings.HasPrefix(v, k) {
		return "", false
	}
	if v = strings.TrimSpace(v[len(k):]); len(v) == 0 || v[0] != '=' {
		return "", false
	}
	if v = strings.TrimSpace(v[1:]); len(v) < 2 || v[0] != '"' {
		return "", false
	}
	x := strings.IndexByte(v[1:], '"')
	if x == -1 {
		return "", false
	}
	return v[1 : x+1], true
}
