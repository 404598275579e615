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

// Package keystore reads the flat key export file written by the VPN server
// during initial configuration. The file holds a single server public key
// header and one block per generated client, each with the client private key
// and an optional per-client server key override.
package keystore

import (
	"strconv"
	"strings"

	"github.com/iDigitalFlame/vdep/xerr"
)

const (
	header = "Server public key (server_pub_key):"
	marker = "# Client #"
)

var (
	// ErrNoKey is returned by Parse when the selected client block does not
	// contain a private key assignment.
	ErrNoKey = xerr.New("no private_key entry")
	// ErrNoHeader is returned by Parse when the store has no server public
	// key header line.
	ErrNoHeader = xerr.New("no server public key header")
	// ErrNotFound is returned by Parse when no client block matches the
	// requested ordinal.
	ErrNotFound = xerr.New("no matching client entry")
)

// Entry is the key material selected for a single client. The Server value is
// always the header-level server public key, Override is only set when the
// client block carries its own "server_pub_key" assignment.
type Entry struct {
	Server   string
	Private  string
	Override string
}

// Key returns the server public key the client should be configured with,
// which is the block override when present and the header key otherwise.
func (e Entry) Key() string {
	if len(e.Override) > 0 {
		return e.Override
	}
	return e.Server
}

// Clients returns the number of client blocks declared in the supplied key
// store content. Malformed block markers (non-numeric ordinals) are not
// counted.
func Clients(b []byte) int {
	var (
		n int
		l = strings.Split(string(b), "\n")
	)
	for i := range l {
		if _, ok := ordinal(l[i]); ok {
			n++
		}
	}
	return n
}

// Server extracts and validates the header-level server public key from the
// supplied key store content.
func Server(b []byte) (string, error) {
	l := strings.Split(string(b), "\n")
	for i := range l {
		x := strings.Index(l[i], header)
		if x == -1 {
			continue
		}
		v := trim(l[i][x+len(header):])
		if len(v) == 0 {
			break
		}
		if err := Valid("server_pub_key", v); err != nil {
			return "", err
		}
		return v, nil
	}
	return "", ErrNoHeader
}

// Parse selects the client block with the supplied 1-based ordinal from the
// key store content and returns its key material. Both the header key and the
// client keys are length validated before this function returns.
//
// The ordinal must match the block label exactly, "# Client #1" is never
// matched by a request for client ten (or the reverse).
func Parse(b []byte, n uint16) (*Entry, error) {
	var (
		e   Entry
		err error
		l   = strings.Split(string(b), "\n")
	)
	if e.Server, err = Server(b); err != nil {
		return nil, err
	}
	i, ok := 0, false
	for ; i < len(l); i++ {
		v, m := ordinal(l[i])
		if !m || v != n {
			continue
		}
		ok = true
		i++
		break
	}
	if !ok {
		return nil, xerr.Wrap(`client "#`+strconv.FormatUint(uint64(n), 10)+`"`, ErrNotFound)
	}
	for ; i < len(l); i++ {
		if _, m := ordinal(l[i]); m {
			break
		}
		if v, m := assign(l[i], "private_key"); m && len(e.Private) == 0 {
			e.Private = v
			continue
		}
		if v, m := assign(l[i], "server_pub_key"); m && len(e.Override) == 0 {
			e.Override = v
		}
	}
	if len(e.Private) == 0 {
		return nil, xerr.Wrap(`client "#`+strconv.FormatUint(uint64(n), 10)+`"`, ErrNoKey)
	}
	if err = Valid("private_key", e.Private); err != nil {
		return nil, err
	}
	if len(e.Override) > 0 {
		if err = Valid("server_pub_key", e.Override); err != nil {
			return nil, err
		}
	}
	return &e, nil
}
func trim(s string) string {
	return strings.Trim(s, " \t\r")
}

// ordinal parses a client block marker line and returns the block number. The
// number token must be bounded by whitespace or the end of the line, substring
// matches are not accepted.
func ordinal(s string) (uint16, bool) {
	x := strings.Index(s, marker)
	if x == -1 {
		return 0, false
	}
	v := trim(s[x+len(marker):])
	if y := strings.IndexAny(v, " \t"); y != -1 {
		v = v[:y]
	}
	if len(v) == 0 {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(n), true
}

// assign matches a line of the form 'key = "value"' against the supplied key
// and returns the unquoted value. Surrounding whitespace and carriage returns
// are ignored, the value itself is returned unmodified.
func assign(s, k string) (string, bool) {
	v := trim(s)
	if !strings.HasPrefix(v, k) {
		return "", false
	}
	if v = trim(v[len(k):]); len(v) == 0 || v[0] != '=' {
		return "", false
	}
	if v = trim(v[1:]); len(v) < 2 || v[0] != '"' {
		return "", false
	}
	x := strings.IndexByte(v[1:], '"')
	if x == -1 {
		return "", false
	}
	return v[1 : x+1], true
}
