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

// Package profile renders and audits the per-client VPN configuration file.
// Rendering rewrites only the three recognized assignment lines of the
// template, every other line passes through untouched, so operator comments
// and unrelated settings survive regeneration.
package profile

import (
	"os"
	"strconv"
	"strings"

	"github.com/iDigitalFlame/vdep/keystore"
	"github.com/iDigitalFlame/vdep/xerr"
)

// Placeholder is the address marker shipped in the stock template. An audit
// that finds it in the address field warns instead of failing, since a fresh
// template is expected to carry it until the operator fills in the real
// server endpoint.
const Placeholder = "CHANGE_ME"

// ErrNoAddress is returned by Write when the supplied server address is
// empty.
var ErrNoAddress = xerr.New("server address cannot be empty")

var prefixes = [3]string{`address = "`, `private_key = "`, `server_pub_key = "`}

// Render rewrites the three recognized assignment lines of the template with
// the supplied values and returns the result. Lines are matched on their
// literal prefix, the first recognized prefix wins and at most one
// substitution is made per line. Values are inserted verbatim.
func Render(b []byte, address, private, server string) []byte {
	v := [3]string{address, private, server}
	l := strings.Split(string(b), "\n")
	for i := range l {
		for x := range prefixes {
			if !strings.HasPrefix(l[i], prefixes[x]) {
				continue
			}
			l[i] = prefixes[x] + v[x] + `"`
			break
		}
	}
	return []byte(strings.Join(l, "\n"))
}

// Write validates the supplied key material, renders the template at the
// supplied path and writes the result to the output path. The rendered
// content is fully materialized in a temporary file next to the output and
// moved into place with a single rename, so the template and output paths
// may be the same file. Nothing is written when validation fails.
func Write(template, output, address, private, server string) error {
	if len(address) == 0 {
		return ErrNoAddress
	}
	if err := keystore.Valid("private_key", private); err != nil {
		return err
	}
	if err := keystore.Valid("server_pub_key", server); err != nil {
		return err
	}
	b, err := os.ReadFile(template)
	if err != nil {
		return xerr.Wrap(`unable to read template "`+template+`"`, err)
	}
	t := output + ".tmp" + strconv.Itoa(os.Getpid())
	// Remove is a no-op once the rename below lands, it only catches the
	// temporary file on failure exits, a failed write included.
	defer os.Remove(t)
	if err = os.WriteFile(t, Render(b, address, private, server), 0600); err != nil {
		return xerr.Wrap(`unable to write "`+t+`"`, err)
	}
	if err = os.Rename(t, output); err != nil {
		return xerr.Wrap(`unable to move "`+t+`" to "`+output+`"`, err)
	}
	return nil
}
