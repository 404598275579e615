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

package keystore

import (
	"encoding/base64"
	"strconv"
)

// KeySize is the decoded byte length every key in the store must have.
const KeySize = 32

// LengthError is returned by Valid when a key value does not decode to
// exactly KeySize bytes. Values that are not valid standard Base64 are
// reported with an Actual length of zero.
type LengthError struct {
	Field  string
	Actual int
}

func (e LengthError) Error() string {
	return `key "` + e.Field + `" decodes to ` + strconv.Itoa(e.Actual) + ` bytes, expected ` +
		strconv.Itoa(KeySize)
}

// Valid checks that the supplied Base64 string decodes to exactly KeySize
// bytes. The field name is only used to build the error message.
//
// Both profile generation and profile audit go through this function, a key
// accepted by one is always accepted by the other.
func Valid(field, s string) error {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return &LengthError{Field: field}
	}
	if len(b) != KeySize {
		return &LengthError{Field: field, Actual: len(b)}
	}
	return nil
}
