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
	"testing"

	"github.com/stretchr/testify/require"
)

func testKey(b byte, n int) string {
	v := make([]byte, n)
	for i := range v {
		v[i] = b
	}
	return base64.StdEncoding.EncodeToString(v)
}

func TestParse(t *testing.T) {
	s := "Server public key (server_pub_key): " + testKey(1, 32) + "\n" +
		"\n" +
		"# Client #1\n" +
		`private_key = "` + testKey(2, 32) + `"` + "\n" +
		"\n" +
		"# Client #2\n" +
		`private_key = "` + testKey(3, 32) + `"` + "\n" +
		`server_pub_key = "` + testKey(4, 32) + `"` + "\n"
	e, err := Parse([]byte(s), 1)
	require.NoError(t, err)
	require.Equal(t, testKey(1, 32), e.Server)
	require.Equal(t, testKey(2, 32), e.Private)
	require.Empty(t, e.Override)
	require.Equal(t, testKey(1, 32), e.Key())
	e, err = Parse([]byte(s), 2)
	require.NoError(t, err)
	require.Equal(t, testKey(3, 32), e.Private)
	require.Equal(t, testKey(4, 32), e.Override)
	require.Equal(t, testKey(4, 32), e.Key())
}
func TestParseCRLF(t *testing.T) {
	s := "Server public key (server_pub_key): " + testKey(1, 32) + "\r\n" +
		"# Client #1\r\n" +
		"  private_key = \"" + testKey(2, 32) + "\"  \r\n"
	e, err := Parse([]byte(s), 1)
	require.NoError(t, err)
	require.Equal(t, testKey(2, 32), e.Private)
}
func TestParseOrdinal(t *testing.T) {
	s := "Server public key (server_pub_key): " + testKey(1, 32) + "\n" +
		"# Client #1\n" +
		`private_key = "` + testKey(2, 32) + `"` + "\n" +
		"# Client #10\n" +
		`private_key = "` + testKey(3, 32) + `"` + "\n"
	e, err := Parse([]byte(s), 1)
	require.NoError(t, err)
	require.Equal(t, testKey(2, 32), e.Private)
	e, err = Parse([]byte(s), 10)
	require.NoError(t, err)
	require.Equal(t, testKey(3, 32), e.Private)
	_, err = Parse([]byte(s), 11)
	require.ErrorIs(t, err, ErrNotFound)
}
func TestParseNoHeader(t *testing.T) {
	s := "# Client #1\n" + `private_key = "` + testKey(2, 32) + `"` + "\n"
	_, err := Parse([]byte(s), 1)
	require.ErrorIs(t, err, ErrNoHeader)
	_, err = Parse([]byte("Server public key (server_pub_key):\n"+s), 1)
	require.ErrorIs(t, err, ErrNoHeader)
}
func TestParseNoPrivate(t *testing.T) {
	s := "Server public key (server_pub_key): " + testKey(1, 32) + "\n" +
		"# Client #1\n" +
		"# some note the operator left\n"
	_, err := Parse([]byte(s), 1)
	require.ErrorIs(t, err, ErrNoKey)
}
func TestParseShortKey(t *testing.T) {
	s := "Server public key (server_pub_key): " + testKey(1, 32) + "\n" +
		"# Client #1\n" +
		`private_key = "` + testKey(2, 31) + `"` + "\n"
	_, err := Parse([]byte(s), 1)
	var v *LengthError
	require.ErrorAs(t, err, &v)
	require.Equal(t, 31, v.Actual)
	require.Equal(t, "private_key", v.Field)
}
func TestValid(t *testing.T) {
	for _, v := range []struct {
		key string
		n   int
		ok  bool
	}{
		{"", 0, false},
		{"not base64!!", 0, false},
		{testKey(0, 31), 31, false},
		{testKey(0, 32), 32, true},
		{testKey(0, 33), 33, false},
		{testKey(255, 32), 32, true},
	} {
		err := Valid("private_key", v.key)
		if v.ok {
			require.NoError(t, err)
			continue
		}
		var e *LengthError
		require.ErrorAs(t, err, &e)
		require.Equal(t, v.n, e.Actual)
	}
}
func TestClients(t *testing.T) {
	s := "Server public key (server_pub_key): " + testKey(1, 32) + "\n" +
		"# Client #1\n# Client #2\n# Client #nope\n# Client #3\n"
	require.Equal(t, 3, Clients([]byte(s)))
	require.Equal(t, 0, Clients(nil))
}
func TestServer(t *testing.T) {
	v, err := Server([]byte("Server public key (server_pub_key): " + testKey(9, 32)))
	require.NoError(t, err)
	require.Equal(t, testKey(9, 32), v)
	_, err = Server([]byte("nothing here\n"))
	require.ErrorIs(t, err, ErrNoHeader)
}
