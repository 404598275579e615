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

package check

import (
	"testing"

	"github.com/iDigitalFlame/vdep/profile"
	"github.com/stretchr/testify/require"
)

func TestReduce(t *testing.T) {
	s := Reduce([]Result{
		{State: profile.Pass},
		{State: profile.Pass},
		{State: profile.Warn},
		{State: profile.Fail},
	})
	require.Equal(t, Summary{Pass: 2, Warn: 1, Fail: 1}, s)
	require.False(t, s.Ok())
	s = Reduce([]Result{{State: profile.Pass}, {State: profile.Warn}})
	require.True(t, s.Ok(), "warnings never fail a check run")
	require.True(t, Reduce(nil).Ok())
}
func TestDport(t *testing.T) {
	require.True(t, dport("udp dport 8443 accept", "8443"))
	require.True(t, dport("-A INPUT -p udp --dport 8443 -j ACCEPT", "8443"))
	require.True(t, dport("udp dport 8443, log", "8443"))
	require.False(t, dport("udp dport 84431 accept", "8443"))
	require.False(t, dport("udp dport 844 accept", "8443"))
	require.False(t, dport("udp sport 8443 accept", "8443"))
}
func TestListening(t *testing.T) {
	// 0x20FB == 8443.
	o := "  sl  local_address rem_address   st tx_queue rx_queue\n" +
		"  54: 00000000:20FB 00000000:0000 07 00000000:00000000\n"
	require.True(t, listening(o, 8443))
	require.False(t, listening(o, 8444))
	require.False(t, listening("", 8443))
	// Port 53 pads to four hex digits.
	require.True(t, listening("  1: 0100007F:0035 00000000:0000 07\n", 53))
}
