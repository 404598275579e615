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

package compose

import (
	"testing"

	"github.com/PurpleSec/logx"
	"github.com/stretchr/testify/require"
)

func TestArgs(t *testing.T) {
	d := New("deploy/docker-compose.yml", "vpn-prod", "vpn", logx.Console(logx.Error))
	require.Equal(
		t, []string{"compose", "-f", "deploy/docker-compose.yml", "-p", "vpn-prod", "up", "-d", "vpn"},
		d.args("up", "-d", d.Service),
	)
	d.Project = ""
	require.Equal(
		t, []string{"compose", "-f", "deploy/docker-compose.yml", "ps"},
		d.args("ps"),
	)
}
func TestRunning(t *testing.T) {
	require.True(t, running("db\nvpn\n", "vpn"))
	require.True(t, running("  vpn  \n", "vpn"))
	require.False(t, running("vpn-sidecar\n", "vpn"))
	require.False(t, running("", "vpn"))
}
