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

// Package vdep is the operator tooling for deploying and diagnosing a
// containerized VPN server. The server itself (protocol, crypto, packet
// forwarding) is an external project, vdep only renders its per-client
// configuration from the exported key store, drives the container lifecycle
// through docker compose and runs health checks against a live deployment.
//
// The key store is the flat file the server writes when it generates its key
// material: one "Server public key (server_pub_key):" header line and one
// "# Client #N" block per client holding a private key and an optional
// per-client server key override. Client profiles are rendered by rewriting
// the three recognized assignment lines of a template, every other template
// line is preserved.
package vdep
