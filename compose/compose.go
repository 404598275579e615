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

// Package compose drives the container lifecycle of the VPN server through
// the "docker compose" CLI. The container runtime itself is an external
// collaborator, this package only shells out to its fixed command surface and
// reports the results.
package compose

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/PurpleSec/logx"
	"github.com/iDigitalFlame/vdep/xerr"
)

// Driver wraps the compose CLI for a single project file and service.
type Driver struct {
	File    string
	Project string
	Service string

	log logx.Log
}

// New returns a Driver for the supplied compose file, project name and
// service name. An empty project name defers to the compose default.
func New(file, project, service string, l logx.Log) *Driver {
	return &Driver{File: file, Project: project, Service: service, log: l}
}

// Up builds (if needed) and starts the VPN service in the background.
func (d *Driver) Up(x context.Context) error {
	_, err := d.run(x, "up", "-d", d.Service)
	return err
}

// Down stops and removes the VPN service containers.
func (d *Driver) Down(x context.Context) error {
	_, err := d.run(x, "down")
	return err
}

// Build rebuilds the VPN service image.
func (d *Driver) Build(x context.Context) error {
	_, err := d.run(x, "build", d.Service)
	return err
}

// Status returns the raw compose process listing.
func (d *Driver) Status(x context.Context) (string, error) {
	return d.run(x, "ps")
}

// Running reports whether the VPN service container is currently up.
func (d *Driver) Running(x context.Context) (bool, error) {
	o, err := d.run(x, "ps", "--status", "running", "--services")
	if err != nil {
		return false, err
	}
	return running(o, d.Service), nil
}
func running(o, service string) bool {
	l := strings.Split(o, "\n")
	for i := range l {
		if strings.TrimSpace(l[i]) == service {
			return true
		}
	}
	return false
}

// args builds the full compose argument list for the supplied subcommand.
func (d *Driver) args(a ...string) []string {
	v := make([]string, 0, len(a)+5)
	v = append(v, "compose", "-f", d.File)
	if len(d.Project) > 0 {
		v = append(v, "-p", d.Project)
	}
	return append(v, a...)
}
func (d *Driver) run(x context.Context, a ...string) (string, error) {
	var (
		b bytes.Buffer
		v = d.args(a...)
		e = exec.CommandContext(x, "docker", v...)
	)
	e.Stdout, e.Stderr = &b, &b
	d.log.Debug("[compose/run] Executing \"docker %s\"...", strings.Join(v, " "))
	if err := e.Run(); err != nil {
		if o := strings.TrimSpace(b.String()); len(o) > 0 {
			d.log.Error("[compose/run] \"docker compose %s\" output:\n%s", a[0], o)
		}
		return "", xerr.Wrap(`"docker compose `+a[0]+`" failed`, err)
	}
	d.log.Trace("[compose/run] \"docker compose %s\" completed.", a[0])
	return b.String(), nil
}
