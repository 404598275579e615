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

// Package check runs the sectioned health probes against a deployment: tool
// prerequisites, container state, listening sockets, firewall rules and the
// rendered configuration files. Every probe returns structured results that
// are reduced into a single tally, no probe mutates anything.
package check

import (
	"context"
	"os"
	"os/exec"
	"strconv"

	"github.com/PurpleSec/logx"
	"github.com/iDigitalFlame/vdep/compose"
	"github.com/iDigitalFlame/vdep/keystore"
	"github.com/iDigitalFlame/vdep/profile"
)

// Result is the outcome of a single probe.
type Result struct {
	Section string
	Name    string
	Detail  string
	State   profile.State
}

// Summary is the reduced tally over a probe run.
type Summary struct {
	Pass int
	Warn int
	Fail int
}

// Checker holds the deployment details the probes run against.
type Checker struct {
	Store   string
	Profile string
	Port    uint16
	Proto   string

	driver *compose.Driver
	log    logx.Log
}

// Ok returns true when no probe failed. Warnings never affect the result.
func (s Summary) Ok() bool {
	return s.Fail == 0
}

// Reduce aggregates probe results into a Summary.
func Reduce(r []Result) Summary {
	var s Summary
	for i := range r {
		switch r[i].State {
		case profile.Warn:
			s.Warn++
		case profile.Fail:
			s.Fail++
		default:
			s.Pass++
		}
	}
	return s
}

// New returns a Checker for the supplied deployment paths and service
// details.
func New(store, prof string, port uint16, proto string, d *compose.Driver, l logx.Log) *Checker {
	return &Checker{Store: store, Profile: prof, Port: port, Proto: proto, driver: d, log: l}
}

// Run executes every probe section in order and returns the results with
// their reduced tally.
func (c *Checker) Run(x context.Context) ([]Result, Summary) {
	r := make([]Result, 0, 16)
	r = append(r, c.prereqs()...)
	r = append(r, c.container(x)...)
	r = append(r, c.socket()...)
	r = append(r, c.firewall(x)...)
	r = append(r, c.configs()...)
	s := Reduce(r)
	c.log.Info("[check/run] Completed %d probes: %d passed, %d warnings, %d failures.",
		len(r), s.Pass, s.Warn, s.Fail)
	return r, s
}
func (c *Checker) prereqs() []Result {
	r := make([]Result, 0, 3)
	if _, err := exec.LookPath("docker"); err != nil {
		r = append(r, Result{Section: "prereq", Name: "docker binary", State: profile.Fail,
			Detail: "docker was not found on PATH"})
	} else {
		r = append(r, Result{Section: "prereq", Name: "docker binary", State: profile.Pass})
	}
	if _, err := os.Stat(c.driver.File); err != nil {
		r = append(r, Result{Section: "prereq", Name: "compose file", State: profile.Fail,
			Detail: `compose file "` + c.driver.File + `" does not exist`})
	} else {
		r = append(r, Result{Section: "prereq", Name: "compose file", State: profile.Pass})
	}
	b, err := os.ReadFile(c.Store)
	if err != nil {
		r = append(r, Result{Section: "prereq", Name: "key store", State: profile.Fail,
			Detail: `key store "` + c.Store + `" is not readable`})
		return r
	}
	if _, err = keystore.Server(b); err != nil {
		r = append(r, Result{Section: "prereq", Name: "key store", State: profile.Fail,
			Detail: err.Error()})
		return r
	}
	return append(r, Result{Section: "prereq", Name: "key store", State: profile.Pass,
		Detail: strconv.Itoa(keystore.Clients(b)) + " client entries"})
}
func (c *Checker) container(x context.Context) []Result {
	v, err := c.driver.Running(x)
	if err != nil {
		return []Result{{Section: "container", Name: "service state", State: profile.Fail,
			Detail: err.Error()}}
	}
	if !v {
		return []Result{{Section: "container", Name: "service state", State: profile.Fail,
			Detail: `service "` + c.driver.Service + `" is not running`}}
	}
	return []Result{{Section: "container", Name: "service state", State: profile.Pass}}
}
func (c *Checker) configs() []Result {
	b, err := os.ReadFile(c.Profile)
	if err != nil {
		return []Result{{Section: "config", Name: "client profile", State: profile.Warn,
			Detail: `no rendered profile at "` + c.Profile + `" yet`}}
	}
	var (
		a = profile.Audit(b)
		f = a.Fields()
		r = make([]Result, 0, len(f))
	)
	for i := range f {
		r = append(r, Result{Section: "config", Name: f[i].Name, State: f[i].State,
			Detail: f[i].Detail})
	}
	return r
}
