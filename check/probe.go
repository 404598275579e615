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
	"context"
	"net"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/iDigitalFlame/vdep/profile"
)

const dialTimeout = time.Second * 2

func (c *Checker) socket() []Result {
	if strings.ToLower(c.Proto) == "tcp" {
		v, err := net.DialTimeout("tcp", "127.0.0.1:"+strconv.FormatUint(uint64(c.Port), 10), dialTimeout)
		if err != nil {
			return []Result{{Section: "socket", Name: "tcp port", State: profile.Fail,
				Detail: `nothing is accepting on tcp port ` + strconv.FormatUint(uint64(c.Port), 10)}}
		}
		v.Close()
		return []Result{{Section: "socket", Name: "tcp port", State: profile.Pass}}
	}
	r := Result{Section: "socket", Name: "udp port"}
	b, err := os.ReadFile("/proc/net/udp")
	if err != nil {
		r.State = profile.Warn
		r.Detail = "cannot inspect udp sockets on this system"
		return []Result{r}
	}
	if !listening(string(b), c.Port) {
		if b, err = os.ReadFile("/proc/net/udp6"); err != nil || !listening(string(b), c.Port) {
			r.State = profile.Fail
			r.Detail = `nothing is bound to udp port ` + strconv.FormatUint(uint64(c.Port), 10)
			return []Result{r}
		}
	}
	r.State = profile.Pass
	return []Result{r}
}
func (c *Checker) firewall(x context.Context) []Result {
	if o, err := output(x, "nft", "list", "ruleset"); err == nil {
		return c.rules(o, "nft")
	}
	if o, err := output(x, "iptables", "-S"); err == nil {
		return c.rules(o, "iptables")
	}
	return []Result{{Section: "firewall", Name: "ruleset", State: profile.Warn,
		Detail: "neither nft nor iptables is usable, skipping firewall checks"}}
}

// rules scans a firewall listing for an accept rule on the service port. The
// match is intentionally loose, both nft ("udp dport 8443 accept") and
// iptables ("--dport 8443 -j ACCEPT") listings satisfy it.
func (c *Checker) rules(o, tool string) []Result {
	var (
		p = strconv.FormatUint(uint64(c.Port), 10)
		l = strings.Split(o, "\n")
	)
	for i := range l {
		if !dport(l[i], p) {
			continue
		}
		if strings.Contains(l[i], "accept") || strings.Contains(l[i], "ACCEPT") {
			return []Result{{Section: "firewall", Name: tool + " rule", State: profile.Pass}}
		}
	}
	return []Result{{Section: "firewall", Name: tool + " rule", State: profile.Warn,
		Detail: `no accept rule found for port ` + p + `, traffic may be filtered`}}
}

// dport reports whether a rule line names the supplied destination port. The
// port is matched as a whole token so port 844 never matches 8443.
func dport(s, p string) bool {
	f := strings.Fields(s)
	for i := 0; i < len(f)-1; i++ {
		if f[i] != "dport" && f[i] != "--dport" {
			continue
		}
		if f[i+1] == p || strings.TrimSuffix(f[i+1], ",") == p {
			return true
		}
	}
	return false
}

// listening reports whether a /proc/net/udp style socket table has an entry
// bound to the supplied port. Ports in the table are hexadecimal.
func listening(o string, port uint16) bool {
	var (
		h = strings.ToUpper(strconv.FormatUint(uint64(port), 16))
		l = strings.Split(o, "\n")
	)
	for len(h) < 4 {
		h = "0" + h
	}
	for i := range l {
		f := strings.Fields(l[i])
		if len(f) < 2 {
			continue
		}
		x := strings.IndexByte(f[1], ':')
		if x == -1 {
			continue
		}
		if f[1][x+1:] == h {
			return true
		}
	}
	return false
}
func output(x context.Context, n string, a ...string) (string, error) {
	if _, err := exec.LookPath(n); err != nil {
		return "", err
	}
	o, err := exec.CommandContext(x, n, a...).Output()
	if err != nil {
		return "", err
	}
	return string(o), nil
}
