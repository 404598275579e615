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

package vdep

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/PurpleSec/logx"
	"github.com/iDigitalFlame/vdep/check"
	"github.com/iDigitalFlame/vdep/compose"
	"github.com/iDigitalFlame/vdep/keystore"
	"github.com/iDigitalFlame/vdep/profile"
	"github.com/iDigitalFlame/vdep/xerr"
	"github.com/spf13/cobra"
)

// Compose operations pull and build images, everything else is quick.
const (
	timeout      = time.Second * 30
	timeoutBuild = time.Minute * 10
)

var errNoAddress = xerr.New("the --server-address argument is required")

type app struct {
	cfg  *config
	log  logx.Log
	path string
}

// Start is the primary command line function start point for vdep, which will
// build the command tree and run the selected command.
func Start() {
	var (
		a = new(app)
		r = &cobra.Command{
			Use:               "vdep",
			Short:             "VPN server deployment and diagnostics",
			PersistentPreRunE: a.setup,
			SilenceUsage:      true,
			SilenceErrors:     true,
		}
	)
	r.PersistentFlags().StringVarP(&a.path, "config", "c", "", "configuration file path")

	c := &cobra.Command{
		Use:           "client",
		Short:         "generate a client profile from the key store",
		RunE:          a.client,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.Flags().String("server-address", "", "server endpoint as IP:PORT")
	c.Flags().Uint16("client", 1, "client ordinal in the key store")
	c.Flags().StringP("output", "o", "", "profile output path")
	r.AddCommand(c)

	r.AddCommand(&cobra.Command{
		Use:           "audit [file]",
		Short:         "re-validate a rendered client profile",
		Args:          cobra.MaximumNArgs(1),
		RunE:          a.audit,
		SilenceUsage:  true,
		SilenceErrors: true,
	})
	r.AddCommand(&cobra.Command{
		Use:           "build",
		Short:         "build the VPN server image",
		RunE:          a.compose,
		SilenceUsage:  true,
		SilenceErrors: true,
	})
	r.AddCommand(&cobra.Command{
		Use:           "up",
		Short:         "start the VPN server container",
		RunE:          a.compose,
		SilenceUsage:  true,
		SilenceErrors: true,
	})
	r.AddCommand(&cobra.Command{
		Use:           "down",
		Short:         "stop the VPN server container",
		RunE:          a.compose,
		SilenceUsage:  true,
		SilenceErrors: true,
	})
	r.AddCommand(&cobra.Command{
		Use:           "status",
		Short:         "show the VPN server container state",
		RunE:          a.compose,
		SilenceUsage:  true,
		SilenceErrors: true,
	})
	r.AddCommand(&cobra.Command{
		Use:           "check",
		Short:         "run the deployment health checks",
		RunE:          a.check,
		SilenceUsage:  true,
		SilenceErrors: true,
	})
	if err := r.Execute(); err != nil {
		os.Stderr.WriteString(err.Error() + "!\n")
		os.Exit(1)
	}
}
func (a *app) setup(_ *cobra.Command, _ []string) error {
	if len(a.path) == 0 {
		if v, ok := os.LookupEnv("VDEP_CONF"); ok {
			a.path = v
		}
	}
	var err error
	if a.cfg, err = load(a.path); err != nil {
		return err
	}
	a.log, err = a.cfg.logger()
	return err
}
func (a *app) output(n uint16) string {
	return filepath.Join(a.cfg.Dirs.Data, "client"+strconv.FormatUint(uint64(n), 10)+".toml")
}
func (a *app) driver() *compose.Driver {
	return compose.New(a.cfg.Compose.File, a.cfg.Compose.Project, a.cfg.Compose.Service, a.log)
}
func (a *app) client(x *cobra.Command, _ []string) error {
	var (
		d, _ = x.Flags().GetString("server-address")
		n, _ = x.Flags().GetUint16("client")
		o, _ = x.Flags().GetString("output")
	)
	if len(d) == 0 {
		return errNoAddress
	}
	if n == 0 {
		return xerr.New("client ordinal cannot be zero")
	}
	if len(o) == 0 {
		o = a.output(n)
	}
	b, err := os.ReadFile(a.cfg.Store)
	if err != nil {
		return xerr.Wrap(`unable to read key store "`+a.cfg.Store+`"`, err)
	}
	e, err := keystore.Parse(b, n)
	if err != nil {
		return err
	}
	if err = profile.Write(a.cfg.Template, o, d, e.Private, e.Key()); err != nil {
		return err
	}
	a.log.Info("[client] Rendered profile for client #%d to %q.", n, o)
	os.Stdout.WriteString(o + "\n")
	return nil
}
func (a *app) audit(_ *cobra.Command, v []string) error {
	p := a.output(1)
	if len(v) > 0 {
		p = v[0]
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return xerr.Wrap(`unable to read profile "`+p+`"`, err)
	}
	var (
		r = profile.Audit(b)
		f = r.Fields()
	)
	for i := range f {
		s := exp(f[i].Name, 16) + f[i].State.String()
		if len(f[i].Detail) > 0 {
			s += " (" + f[i].Detail + ")"
		}
		os.Stdout.WriteString(s + "\n")
	}
	if !r.Ok() {
		return xerr.New(`audit of "` + p + `" failed`)
	}
	return nil
}
func (a *app) compose(x *cobra.Command, _ []string) error {
	var (
		d = a.driver()
		t = timeout
	)
	if x.Name() == "build" || x.Name() == "up" {
		t = timeoutBuild
	}
	c, f := context.WithTimeout(x.Context(), t)
	defer f()
	switch x.Name() {
	case "build":
		return d.Build(c)
	case "up":
		if err := d.Up(c); err != nil {
			return err
		}
		a.log.Info("[compose] Service %q is starting.", a.cfg.Compose.Service)
		return nil
	case "down":
		return d.Down(c)
	}
	o, err := d.Status(c)
	if err != nil {
		return err
	}
	os.Stdout.WriteString(o)
	return nil
}
func (a *app) check(x *cobra.Command, _ []string) error {
	c, f := context.WithTimeout(x.Context(), timeout)
	defer f()
	var (
		h    = check.New(a.cfg.Store, a.output(1), a.cfg.Service.Port, a.cfg.Service.Proto, a.driver(), a.log)
		r, s = h.Run(c)
		last string
	)
	for i := range r {
		if r[i].Section != last {
			os.Stdout.WriteString(r[i].Section + "\n")
			last = r[i].Section
		}
		v := "  " + exp(r[i].Name, 18) + r[i].State.String()
		if len(r[i].Detail) > 0 {
			v += " (" + r[i].Detail + ")"
		}
		os.Stdout.WriteString(v + "\n")
	}
	os.Stdout.WriteString(
		strconv.Itoa(s.Pass) + " passed, " + strconv.Itoa(s.Warn) + " warnings, " +
			strconv.Itoa(s.Fail) + " failures\n",
	)
	if !s.Ok() {
		return xerr.New("health check failed")
	}
	return nil
}
