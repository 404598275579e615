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
	"strings"

	"github.com/PurpleSec/logx"
	"github.com/iDigitalFlame/vdep/xerr"
	"github.com/spf13/viper"
)

type config struct {
	Log struct {
		Path  string `mapstructure:"path"`
		Level uint8  `mapstructure:"level"`
	} `mapstructure:"log"`
	Dirs struct {
		Data string `mapstructure:"data"`
	} `mapstructure:"dirs"`
	Store    string `mapstructure:"store"`
	Template string `mapstructure:"template"`
	Compose  struct {
		File    string `mapstructure:"file"`
		Project string `mapstructure:"project"`
		Service string `mapstructure:"service"`
	} `mapstructure:"compose"`
	Service struct {
		Port  uint16 `mapstructure:"port"`
		Proto string `mapstructure:"proto"`
	} `mapstructure:"service"`
}

var defaults = map[string]any{
	"log.level":       uint8(2),
	"dirs.data":       ".",
	"store":           "keys.txt",
	"template":        "client.template.toml",
	"compose.file":    "docker-compose.yml",
	"compose.service": "vpn",
	"service.port":    uint16(8443),
	"service.proto":   "udp",
}

// load reads the tool configuration. An explicit path (from the "--config"
// flag or "$VDEP_CONF") wins, otherwise "vdep.toml" is searched for in the
// working directory and "/etc". A missing config file is not an error, every
// value has a default and can be supplied via "VDEP_" environment variables.
func load(path string) (*config, error) {
	var (
		c config
		v = viper.New()
	)
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.SetConfigName("vdep")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc")
	if len(path) > 0 {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, xerr.Wrap("unable to read configuration", err)
		}
	}
	v.SetEnvPrefix("vdep")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.Unmarshal(&c); err != nil {
		return nil, xerr.Wrap("unable to parse configuration", err)
	}
	switch strings.ToLower(c.Service.Proto) {
	case "tcp", "udp":
	default:
		return nil, xerr.New(`protocol "` + c.Service.Proto + `" is not valid (must be: tcp or udp)`)
	}
	if c.Service.Port == 0 {
		return nil, xerr.New("service port cannot be zero")
	}
	return &c, nil
}
func (c *config) logger() (logx.Log, error) {
	l := logx.Multiple(logx.Console(logx.Level(c.Log.Level)))
	if len(c.Log.Path) > 0 {
		f, err := logx.File(c.Log.Path, logx.Level(c.Log.Level))
		if err != nil {
			return nil, xerr.Wrap(`could not create log "`+c.Log.Path+`"`, err)
		}
		l.Add(f)
	}
	return l, nil
}
