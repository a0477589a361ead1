// Licensed to ClickHouse, Inc. under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. ClickHouse, Inc. licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package clickhouse

import (
	"crypto/tls"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Auth carries the database/user/password a connection authenticates
// with during the handshake.
type Auth struct {
	Database string
	Username string
	Password string
}

// Options configures Open. It mirrors the subset of the connection's
// lifecycle the core session machine exposes; pooling belongs to a layer
// above this one and isn't modelled here.
type Options struct {
	Addr        []string
	Auth        Auth
	TLS         *tls.Config
	Compression bool
	Debug       bool
	Debugf      func(format string, v ...interface{})
	Settings    map[string]string

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ParseDSN parses a clickhouse:// DSN into Options, the same surface
// format the teacher's driver accepts.
func ParseDSN(dsn string) (*Options, error) {
	opt := &Options{}
	if err := opt.fromDSN(dsn); err != nil {
		return nil, err
	}
	return opt, nil
}

func (o *Options) fromDSN(in string) error {
	dsn, err := url.Parse(in)
	if err != nil {
		return err
	}
	if dsn.Host == "" {
		return errors.New("parse dsn address failed")
	}
	if o.Settings == nil {
		o.Settings = make(map[string]string)
	}
	if dsn.User != nil {
		o.Auth.Username = dsn.User.Username()
		o.Auth.Password, _ = dsn.User.Password()
	}
	o.Addr = append(o.Addr, strings.Split(dsn.Host, ",")...)
	o.Auth.Database = strings.TrimPrefix(dsn.Path, "/")

	var (
		secure     bool
		skipVerify bool
		params     = dsn.Query()
	)
	for key := range params {
		switch key {
		case "debug":
			o.Debug, _ = strconv.ParseBool(params.Get(key))
		case "compress":
			on, _ := strconv.ParseBool(params.Get(key))
			o.Compression = on || params.Get(key) == "lz4"
		case "dial_timeout":
			d, err := time.ParseDuration(params.Get(key))
			if err != nil {
				return fmt.Errorf("clickhouse [dsn parse]: dial_timeout: %w", err)
			}
			o.DialTimeout = d
		case "read_timeout":
			d, err := time.ParseDuration(params.Get(key))
			if err != nil {
				return fmt.Errorf("clickhouse [dsn parse]: read_timeout: %w", err)
			}
			o.ReadTimeout = d
		case "write_timeout":
			d, err := time.ParseDuration(params.Get(key))
			if err != nil {
				return fmt.Errorf("clickhouse [dsn parse]: write_timeout: %w", err)
			}
			o.WriteTimeout = d
		case "secure":
			v := params.Get(key)
			if v == "" {
				secure = true
			} else if secure, err = strconv.ParseBool(v); err != nil {
				return fmt.Errorf("clickhouse [dsn parse]: secure: %w", err)
			}
		case "skip_verify":
			v := params.Get(key)
			if v == "" {
				skipVerify = true
			} else if skipVerify, err = strconv.ParseBool(v); err != nil {
				return fmt.Errorf("clickhouse [dsn parse]: skip_verify: %w", err)
			}
		case "username":
			o.Auth.Username = params.Get(key)
		case "password":
			o.Auth.Password = params.Get(key)
		default:
			o.Settings[key] = params.Get(key)
		}
	}
	if secure {
		o.TLS = &tls.Config{InsecureSkipVerify: skipVerify}
	}
	return nil
}

func (o Options) setDefaults() Options {
	if o.Auth.Database == "" {
		o.Auth.Database = "default"
	}
	if o.Auth.Username == "" {
		o.Auth.Username = "default"
	}
	if o.DialTimeout == 0 {
		o.DialTimeout = time.Second
	}
	if o.ReadTimeout == 0 {
		o.ReadTimeout = 300 * time.Second
	}
	if len(o.Addr) == 0 {
		o.Addr = []string{"localhost:9000"}
	}
	return o
}
