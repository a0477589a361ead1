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

// Package clickhouse is the caller-facing façade over the core session
// state machine in lib/session: it turns Options into a session.Config
// and ties context cancellation to the in-flight query.
package clickhouse

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/clickhouse-native/chwire/lib/column"
	"github.com/clickhouse-native/chwire/lib/proto"
	"github.com/clickhouse-native/chwire/lib/session"
)

// Block is re-exported so callers never need to import the core packages
// directly.
type Block = proto.Block

// Conn is one opened, authenticated connection to a ClickHouse server.
type Conn struct {
	s      *session.Session
	logger *logCore
}

// Open dials opt.Addr (round-robin across entries on failure) and
// performs the native handshake, returning a ready Conn.
func Open(ctx context.Context, opt Options) (*Conn, error) {
	opt = opt.setDefaults()

	var logger *logCore
	debugf := opt.Debugf
	if opt.Debug && debugf == nil {
		logger = initLogger(slog.LevelDebug, nil)
		debugf = func(format string, v ...interface{}) {
			logger.logger.Debug(fmt.Sprintf(format, v...))
		}
	}

	cfg := session.Config{
		Hosts:          opt.Addr,
		Database:       opt.Auth.Database,
		Username:       opt.Auth.Username,
		Password:       opt.Auth.Password,
		Compression:    opt.Compression,
		ConnectTimeout: opt.DialTimeout,
		ReadTimeout:    opt.ReadTimeout,
		WriteTimeout:   opt.WriteTimeout,
	}
	if debugf != nil {
		cfg.Logger = slog.New(slog.NewTextHandler(debugfWriter{debugf}, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	s, err := session.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Conn{s: s, logger: logger}, nil
}

// ResultStream wraps session.ResultStream so that cancelling the context
// passed to Execute asks the server to stop the query: the underlying
// watchdog goroutine is disarmed as soon as the stream is exhausted,
// errors out, or the caller stops reading and Close's it directly.
type ResultStream struct {
	*session.ResultStream
	once sync.Once
	stop func()
}

func (rs *ResultStream) Next() (*Block, error) {
	block, err := rs.ResultStream.Next()
	if err != nil {
		rs.disarm()
	}
	return block, err
}

func (rs *ResultStream) Drain() error {
	defer rs.disarm()
	return rs.ResultStream.Drain()
}

func (rs *ResultStream) disarm() {
	rs.once.Do(rs.stop)
}

// Execute runs a query and returns its result stream. Cancelling ctx
// while the stream is still open asks the server to stop via the
// session's Cancel and drains its remaining packets before io.EOF is
// returned from Next.
func (c *Conn) Execute(ctx context.Context, query string, settings map[string]string) (*ResultStream, error) {
	inner, err := c.s.Execute(ctx, query, settings)
	if err != nil {
		return nil, err
	}
	rs := &ResultStream{ResultStream: inner}
	rs.stop = contextWatchdog(ctx, func() {
		_ = c.s.Cancel(inner)
	})
	return rs, nil
}

// InsertBlock bulk-inserts one block of columns into table.
func (c *Conn) InsertBlock(ctx context.Context, table string, names []string, columns []column.Interface) error {
	return c.s.InsertBlock(ctx, table, names, columns)
}

// Ping verifies the connection is alive.
func (c *Conn) Ping(ctx context.Context) error {
	return c.s.Ping(ctx)
}

// Dispose closes the underlying connection. Idempotent.
func (c *Conn) Dispose() error {
	return c.s.Close()
}

type debugfWriter struct {
	debugf func(string, ...interface{})
}

func (w debugfWriter) Write(p []byte) (int, error) {
	w.debugf("%s", string(p))
	return len(p), nil
}
