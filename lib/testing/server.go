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

package testing

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/clickhouse-native/chwire/lib/binary"
	"github.com/clickhouse-native/chwire/lib/proto"
	"github.com/clickhouse-native/chwire/lib/protocol"
)

// TestServer is a mock ClickHouse server used by transport and session
// tests, decoding and encoding packets with this module's own wire codec
// rather than a live ClickHouse instance.
type TestServer struct {
	listener net.Listener
	handlers PacketHandlers
	revision uint64
	done     chan struct{}
}

// PacketHandlers contains handlers for different protocol packets.
type PacketHandlers struct {
	OnClientHandshake func(handshake proto.ClientHandshake) (proto.ServerHandshake, error)
	OnQuery           func(*proto.Query, []*proto.Block, chan<- *proto.Block) error
	OnCancel          func() error
	OnPing            func() error
	OnUnknownPacket   func(packetType uint64, data []byte) error
}

// DefaultHandlers returns a set of handlers that provide basic responses.
func DefaultHandlers() PacketHandlers {
	return PacketHandlers{
		OnClientHandshake: func(handshake proto.ClientHandshake) (proto.ServerHandshake, error) {
			return proto.ServerHandshake{
				Name:        "ClickHouse",
				DisplayName: "ClickHouse Test Server",
				Revision:    protocol.DBMS_MIN_REVISION_WITH_VERSION_PATCH,
				Version:     proto.Version{Major: 25, Minor: 6, Patch: 0},
				Timezone:    time.UTC,
			}, nil
		},
		OnQuery: func(*proto.Query, []*proto.Block, chan<- *proto.Block) error {
			return nil
		},
		OnCancel: func() error { return nil },
		OnPing:   func() error { return nil },
		OnUnknownPacket: func(packetType uint64, data []byte) error {
			return fmt.Errorf("unknown packet type: %d", packetType)
		},
	}
}

// NewTestServer creates a new test server with the given handlers.
func NewTestServer(address string, handlers PacketHandlers) (*TestServer, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %v", address, err)
	}
	return &TestServer{
		listener: listener,
		handlers: handlers,
		revision: protocol.DBMS_MIN_REVISION_WITH_VERSION_PATCH,
		done:     make(chan struct{}),
	}, nil
}

// Start begins accepting connections and handling requests.
func (ts *TestServer) Start() {
	go ts.acceptConnections()
}

// Stop stops the test server.
func (ts *TestServer) Stop() error {
	close(ts.done)
	return ts.listener.Close()
}

// Address returns the address the server is listening on.
func (ts *TestServer) Address() string {
	return ts.listener.Addr().String()
}

func (ts *TestServer) acceptConnections() {
	for {
		select {
		case <-ts.done:
			return
		default:
		}

		conn, err := ts.listener.Accept()
		if err != nil {
			select {
			case <-ts.done:
				return
			default:
				continue
			}
		}
		go ts.handleConnection(conn)
	}
}

func (ts *TestServer) handleConnection(conn net.Conn) {
	defer conn.Close()

	decoder := binary.NewDecoder(conn)
	encoder := binary.NewEncoder(conn)

	for {
		select {
		case <-ts.done:
			return
		default:
		}

		packetType, err := decoder.Uvarint()
		if err != nil {
			return
		}

		slog.Debug("packet type", "type", packetType)

		if err := ts.handlePacket(decoder, encoder, packetType); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			slog.Error("handling packet", "error", err)
			if serr := ts.sendException(encoder, err); serr != nil {
				return
			}
		}
	}
}

func (ts *TestServer) handlePacket(decoder *binary.Decoder, encoder *binary.Encoder, packetType uint64) error {
	switch packetType {
	case protocol.ClientHello:
		return ts.handleClientHandshake(decoder, encoder)
	case protocol.ClientQuery:
		return ts.handleQuery(decoder, encoder)
	case protocol.ClientData:
		return errors.New("unexpected block outside of a query")
	case protocol.ClientCancel:
		return ts.handlers.OnCancel()
	case protocol.ClientPing:
		return ts.handlePing(encoder)
	default:
		return ts.handlers.OnUnknownPacket(packetType, nil)
	}
}

func (ts *TestServer) handleClientHandshake(decoder *binary.Decoder, encoder *binary.Encoder) error {
	var handshake proto.ClientHandshake
	if err := handshake.Decode(decoder); err != nil {
		return err
	}

	var auth struct {
		database string
		username string
		password string
	}
	var err error
	if auth.database, err = decoder.String(); err != nil {
		return err
	}
	if auth.username, err = decoder.String(); err != nil {
		return err
	}
	if auth.password, err = decoder.String(); err != nil {
		return err
	}

	slog.Debug("handling handshake", "handshake", handshake, "auth", auth)

	serverHandshake, err := ts.handlers.OnClientHandshake(handshake)
	if err != nil {
		return err
	}
	ts.revision = serverHandshake.Revision

	if err := encoder.Uvarint(protocol.ServerHello); err != nil {
		return err
	}
	return serverHandshake.Encode(encoder)
}

func (ts *TestServer) handleQuery(decoder *binary.Decoder, encoder *binary.Encoder) error {
	query := &proto.Query{}
	if err := query.Decode(decoder, ts.revision); err != nil {
		return fmt.Errorf("handling query: %w", err)
	}

	inBlocks, err := ts.readBlocks(decoder)
	if err != nil {
		return fmt.Errorf("handling query blocks: %w", err)
	}

	slog.Debug("handling query", "query", query, "blocks", len(inBlocks))

	outBlocks := make(chan *proto.Block)
	var handlerErr error
	go func() {
		defer close(outBlocks)
		handlerErr = ts.handlers.OnQuery(query, inBlocks, outBlocks)
	}()

	for block := range outBlocks {
		if err := encoder.Uvarint(protocol.ServerData); err != nil {
			return err
		}
		if err := encoder.String(""); err != nil { // table name, always empty
			return err
		}
		if err := block.Encode(encoder, ts.revision); err != nil {
			return err
		}
	}

	if handlerErr != nil {
		return handlerErr
	}
	return ts.sendEndOfStream(encoder)
}

func (ts *TestServer) readBlocks(decoder *binary.Decoder) (blocks []*proto.Block, _ error) {
	for {
		packetType, err := decoder.Uvarint()
		if err != nil {
			return nil, err
		}

		switch packetType {
		case protocol.ClientData:
			if _, err := decoder.String(); err != nil { // table name
				return nil, err
			}
			var block proto.Block
			if err := block.Decode(decoder, ts.revision, time.UTC); err != nil {
				return nil, fmt.Errorf("failed to decode data block: %v", err)
			}
			if block.Rows() == 0 {
				return blocks, nil
			}
			blocks = append(blocks, &block)
		case protocol.ClientCancel:
			return nil, ts.handlers.OnCancel()
		default:
			return nil, fmt.Errorf("unexpected packet type %d while reading query data blocks", packetType)
		}
	}
}

func (ts *TestServer) handlePing(encoder *binary.Encoder) error {
	if err := ts.handlers.OnPing(); err != nil {
		return err
	}
	return encoder.Uvarint(protocol.ServerPong)
}

func (ts *TestServer) sendEndOfStream(encoder *binary.Encoder) error {
	return encoder.Uvarint(protocol.ServerEndOfStream)
}

func (ts *TestServer) sendException(encoder *binary.Encoder, err error) error {
	if werr := encoder.Uvarint(protocol.ServerException); werr != nil {
		return werr
	}
	if werr := encoder.Int32(1); werr != nil { // exception code
		return werr
	}
	if werr := encoder.String("TestServer"); werr != nil {
		return werr
	}
	if werr := encoder.String(err.Error()); werr != nil {
		return werr
	}
	if werr := encoder.String(""); werr != nil { // stack trace
		return werr
	}
	return encoder.Bool(false) // nested
}

// SendProgress writes a progress packet directly to conn, bypassing the
// handler loop. Tests use this to simulate a server pushing progress
// updates mid-query.
func (ts *TestServer) SendProgress(conn net.Conn, readRows, readBytes, totalRows uint64) error {
	encoder := binary.NewEncoder(conn)
	if err := encoder.Uvarint(protocol.ServerProgress); err != nil {
		return err
	}
	if err := encoder.Uvarint(readRows); err != nil {
		return err
	}
	if err := encoder.Uvarint(readBytes); err != nil {
		return err
	}
	return encoder.Uvarint(totalRows)
}
