// Package session implements the connection-level state machine: one TCP
// connection to a ClickHouse server, taken through handshake, query
// execution, bulk insert, and back to idle, exactly once at a time.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clickhouse-native/chwire/lib/binary"
	"github.com/clickhouse-native/chwire/lib/proto"
	"github.com/clickhouse-native/chwire/lib/protocol"
	"github.com/clickhouse-native/chwire/lib/transport"
)

// State is one node of the session state machine described in the
// component design: New -> HandshakingOut -> HandshakingIn -> Ready, then
// cycling through SendingQuery/SendingData/ReceivingResult back to Ready,
// with Broken and Closed as terminals.
type State int

const (
	StateNew State = iota
	StateHandshakingOut
	StateHandshakingIn
	StateReady
	StateSendingQuery
	StateSendingData
	StateReceivingResult
	StateBroken
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateHandshakingOut:
		return "handshaking-out"
	case StateHandshakingIn:
		return "handshaking-in"
	case StateReady:
		return "ready"
	case StateSendingQuery:
		return "sending-query"
	case StateSendingData:
		return "sending-data"
	case StateReceivingResult:
		return "receiving-result"
	case StateBroken:
		return "broken"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Config carries everything Open needs to establish one session. It is
// deliberately smaller than the caller-facing Options: pooling, DSN
// parsing and HTTP fall outside the core's scope.
type Config struct {
	Hosts          []string
	Database       string
	Username       string
	Password       string
	Compression    bool
	NoDelay        bool
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	Logger         *slog.Logger
}

// BrokenError marks a fatal protocol violation: a framing error, checksum
// mismatch, unexpected opcode, or I/O failure that leaves the session
// unusable. Once returned by any method, the session is in StateBroken and
// must be closed.
type BrokenError struct {
	Op  string
	Err error
}

func (e *BrokenError) Error() string { return fmt.Sprintf("session: %s: %v", e.Op, e.Err) }
func (e *BrokenError) Unwrap() error { return e.Err }

// Session is one negotiated connection to a ClickHouse server. It is not
// safe for concurrent use: the scheduling model is single-threaded
// cooperative, matching one owned byte stream.
type Session struct {
	cfg    Config
	conn   *transport.Conn
	dec    *binary.Decoder
	enc    *binary.Encoder
	logger *slog.Logger

	state    State
	revision uint64
	server   proto.ServerHandshake
}

// Open dials one of cfg.Hosts, performs the native handshake, and returns a
// Session in StateReady. A server Exception during handshake is fatal.
func Open(ctx context.Context, cfg Config) (*Session, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(discard{}, nil))
	}

	dialTimeout := cfg.ConnectTimeout
	if dialTimeout == 0 {
		dialTimeout = time.Second
	}
	conn, err := transport.Dial("tcp", cfg.Hosts, cfg.NoDelay, dialTimeout, cfg.ReadTimeout, cfg.WriteTimeout,
		func(format string, args ...interface{}) { logger.Debug(fmt.Sprintf(format, args...)) })
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:    cfg,
		conn:   conn,
		dec:    binary.NewDecoder(conn),
		enc:    binary.NewEncoder(conn),
		logger: logger,
		state:  StateNew,
	}
	if err := s.handshake(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) handshake(ctx context.Context) error {
	s.state = StateHandshakingOut
	if err := s.enc.Uvarint(protocol.ClientHello); err != nil {
		return s.broken("handshake: write opcode", err)
	}
	var hello proto.ClientHandshake
	if err := hello.Encode(s.enc); err != nil {
		return s.broken("handshake: encode client hello", err)
	}
	database := s.cfg.Database
	if database == "" {
		database = "default"
	}
	username := s.cfg.Username
	if username == "" {
		username = "default"
	}
	if err := s.enc.String(database); err != nil {
		return s.broken("handshake: write database", err)
	}
	if err := s.enc.String(username); err != nil {
		return s.broken("handshake: write username", err)
	}
	if err := s.enc.String(s.cfg.Password); err != nil {
		return s.broken("handshake: write password", err)
	}

	s.state = StateHandshakingIn
	opcode, err := s.dec.Uvarint()
	if err != nil {
		return s.broken("handshake: read opcode", err)
	}
	switch opcode {
	case protocol.ServerHello:
		if err := s.server.Decode(s.dec); err != nil {
			return s.broken("handshake: decode server hello", err)
		}
	case protocol.ServerException:
		exc, err := s.decodeException()
		if err != nil {
			return s.broken("handshake: decode exception", err)
		}
		s.state = StateBroken
		return exc
	default:
		return s.broken("handshake", fmt.Errorf("unexpected opcode %d", opcode))
	}

	s.revision = s.server.Revision
	if s.revision > protocol.DBMS_TCP_PROTOCOL_VERSION {
		s.revision = protocol.DBMS_TCP_PROTOCOL_VERSION
	}
	s.logger.Debug("handshake complete", "server", s.server.String(), "revision", s.revision)
	s.state = StateReady
	return nil
}

func (s *Session) decodeException() (*proto.Exception, error) {
	var exc proto.Exception
	if err := exc.Decode(s.dec); err != nil {
		return nil, err
	}
	return &exc, nil
}

func (s *Session) broken(op string, err error) error {
	s.state = StateBroken
	berr := &BrokenError{Op: op, Err: err}
	s.logger.Debug("session broken", "op", op, "error", err)
	return berr
}

// State reports the session's current state.
func (s *Session) State() State { return s.state }

// Revision is the protocol revision latched at handshake, min(client, server).
func (s *Session) Revision() uint64 { return s.revision }

// ServerInfo is the server's handshake response.
func (s *Session) ServerInfo() proto.ServerHandshake { return s.server }

// Ping sends a Ping and waits for Pong.
func (s *Session) Ping(ctx context.Context) error {
	if s.state != StateReady {
		return fmt.Errorf("session: ping called outside Ready state (got %s)", s.state)
	}
	if err := s.enc.Uvarint(protocol.ClientPing); err != nil {
		return s.broken("ping: write", err)
	}
	opcode, err := s.dec.Uvarint()
	if err != nil {
		return s.broken("ping: read", err)
	}
	if opcode != protocol.ServerPong {
		return s.broken("ping", fmt.Errorf("expected pong, got opcode %d", opcode))
	}
	return nil
}

// Close tears down the underlying connection. Idempotent.
func (s *Session) Close() error {
	if s.state == StateClosed {
		return nil
	}
	s.state = StateClosed
	return s.conn.Close()
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
