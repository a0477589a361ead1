package session

import (
	"context"
	"fmt"
	"io"

	"github.com/clickhouse-native/chwire/lib/binary"
	"github.com/clickhouse-native/chwire/lib/column"
	"github.com/clickhouse-native/chwire/lib/proto"
	"github.com/clickhouse-native/chwire/lib/protocol"
	"github.com/clickhouse-native/chwire/lib/transport"
	"github.com/clickhouse-native/chwire/lib/writebuffer"
)

// ResultStream is a lazy sequence of Blocks, as returned by Execute. It
// also accumulates the Progress and ProfileInfo packets interleaved with
// the data, which the caller can inspect once the stream is drained.
type ResultStream struct {
	s    *Session
	done bool
	err  error

	Progress    proto.Progress
	ProfileInfo proto.ProfileInfo
}

// Next decodes and returns the next Block. It returns io.EOF once the
// server signals end of stream, after which the session is back in
// StateReady.
func (rs *ResultStream) Next() (*proto.Block, error) {
	if rs.done {
		return nil, io.EOF
	}
	for {
		opcode, err := rs.s.dec.Uvarint()
		if err != nil {
			return nil, rs.s.broken("result: read opcode", err)
		}
		switch opcode {
		case protocol.ServerData:
			block, err := rs.s.decodeDataPacket()
			if err != nil {
				return nil, rs.s.broken("result: decode block", err)
			}
			if block.Rows() == 0 {
				continue
			}
			return block, nil
		case protocol.ServerProgress:
			if err := rs.Progress.Decode(rs.s.dec, rs.s.revision); err != nil {
				return nil, rs.s.broken("result: decode progress", err)
			}
		case protocol.ServerProfileInfo:
			if err := rs.ProfileInfo.Decode(rs.s.dec, rs.s.revision); err != nil {
				return nil, rs.s.broken("result: decode profile info", err)
			}
		case protocol.ServerTotals, protocol.ServerExtremes:
			if _, err := rs.s.decodeDataPacket(); err != nil {
				return nil, rs.s.broken("result: decode totals/extremes", err)
			}
		case protocol.ServerTableColumns:
			var tc proto.TableColumns
			if err := tc.Decode(rs.s.dec, rs.s.revision); err != nil {
				return nil, rs.s.broken("result: decode table columns", err)
			}
		case protocol.ServerProfileEvents:
			if _, err := rs.s.decodeDataPacket(); err != nil {
				return nil, rs.s.broken("result: decode profile events", err)
			}
		case protocol.ServerLog:
			if _, err := rs.s.decodeDataPacket(); err != nil {
				return nil, rs.s.broken("result: decode log", err)
			}
		case protocol.ServerEndOfStream:
			rs.done = true
			rs.s.state = StateReady
			return nil, io.EOF
		case protocol.ServerException:
			exc, err := rs.s.decodeException()
			if err != nil {
				return nil, rs.s.broken("result: decode exception", err)
			}
			rs.done = true
			rs.s.state = StateReady
			rs.err = exc
			return nil, exc
		default:
			return nil, rs.s.broken("result", fmt.Errorf("unexpected opcode %d", opcode))
		}
	}
}

// Drain reads every remaining Block, discarding them, until EndOfStream.
// Useful for queries executed only for their side effects.
func (rs *ResultStream) Drain() error {
	for {
		if _, err := rs.Next(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// Execute sends a query and returns a stream of result Blocks. It
// transitions Ready -> SendingQuery -> ReceivingResult; the stream itself
// returns the session to Ready once exhausted.
func (s *Session) Execute(ctx context.Context, queryText string, settings map[string]string) (*ResultStream, error) {
	if s.state != StateReady {
		return nil, fmt.Errorf("session: execute called outside Ready state (got %s)", s.state)
	}
	s.state = StateSendingQuery
	if err := s.sendQuery(queryText, settings); err != nil {
		return nil, err
	}
	if err := s.sendEmptyDataPacket(); err != nil {
		return nil, err
	}
	s.state = StateReceivingResult
	return &ResultStream{s: s}, nil
}

// InsertBlock performs a bulk insert of one in-memory block of columns
// into table. It drives SendingQuery (the INSERT query text) followed by
// SendingData (the block itself) and then drains the server's
// acknowledgement back to Ready.
func (s *Session) InsertBlock(ctx context.Context, tableName string, names []string, columns []column.Interface) error {
	if s.state != StateReady {
		return fmt.Errorf("session: insert called outside Ready state (got %s)", s.state)
	}
	s.state = StateSendingQuery
	queryText := fmt.Sprintf("INSERT INTO %s (%s) VALUES", tableName, joinNames(names))
	if err := s.sendQuery(queryText, nil); err != nil {
		return err
	}

	s.state = StateSendingData
	block := proto.NewBlock(names, columns)
	if err := s.sendDataPacket(block); err != nil {
		return err
	}
	if err := s.sendEmptyDataPacket(); err != nil {
		return err
	}

	s.state = StateReceivingResult
	stream := &ResultStream{s: s}
	return stream.Drain()
}

// Cancel asks the server to stop executing the in-flight query. The
// session keeps draining server packets until EndOfStream or a further
// Exception, then returns to Ready, matching the cancellation behaviour
// of a still-connected driver.
func (s *Session) Cancel(stream *ResultStream) error {
	if s.state != StateReceivingResult {
		return fmt.Errorf("session: cancel called outside ReceivingResult state (got %s)", s.state)
	}
	if err := s.enc.Uvarint(protocol.ClientCancel); err != nil {
		return s.broken("cancel: write", err)
	}
	return stream.Drain()
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

func (s *Session) sendQuery(queryText string, settings map[string]string) error {
	if err := s.enc.Uvarint(protocol.ClientQuery); err != nil {
		return s.broken("query: write opcode", err)
	}
	q := proto.Query{
		Body:        queryText,
		Compression: s.cfg.Compression,
	}
	for k, v := range settings {
		q.Settings = append(q.Settings, proto.Setting{Key: k, Value: v})
	}
	if err := q.Encode(s.enc, s.revision); err != nil {
		return s.broken("query: encode", err)
	}
	return nil
}

// sendDataPacket writes one ClientData packet: opcode, empty table name,
// then the block payload. Compression, when negotiated, wraps only the
// block payload bytes (number of columns/rows plus each column's data),
// mirroring how the native protocol frames compression around block data
// rather than around opcodes or table names.
func (s *Session) sendDataPacket(block *proto.Block) error {
	if err := s.enc.Uvarint(protocol.ClientData); err != nil {
		return s.broken("data: write opcode", err)
	}
	if err := s.enc.String(""); err != nil {
		return s.broken("data: write table name", err)
	}
	return s.encodeBlockPayload(block)
}

func (s *Session) sendEmptyDataPacket() error {
	s.state = StateSendingData
	return s.sendDataPacket(&proto.Block{})
}

func (s *Session) encodeBlockPayload(block *proto.Block) error {
	if !s.cfg.Compression {
		return block.Encode(s.enc, s.revision)
	}
	staging := writebuffer.New(writebuffer.InitialSize)
	plain := binary.NewEncoder(staging)
	if err := block.Encode(plain, s.revision); err != nil {
		return s.broken("data: encode block", err)
	}
	cw := transport.NewCompressWriter(s.conn, 0)
	if _, err := cw.Write(staging.Bytes()); err != nil {
		return s.broken("data: write compressed block", err)
	}
	return cw.Flush()
}

func (s *Session) decodeDataPacket() (*proto.Block, error) {
	if _, err := s.dec.String(); err != nil { // table name
		return nil, err
	}
	return s.decodeBlockPayload()
}

func (s *Session) decodeBlockPayload() (*proto.Block, error) {
	block := &proto.Block{}
	if !s.cfg.Compression {
		if err := block.Decode(s.dec, s.revision, s.server.Timezone); err != nil {
			return nil, err
		}
		return block, nil
	}
	cr := transport.NewCompressReader(s.conn)
	plain := binary.NewDecoder(cr)
	if err := block.Decode(plain, s.revision, s.server.Timezone); err != nil {
		return nil, err
	}
	return block, nil
}
