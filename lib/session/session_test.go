package session

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clickhouse-native/chwire/lib/column"
	"github.com/clickhouse-native/chwire/lib/proto"
	chtesting "github.com/clickhouse-native/chwire/lib/testing"
)

func newTestServer(t *testing.T, handlers chtesting.PacketHandlers) *chtesting.TestServer {
	t.Helper()
	srv, err := chtesting.NewTestServer("127.0.0.1:0", handlers)
	require.NoError(t, err)
	srv.Start()
	t.Cleanup(func() { srv.Stop() })
	return srv
}

func testConfig(addr string) Config {
	return Config{
		Hosts:          []string{addr},
		ConnectTimeout: time.Second,
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
	}
}

func TestOpenHandshake(t *testing.T) {
	srv := newTestServer(t, chtesting.DefaultHandlers())

	s, err := Open(context.Background(), testConfig(srv.Address()))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, "ClickHouse", s.ServerInfo().Name)
}

func TestPing(t *testing.T) {
	srv := newTestServer(t, chtesting.DefaultHandlers())

	s, err := Open(context.Background(), testConfig(srv.Address()))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Ping(context.Background()))
	assert.Equal(t, StateReady, s.State())
}

func TestExecuteStreamsBlocks(t *testing.T) {
	handlers := chtesting.DefaultHandlers()
	handlers.OnQuery = func(q *proto.Query, in []*proto.Block, out chan<- *proto.Block) error {
		col, err := column.Factory("UInt32", nil)
		if err != nil {
			return err
		}
		if _, err := col.Append([]uint32{1, 2, 3}); err != nil {
			return err
		}
		out <- proto.NewBlock([]string{"n"}, []column.Interface{col})
		return nil
	}
	srv := newTestServer(t, handlers)

	s, err := Open(context.Background(), testConfig(srv.Address()))
	require.NoError(t, err)
	defer s.Close()

	stream, err := s.Execute(context.Background(), "SELECT n FROM numbers(3)", nil)
	require.NoError(t, err)

	block, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, 3, block.Rows())

	_, err = stream.Next()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, StateReady, s.State())
}

func TestInsertBlock(t *testing.T) {
	var gotRows int
	handlers := chtesting.DefaultHandlers()
	handlers.OnQuery = func(q *proto.Query, in []*proto.Block, out chan<- *proto.Block) error {
		for _, b := range in {
			gotRows += b.Rows()
		}
		return nil
	}
	srv := newTestServer(t, handlers)

	s, err := Open(context.Background(), testConfig(srv.Address()))
	require.NoError(t, err)
	defer s.Close()

	col, err := column.Factory("UInt32", nil)
	require.NoError(t, err)
	_, err = col.Append([]uint32{10, 20})
	require.NoError(t, err)

	err = s.InsertBlock(context.Background(), "events", []string{"n"}, []column.Interface{col})
	require.NoError(t, err)
	assert.Equal(t, 2, gotRows)
	assert.Equal(t, StateReady, s.State())
}

func TestExecuteRequiresReadyState(t *testing.T) {
	srv := newTestServer(t, chtesting.DefaultHandlers())
	s, err := Open(context.Background(), testConfig(srv.Address()))
	require.NoError(t, err)
	defer s.Close()

	s.state = StateBroken
	_, err = s.Execute(context.Background(), "SELECT 1", nil)
	require.Error(t, err)
}
