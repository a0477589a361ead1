package transport

import (
	"fmt"
	"io"

	"github.com/clickhouse-native/chwire/lib/bytebuffer"
	"github.com/clickhouse-native/chwire/lib/lz4frame"
)

// CompressWriter buffers primitive writes and flushes them as a sequence
// of LZ4-framed compression blocks, the staging layer described in the
// binary writer's begin_compress/end_compress pair. Everything written
// between two Flush calls becomes one block (or several, if it exceeds
// the block size).
type CompressWriter struct {
	dst       io.Writer
	staging   *bytebuffer.Buffer
	blockSize int
}

// NewCompressWriter returns a CompressWriter that accumulates up to
// blockSize bytes per compression block before framing and writing to dst.
func NewCompressWriter(dst io.Writer, blockSize int) *CompressWriter {
	if blockSize <= 0 {
		blockSize = lz4frame.DefaultBlockSize
	}
	return &CompressWriter{
		dst:       dst,
		staging:   bytebuffer.New(blockSize, 0),
		blockSize: blockSize,
	}
}

// Write stages b for compression, emitting full blocks to dst as the
// staging buffer fills.
func (w *CompressWriter) Write(b []byte) (int, error) {
	written := 0
	for len(b) > 0 {
		window := w.staging.GetMemory(0)
		n := copy(window, b)
		w.staging.ConfirmWrite(n)
		w.staging.Flush()
		written += n
		b = b[n:]
		if w.staging.Len() >= w.blockSize {
			if err := w.flushBlock(); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

// Flush emits a final, possibly short, compression block for any bytes
// staged so far. Calling it with nothing staged is a no-op.
func (w *CompressWriter) Flush() error {
	if w.staging.Len() == 0 {
		return nil
	}
	return w.flushBlock()
}

func (w *CompressWriter) flushBlock() error {
	chunk := w.staging.Read()
	if len(chunk) == 0 {
		return nil
	}
	take := chunk
	if len(take) > w.blockSize {
		take = take[:w.blockSize]
	}
	framed, err := lz4frame.EncodeBlock(nil, take)
	if err != nil {
		return err
	}
	if _, err := w.dst.Write(framed); err != nil {
		return err
	}
	w.staging.ConfirmRead(len(take))
	return nil
}

// CompressReader decodes a stream of LZ4-framed compression blocks from
// src, serving the decompressed bytes through Read as though they were
// raw, the dual of CompressWriter.
type CompressReader struct {
	src     io.Reader
	decoded *bytebuffer.Buffer
	header  [lz4frame.HeaderSize]byte
}

// NewCompressReader returns a CompressReader pulling framed blocks from
// src.
func NewCompressReader(src io.Reader) *CompressReader {
	return &CompressReader{
		src:     src,
		decoded: bytebuffer.New(lz4frame.DefaultBlockSize, 0),
	}
}

func (r *CompressReader) Read(b []byte) (int, error) {
	if r.decoded.Len() == 0 {
		if err := r.fillBlock(); err != nil {
			return 0, err
		}
	}
	n := copy(b, r.decoded.Read())
	r.decoded.ConfirmRead(n)
	return n, nil
}

func (r *CompressReader) fillBlock() error {
	if _, err := io.ReadFull(r.src, r.header[:]); err != nil {
		return fmt.Errorf("lz4frame: reading block header: %w", err)
	}
	compressedSizeWithHeader, err := lz4frame.PeekHeader(r.header[:])
	if err != nil {
		return err
	}
	bodySize := compressedSizeWithHeader - 9
	block := make([]byte, lz4frame.HeaderSize+bodySize)
	copy(block, r.header[:])
	if _, err := io.ReadFull(r.src, block[lz4frame.HeaderSize:]); err != nil {
		return fmt.Errorf("lz4frame: reading block body: %w", err)
	}

	decoded, err := lz4frame.DecodeBlock(nil, block)
	if err != nil {
		return err
	}
	window := r.decoded.GetMemory(len(decoded))
	n := copy(window, decoded)
	r.decoded.ConfirmWrite(n)
	r.decoded.Flush()
	return nil
}
