package column

import "github.com/clickhouse-native/chwire/lib/binary"

// decodeUint8s and encodeUint8s give Nullable's null mask and other raw
// byte bookkeeping (LowCardinality's narrowest key width) a loop without
// pulling in a full Numeric[T] column for a slice nothing else observes as
// a column in its own right.
func decodeUint8s(decoder *binary.Decoder, rows int) ([]uint8, error) {
	out := make([]uint8, rows)
	for i := range out {
		v, err := decoder.UInt8()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func encodeUint8s(encoder *binary.Encoder, v []uint8) error {
	for _, b := range v {
		if err := encoder.UInt8(b); err != nil {
			return err
		}
	}
	return nil
}

func decodeUint16s(decoder *binary.Decoder, rows int) ([]uint16, error) {
	out := make([]uint16, rows)
	for i := range out {
		v, err := decoder.UInt16()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func encodeUint16s(encoder *binary.Encoder, v []uint16) error {
	for _, b := range v {
		if err := encoder.UInt16(b); err != nil {
			return err
		}
	}
	return nil
}

func decodeUint32s(decoder *binary.Decoder, rows int) ([]uint32, error) {
	out := make([]uint32, rows)
	for i := range out {
		v, err := decoder.UInt32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func encodeUint32s(encoder *binary.Encoder, v []uint32) error {
	for _, b := range v {
		if err := encoder.UInt32(b); err != nil {
			return err
		}
	}
	return nil
}

func decodeUint64s(decoder *binary.Decoder, rows int) ([]uint64, error) {
	out := make([]uint64, rows)
	for i := range out {
		v, err := decoder.UInt64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func encodeUint64s(encoder *binary.Encoder, v []uint64) error {
	for _, b := range v {
		if err := encoder.UInt64(b); err != nil {
			return err
		}
	}
	return nil
}
