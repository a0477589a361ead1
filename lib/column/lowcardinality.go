package column

import (
	"fmt"
	"math"
	"time"

	"github.com/clickhouse-native/chwire/lib/binary"
)

const indexTypeMask = 0b11111111

const (
	keyUInt8  = 0
	keyUInt16 = 1
	keyUInt32 = 2
	keyUInt64 = 3
)

const (
	needGlobalDictionaryBit = 1 << 8
	hasAdditionalKeysBit    = 1 << 9
	needUpdateDictionary    = 1 << 10

	updateAll = hasAdditionalKeysBit | needUpdateDictionary
)

const sharedDictionariesWithAdditionalKeys = 1

// LowCardinality stores a dictionary of distinct values (index) plus one
// key per row referencing it; the key width grows from uint8 to uint64 as
// the dictionary does, decided only at Encode time.
//
// https://github.com/ClickHouse/ClickHouse/blob/master/src/Columns/ColumnLowCardinality.cpp
type LowCardinality struct {
	chType Type
	key    byte
	index  Interface

	keys8  []uint8
	keys16 []uint16
	keys32 []uint32
	keys64 []uint64

	tmpIdx map[interface{}]int
	tmpKey []int
}

func NewLowCardinality(t Type, index Interface) (*LowCardinality, error) {
	return &LowCardinality{chType: t, index: index, tmpIdx: make(map[interface{}]int)}, nil
}

func (col *LowCardinality) Type() Type { return col.chType }

func (col *LowCardinality) Rows() int {
	if len(col.tmpKey) != 0 {
		return len(col.tmpKey)
	}
	switch col.key {
	case keyUInt8:
		return len(col.keys8)
	case keyUInt16:
		return len(col.keys16)
	case keyUInt32:
		return len(col.keys32)
	default:
		return len(col.keys64)
	}
}

func (col *LowCardinality) RowValue(row int) interface{} {
	return col.index.RowValue(col.indexRowNum(row))
}

func (col *LowCardinality) ScanRow(dest interface{}, row int) error {
	return col.index.ScanRow(dest, col.indexRowNum(row))
}

func (col *LowCardinality) Append(v interface{}) (nulls []uint8, err error) {
	return nil, &ColumnConverterError{Op: "Append", To: string(col.chType), From: fmt.Sprintf("%T", v), Hint: "append one row at a time"}
}

func (col *LowCardinality) AppendRow(v interface{}) error {
	if t, ok := v.(time.Time); ok {
		v = t.Truncate(time.Second)
	}
	if _, found := col.tmpIdx[v]; !found {
		if v == nil {
			return fmt.Errorf("clickhouse: LowCardinality does not support NULL values")
		}
		if err := col.index.AppendRow(v); err != nil {
			return err
		}
		col.tmpIdx[v] = col.index.Rows() - 1
	}
	col.tmpKey = append(col.tmpKey, col.tmpIdx[v])
	return nil
}

func (col *LowCardinality) Decode(decoder *binary.Decoder, _ int) error {
	keyVersion, err := decoder.UInt64()
	if err != nil {
		return err
	}
	if keyVersion != sharedDictionariesWithAdditionalKeys {
		return &LowCardinalityDecode{Msg: "invalid key serialization version value"}
	}
	indexSerializationType, err := decoder.UInt64()
	if err != nil {
		return err
	}
	col.key = byte(indexSerializationType & indexTypeMask)
	switch col.key {
	case keyUInt8, keyUInt16, keyUInt32, keyUInt64:
	default:
		return &LowCardinalityDecode{Msg: "invalid index serialization version value"}
	}
	switch {
	case indexSerializationType&needGlobalDictionaryBit != 0:
		return &LowCardinalityDecode{Msg: "global dictionary is not supported"}
	case indexSerializationType&hasAdditionalKeysBit == 0:
		return &LowCardinalityDecode{Msg: "additional keys bit is missing"}
	}
	indexRows, err := decoder.Int64()
	if err != nil {
		return err
	}
	if err := col.index.Decode(decoder, int(indexRows)); err != nil {
		return err
	}
	keysRows, err := decoder.Int64()
	if err != nil {
		return err
	}
	switch col.key {
	case keyUInt8:
		col.keys8, err = decodeUint8s(decoder, int(keysRows))
	case keyUInt16:
		col.keys16, err = decodeUint16s(decoder, int(keysRows))
	case keyUInt32:
		col.keys32, err = decodeUint32s(decoder, int(keysRows))
	default:
		col.keys64, err = decodeUint64s(decoder, int(keysRows))
	}
	return err
}

// Skip mirrors Decode's header parsing but routes the dictionary through
// the index column's own Skip and discards the key block outright, so
// neither the dictionary nor the per-row keys are materialised.
func (col *LowCardinality) Skip(decoder *binary.Decoder, rows int) error {
	keyVersion, err := decoder.UInt64()
	if err != nil {
		return err
	}
	if keyVersion != sharedDictionariesWithAdditionalKeys {
		return &LowCardinalityDecode{Msg: "invalid key serialization version value"}
	}
	indexSerializationType, err := decoder.UInt64()
	if err != nil {
		return err
	}
	key := byte(indexSerializationType & indexTypeMask)
	var width int
	switch key {
	case keyUInt8:
		width = 1
	case keyUInt16:
		width = 2
	case keyUInt32:
		width = 4
	case keyUInt64:
		width = 8
	default:
		return &LowCardinalityDecode{Msg: "invalid index serialization version value"}
	}
	switch {
	case indexSerializationType&needGlobalDictionaryBit != 0:
		return &LowCardinalityDecode{Msg: "global dictionary is not supported"}
	case indexSerializationType&hasAdditionalKeysBit == 0:
		return &LowCardinalityDecode{Msg: "additional keys bit is missing"}
	}
	indexRows, err := decoder.Int64()
	if err != nil {
		return err
	}
	if err := col.index.Skip(decoder, int(indexRows)); err != nil {
		return err
	}
	keysRows, err := decoder.Int64()
	if err != nil {
		return err
	}
	return decoder.Skip(int(keysRows) * width)
}

func (col *LowCardinality) Encode(encoder *binary.Encoder) error {
	defer func() { col.tmpIdx, col.tmpKey = nil, nil }()
	dictSize := col.index.Rows()
	switch {
	case dictSize < math.MaxUint8:
		col.key = keyUInt8
		col.keys8 = make([]uint8, len(col.tmpKey))
		for i, v := range col.tmpKey {
			col.keys8[i] = uint8(v)
		}
	case dictSize < math.MaxUint16:
		col.key = keyUInt16
		col.keys16 = make([]uint16, len(col.tmpKey))
		for i, v := range col.tmpKey {
			col.keys16[i] = uint16(v)
		}
	case uint64(dictSize) < math.MaxUint32:
		col.key = keyUInt32
		col.keys32 = make([]uint32, len(col.tmpKey))
		for i, v := range col.tmpKey {
			col.keys32[i] = uint32(v)
		}
	default:
		col.key = keyUInt64
		col.keys64 = make([]uint64, len(col.tmpKey))
		for i, v := range col.tmpKey {
			col.keys64[i] = uint64(v)
		}
	}
	if err := encoder.UInt64(sharedDictionariesWithAdditionalKeys); err != nil {
		return err
	}
	if err := encoder.UInt64(updateAll | uint64(col.key)); err != nil {
		return err
	}
	if err := encoder.Int64(int64(col.index.Rows())); err != nil {
		return err
	}
	if err := col.index.Encode(encoder); err != nil {
		return err
	}
	if err := encoder.Int64(int64(col.Rows())); err != nil {
		return err
	}
	switch col.key {
	case keyUInt8:
		return encodeUint8s(encoder, col.keys8)
	case keyUInt16:
		return encodeUint16s(encoder, col.keys16)
	case keyUInt32:
		return encodeUint32s(encoder, col.keys32)
	default:
		return encodeUint64s(encoder, col.keys64)
	}
}

func (col *LowCardinality) indexRowNum(row int) int {
	switch col.key {
	case keyUInt8:
		return int(col.keys8[row])
	case keyUInt16:
		return int(col.keys16[row])
	case keyUInt32:
		return int(col.keys32[row])
	default:
		return int(col.keys64[row])
	}
}

var _ Interface = (*LowCardinality)(nil)
