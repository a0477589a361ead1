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

package column

import (
	"fmt"
	"math/big"

	"github.com/clickhouse-native/chwire/lib/binary"
)

// BigInt backs Int128/Int256/UInt128/UInt256: wider than a Go int64, each
// row is a little-endian integer of size bytes, two's-complement when
// signed.
type BigInt struct {
	size   int
	signed bool
	data   []byte
	chType Type
}

func NewBigInt(t Type, size int, signed bool) *BigInt {
	return &BigInt{chType: t, size: size, signed: signed}
}

func (col *BigInt) Type() Type { return col.chType }

func (col *BigInt) Rows() int { return len(col.data) / col.size }

func (col *BigInt) RowValue(i int) interface{} { return col.row(i) }

func (col *BigInt) ScanRow(dest interface{}, row int) error {
	switch d := dest.(type) {
	case *big.Int:
		*d = *col.row(row)
	case **big.Int:
		*d = col.row(row)
	default:
		return &ColumnConverterError{Op: "ScanRow", To: fmt.Sprintf("%T", dest), From: string(col.chType)}
	}
	return nil
}

func (col *BigInt) Append(v interface{}) (nulls []uint8, err error) {
	switch v := v.(type) {
	case []big.Int:
		nulls = make([]uint8, len(v))
		for i := range v {
			col.append(&v[i])
		}
	case []*big.Int:
		nulls = make([]uint8, len(v))
		for i, v := range v {
			switch {
			case v != nil:
				col.append(v)
			default:
				col.data, nulls[i] = append(col.data, make([]byte, col.size)...), 1
			}
		}
	default:
		return nil, &ColumnConverterError{Op: "Append", To: string(col.chType), From: fmt.Sprintf("%T", v)}
	}
	return
}

func (col *BigInt) AppendRow(v interface{}) error {
	switch v := v.(type) {
	case big.Int:
		col.append(&v)
	case *big.Int:
		switch {
		case v != nil:
			col.append(v)
		default:
			col.data = append(col.data, make([]byte, col.size)...)
		}
	case null:
		col.data = append(col.data, make([]byte, col.size)...)
	default:
		return &ColumnConverterError{Op: "AppendRow", To: string(col.chType), From: fmt.Sprintf("%T", v)}
	}
	return nil
}

func (col *BigInt) Decode(decoder *binary.Decoder, rows int) error {
	data, err := decoder.Fixed(rows * col.size)
	if err != nil {
		return err
	}
	col.data = data
	return nil
}

func (col *BigInt) Skip(decoder *binary.Decoder, rows int) error {
	return decoder.Skip(rows * col.size)
}

func (col *BigInt) Encode(encoder *binary.Encoder) error {
	return encoder.Raw(col.data)
}

func (col *BigInt) row(i int) *big.Int {
	raw := col.data[i*col.size : (i+1)*col.size]
	if col.signed {
		return leToBigInt(raw)
	}
	be := make([]byte, len(raw))
	for i, c := range raw {
		be[len(raw)-1-i] = c
	}
	return new(big.Int).SetBytes(be)
}

func (col *BigInt) append(v *big.Int) {
	col.data = append(col.data, bigIntToLE(v, col.size)...)
}

var _ Interface = (*BigInt)(nil)
