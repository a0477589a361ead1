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
	"net"

	"github.com/clickhouse-native/chwire/lib/binary"
)

const ipv4Size = 4

type IPv4 struct {
	data []byte
}

func NewIPv4() *IPv4 { return &IPv4{} }

func (col *IPv4) Type() Type { return "IPv4" }

func (col *IPv4) Rows() int { return len(col.data) / ipv4Size }

func (col *IPv4) RowValue(i int) interface{} { return col.row(i) }

func (col *IPv4) ScanRow(dest interface{}, row int) error {
	switch d := dest.(type) {
	case *string:
		*d = col.row(row).String()
	case **string:
		*d = new(string)
		**d = col.row(row).String()
	case *net.IP:
		*d = col.row(row)
	case **net.IP:
		*d = new(net.IP)
		**d = col.row(row)
	default:
		return &ColumnConverterError{Op: "ScanRow", To: fmt.Sprintf("%T", dest), From: "IPv4"}
	}
	return nil
}

// appendIPv4 appends the little-endian 4-byte wire form of ip.
func appendIPv4(data []byte, ip net.IP) ([]byte, error) {
	v4 := ip.To4()
	if v4 == nil {
		return nil, &ColumnConverterError{Op: "Append", To: "IPv4", Hint: "invalid IP version"}
	}
	return append(data, v4[3], v4[2], v4[1], v4[0]), nil
}

func appendIPv4Str(data []byte, strIP string) ([]byte, error) {
	ip := net.ParseIP(strIP)
	if ip == nil {
		return nil, &ColumnConverterError{Op: "Append", To: "IPv4", Hint: "invalid IP format"}
	}
	return appendIPv4(data, ip)
}

func (col *IPv4) appendIPv4(ip net.IP) (err error) {
	col.data, err = appendIPv4(col.data, ip)
	return
}

func (col *IPv4) appendIPv4Str(strIP string) (err error) {
	col.data, err = appendIPv4Str(col.data, strIP)
	return
}

func (col *IPv4) appendEmptyIPv4() error {
	col.data = append(col.data, make([]byte, ipv4Size)...)
	return nil
}

func (col *IPv4) Append(v interface{}) (nulls []uint8, err error) {
	var data []byte

	switch v := v.(type) {
	case []string:
		nulls = make([]uint8, len(v))
		for _, v := range v {
			data, err = appendIPv4Str(data, v)
			if err != nil {
				return
			}
		}
	case []*string:
		nulls = make([]uint8, len(v))
		for i, v := range v {
			switch {
			case v != nil:
				data, err = appendIPv4Str(data, *v)
				if err != nil {
					return
				}
			default:
				data, nulls[i] = append(data, make([]byte, ipv4Size)...), 1
			}
		}
	case []net.IP:
		nulls = make([]uint8, len(v))
		for _, v := range v {
			data, err = appendIPv4(data, v)
			if err != nil {
				return
			}
		}
	case []*net.IP:
		nulls = make([]uint8, len(v))
		for i, v := range v {
			switch {
			case v != nil:
				data, err = appendIPv4(data, *v)
				if err != nil {
					return
				}
			default:
				data, nulls[i] = append(data, make([]byte, ipv4Size)...), 1
			}
		}
	default:
		return nil, &ColumnConverterError{Op: "Append", To: "IPv4", From: fmt.Sprintf("%T", v)}
	}

	col.data = append(col.data, data...)
	return
}

func (col *IPv4) AppendRow(v interface{}) (err error) {
	switch v := v.(type) {
	case string:
		err = col.appendIPv4Str(v)
	case *string:
		switch {
		case v != nil:
			err = col.appendIPv4Str(*v)
		default:
			err = col.appendEmptyIPv4()
		}
	case net.IP:
		err = col.appendIPv4(v)
	case *net.IP:
		switch {
		case v != nil:
			err = col.appendIPv4(*v)
		default:
			err = col.appendEmptyIPv4()
		}
	case null:
		err = col.appendEmptyIPv4()
	default:
		return &ColumnConverterError{Op: "AppendRow", To: "IPv4", From: fmt.Sprintf("%T", v)}
	}
	return
}

func (col *IPv4) Decode(decoder *binary.Decoder, rows int) error {
	data, err := decoder.Fixed(ipv4Size * rows)
	if err != nil {
		return err
	}
	col.data = data
	return nil
}

func (col *IPv4) Skip(decoder *binary.Decoder, rows int) error {
	return decoder.Skip(ipv4Size * rows)
}

func (col *IPv4) Encode(encoder *binary.Encoder) error {
	return encoder.Raw(col.data)
}

func (col *IPv4) row(i int) net.IP {
	v := col.data[i*ipv4Size : (i+1)*ipv4Size]
	return net.IPv4(v[3], v[2], v[1], v[0])
}

// reinterpretUint32 views the wire bytes as the network-order uint32 an
// address like 192.168.1.1 is conventionally displayed as (0xC0A80101),
// without touching net.IP. The wire layout is already the little-endian
// encoding of that value, so no per-row arithmetic is needed.
func (col *IPv4) reinterpretUint32() ([]uint32, bool) {
	out := make([]uint32, col.Rows())
	for i := range out {
		v := col.data[i*ipv4Size : (i+1)*ipv4Size]
		out[i] = uint32(v[0]) | uint32(v[1])<<8 | uint32(v[2])<<16 | uint32(v[3])<<24
	}
	return out, true
}

// reinterpretIPStrings views the column as dotted-quad strings.
func (col *IPv4) reinterpretIPStrings() ([]string, bool) {
	out := make([]string, col.Rows())
	for i := range out {
		out[i] = col.row(i).String()
	}
	return out, true
}

var _ Interface = (*IPv4)(nil)
