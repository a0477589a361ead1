// Package cityhash ports the CityHash v1.0.2 128-bit hash ClickHouse uses
// to checksum compressed blocks on the wire. Other CityHash revisions mix
// their short-string path and their seed constants differently and produce
// a different digest for the same bytes, so the rotate/shift/fetch
// sequence below must track the v1.0.2 source precisely, not the 1.1
// rewrite most standalone CityHash packages ship today.
package cityhash

import "encoding/binary"

const (
	k0 uint64 = 0xc3a5c85c97cb3127
	k1 uint64 = 0xb492b66fbe98f273
	k2 uint64 = 0x9ae16a3b2f90404f
	k3 uint64 = 0xc949d7c7509e6557
)

// Uint128 is a 128-bit hash result, stored as two 64-bit halves.
type Uint128 struct {
	first, second uint64
}

func (u Uint128) Lower64() uint64  { return u.first }
func (u Uint128) Higher64() uint64 { return u.second }

func fetch64(p []byte) uint64 { return binary.LittleEndian.Uint64(p) }
func fetch32(p []byte) uint32 { return binary.LittleEndian.Uint32(p) }

func rotate(val uint64, shift uint) uint64 {
	if shift == 0 {
		return val
	}
	return (val >> shift) | (val << (64 - shift))
}

// rotateByAtLeast1 is rotate without the shift==0 guard: every call site
// below passes a shift already known to be positive.
func rotateByAtLeast1(val uint64, shift uint) uint64 {
	return (val >> shift) | (val << (64 - shift))
}

func shiftMix(val uint64) uint64 {
	return val ^ (val >> 47)
}

func hash128to64(lo, hi uint64) uint64 {
	const kMul uint64 = 0x9ddfea08eb382d69
	a := (lo ^ hi) * kMul
	a ^= a >> 47
	b := (hi ^ a) * kMul
	b ^= b >> 47
	b *= kMul
	return b
}

func hashLen16(u, v uint64) uint64 {
	return hash128to64(u, v)
}

func hashLen16Mul(u, v, mul uint64) uint64 {
	a := (u ^ v) * mul
	a ^= a >> 47
	b := (v ^ a) * mul
	b ^= b >> 47
	b *= mul
	return b
}

// hashLen0to16 is the v1.0.2 short-string path: strings longer than 8
// bytes fold their trailing 8 bytes in by rotating them by the string's
// own length and xor-ing, rather than the later hashLen16Mul rewrite, and
// the under-4-byte case mixes with k3, not k0.
func hashLen0to16(s []byte) uint64 {
	length := uint64(len(s))
	switch {
	case length > 8:
		a := fetch64(s)
		b := fetch64(s[len(s)-8:])
		return hashLen16(a, rotateByAtLeast1(b+length, uint(length))) ^ b
	case length >= 4:
		a := uint64(fetch32(s))
		return hashLen16(length+(a<<3), uint64(fetch32(s[len(s)-4:])))
	case length > 0:
		a := s[0]
		b := s[length>>1]
		c := s[length-1]
		y := uint32(a) + uint32(b)<<8
		z := uint32(length) + uint32(c)<<2
		return shiftMix(uint64(y)*k2^uint64(z)*k3) * k2
	default:
		return k2
	}
}

func hashLen17to32(s []byte) uint64 {
	length := uint64(len(s))
	mul := k2 + length*2
	a := fetch64(s) * k1
	b := fetch64(s[8:])
	c := fetch64(s[len(s)-8:]) * mul
	d := fetch64(s[len(s)-16:]) * k2
	return hashLen16Mul(rotate(a+b, 43)+rotate(c, 30)+d, a+rotate(b+k2, 18)+c, mul)
}

func weakHashLen32WithSeedsWords(w, x, y, z, a, b uint64) (uint64, uint64) {
	a += w
	b = rotate(b+a+z, 21)
	c := a
	a += x
	a += y
	b += rotate(a, 44)
	return a + z, b + c
}

func weakHashLen32WithSeeds(s []byte, a, b uint64) (uint64, uint64) {
	return weakHashLen32WithSeedsWords(fetch64(s), fetch64(s[8:]), fetch64(s[16:]), fetch64(s[24:]), a, b)
}

func hashLen33to64(s []byte) uint64 {
	length := uint64(len(s))
	mul := k2 + length*2
	a := fetch64(s) * k2
	b := fetch64(s[8:])
	c := fetch64(s[len(s)-24:])
	d := fetch64(s[len(s)-32:])
	e := fetch64(s[16:]) * k2
	f := fetch64(s[24:]) * 9
	g := fetch64(s[len(s)-8:])
	h := fetch64(s[len(s)-16:]) * mul
	u := rotate(a+g, 43) + (rotate(b, 30)+c)*9
	v := ((a + g) ^ d) + f + 1
	w := bswap64(u+v) + h
	x := rotate(e+f, 42) + c
	y := bswap64((v+w)*mul) + g
	z := e + f + c
	a2 := bswap64((x+z)*mul+y) + b
	b2 := shiftMix((z+a2)*mul+d+h) * mul
	return b2 + x
}

func bswap64(x uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], x)
	return binary.BigEndian.Uint64(b[:])
}

func cityMurmur(s []byte, seed Uint128) Uint128 {
	a := seed.first
	b := seed.second
	var c, d uint64
	l := len(s) - 16
	if l <= 0 {
		a = shiftMix(a*k1) * k1
		c = b*k1 + hashLen0to16(s)
		if len(s) >= 8 {
			d = shiftMix(a + fetch64(s))
		} else {
			d = shiftMix(a + c)
		}
	} else {
		c = hashLen16(fetch64(s[len(s)-8:])+k1, a)
		d = hashLen16(b+uint64(len(s)), c+fetch64(s[len(s)-16:]))
		a += d
		for l > 0 {
			a ^= shiftMix(fetch64(s)*k1) * k1
			a *= k1
			b ^= a
			c ^= shiftMix(fetch64(s[8:])*k1) * k1
			c *= k1
			d ^= c
			s = s[16:]
			l -= 16
		}
	}
	a = hashLen16(a, c)
	b = hashLen16(d, b)
	return Uint128{a ^ b, hashLen16(b, a)}
}

// CityHash128WithSeed hashes s seeded with seed. The 128-byte main loop
// below is v1.0.2's: each half-iteration fetches its two words at offsets
// 16 and 40 (not the later rewrite's 8/48), folds v.first into y and
// w.first into z by addition rather than xor, and multiplies z's rotated
// sum by k1 before it feeds the next iteration.
func CityHash128WithSeed(s []byte, seed Uint128) Uint128 {
	if len(s) < 128 {
		return cityMurmur(s, seed)
	}

	var vf, vs, wf, ws uint64
	x := seed.first
	y := seed.second
	z := uint64(len(s)) * k1
	vf = rotate(y^k1, 49)*k1 + fetch64(s)
	vs = rotate(vf, 42)*k1 + fetch64(s[8:])
	wf = rotate(y+z, 35)*k1 + x
	ws = rotate(x+fetch64(s[88:]), 53) * k1

	remaining := len(s)
	p := s
	for remaining >= 128 {
		x = rotate(x+y+vf+fetch64(p[16:]), 37) * k1
		y = rotate(y+vf+fetch64(p[40:]), 42) * k1
		x ^= ws
		z = rotate(z+wf, 33) * k1
		vf, vs = weakHashLen32WithSeeds(p, vs*k1, x+wf)
		wf, ws = weakHashLen32WithSeeds(p[32:], z+ws, y)
		z, x = x, z
		p = p[64:]

		x = rotate(x+y+vf+fetch64(p[16:]), 37) * k1
		y = rotate(y+vf+fetch64(p[40:]), 42) * k1
		x ^= ws
		z = rotate(z+wf, 33) * k1
		vf, vs = weakHashLen32WithSeeds(p, vs*k1, x+wf)
		wf, ws = weakHashLen32WithSeeds(p[32:], z+ws, y)
		z, x = x, z
		p = p[64:]

		remaining -= 128
	}
	x += rotate(vf+z, 49) * k0
	y = y*k0 + rotate(ws, 37)
	z = z*k0 + rotate(wf, 27)
	wf *= 9
	vf *= k0

	for tailDone := 0; tailDone < remaining; {
		tailDone += 32
		y = rotate(x+y, 42)*k0 + vs
		wf += fetch64(s[len(s)-tailDone+16:])
		x = x*k0 + wf
		z += ws + fetch64(s[len(s)-tailDone:])
		ws += vf
		vf, vs = weakHashLen32WithSeeds(s[len(s)-tailDone:], vf+z, vs)
		vf *= k0
	}

	x = hashLen16(x, vf)
	y = hashLen16(y, wf)
	return Uint128{hashLen16(x+vs, ws) + y, hashLen16(x+ws, y+vs)}
}

// CityHash128 hashes the first length bytes of s and returns the 128-bit
// digest. length is accepted as an explicit parameter (rather than derived
// from len(s)) to mirror the upstream API, which allows s to be a larger
// buffer than the logical input.
func CityHash128(s []byte, length uint32) Uint128 {
	s = s[:length]
	if len(s) >= 16 {
		return CityHash128WithSeed(s[16:], Uint128{fetch64(s) ^ k3, fetch64(s[8:])})
	}
	return CityHash128WithSeed(s, Uint128{k0, k1})
}

// Hash128 is the Go-idiomatic entry point used by the rest of this module:
// it hashes the whole of b and returns (lower64, higher64).
func Hash128(b []byte) (uint64, uint64) {
	u := CityHash128(b, uint32(len(b)))
	return u.Lower64(), u.Higher64()
}

// Hash128WithSeed is the Go-idiomatic seeded entry point.
func Hash128WithSeed(b []byte, seedLo, seedHi uint64) (uint64, uint64) {
	u := CityHash128WithSeed(b, Uint128{seedLo, seedHi})
	return u.Lower64(), u.Higher64()
}
