// Copyright 2020 DataStax
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package token computes partition tokens the same way the server-side
// org.apache.cassandra.dht.Murmur3Partitioner does, so that TokenAware load
// balancing can pick replicas for a routing key without asking the server.
package token

import "math/bits"

const (
	c1 int64 = -8663945395140668459 // 0x87c37b91114253d5
	c2 int64 = 5545529020109919103  // 0x4cf5ad432745937f
)

// Token is a position on the Murmur3 partitioner's token ring, matching the server's signed 64-bit token space.
type Token int64

// Murmur3 computes the partition Token for the given routing key, using the same 128-bit Murmur3 algorithm and
// low-64-bits-only truncation that org.apache.cassandra.dht.Murmur3Partitioner.getToken uses server-side.
func Murmur3(key []byte) Token {
	h1, _ := murmur3sum128(key)
	if h1 == minInt64 {
		h1 = math_MinInt64Replacement
	}
	return Token(h1)
}

const minInt64 = int64(-1) << 63
const math_MinInt64Replacement = int64(-9223372036854775807) // Long.MIN_VALUE + 1, matching the Java partitioner

func murmur3sum128(key []byte) (h1 int64, h2 int64) {
	length := len(key)
	nblocks := length / 16

	for i := 0; i < nblocks; i++ {
		k1 := getBlock(key, i*16)
		k2 := getBlock(key, i*16+8)

		k1 *= c1
		k1 = rotl64(k1, 31)
		k1 *= c2
		h1 ^= k1

		h1 = rotl64(h1, 27)
		h1 += h2
		h1 = h1*5 + 0x52dce729

		k2 *= c2
		k2 = rotl64(k2, 33)
		k2 *= c1
		h2 ^= k2

		h2 = rotl64(h2, 31)
		h2 += h1
		h2 = h2*5 + 0x38495ab5
	}

	tail := key[nblocks*16:]
	var k1, k2 int64
	tailLen := len(tail)
	if tailLen > 14 {
		k2 ^= int64(int8(tail[14])) << 48
	}
	if tailLen > 13 {
		k2 ^= int64(int8(tail[13])) << 40
	}
	if tailLen > 12 {
		k2 ^= int64(int8(tail[12])) << 32
	}
	if tailLen > 11 {
		k2 ^= int64(int8(tail[11])) << 24
	}
	if tailLen > 10 {
		k2 ^= int64(int8(tail[10])) << 16
	}
	if tailLen > 9 {
		k2 ^= int64(int8(tail[9])) << 8
	}
	if tailLen > 8 {
		k2 ^= int64(int8(tail[8]))
		k2 *= c2
		k2 = rotl64(k2, 33)
		k2 *= c1
		h2 ^= k2
	}
	if tailLen > 7 {
		k1 ^= int64(int8(tail[7])) << 56
	}
	if tailLen > 6 {
		k1 ^= int64(int8(tail[6])) << 48
	}
	if tailLen > 5 {
		k1 ^= int64(int8(tail[5])) << 40
	}
	if tailLen > 4 {
		k1 ^= int64(int8(tail[4])) << 32
	}
	if tailLen > 3 {
		k1 ^= int64(int8(tail[3])) << 24
	}
	if tailLen > 2 {
		k1 ^= int64(int8(tail[2])) << 16
	}
	if tailLen > 1 {
		k1 ^= int64(int8(tail[1])) << 8
	}
	if tailLen > 0 {
		k1 ^= int64(int8(tail[0]))
		k1 *= c1
		k1 = rotl64(k1, 31)
		k1 *= c2
		h1 ^= k1
	}

	h1 ^= int64(length)
	h2 ^= int64(length)

	h1 += h2
	h2 += h1

	h1 = fmix64(h1)
	h2 = fmix64(h2)

	h1 += h2
	h2 += h1

	return h1, h2
}

func getBlock(key []byte, index int) int64 {
	return int64(key[index]) |
		int64(key[index+1])<<8 |
		int64(key[index+2])<<16 |
		int64(key[index+3])<<24 |
		int64(key[index+4])<<32 |
		int64(key[index+5])<<40 |
		int64(key[index+6])<<48 |
		int64(key[index+7])<<56
}

func rotl64(v int64, n uint) int64 {
	return int64(bits.RotateLeft64(uint64(v), int(n)))
}

func fmix64(k int64) int64 {
	k ^= int64(uint64(k) >> 33)
	k *= -49064778989728563 // 0xff51afd7ed558ccd
	k ^= int64(uint64(k) >> 33)
	k *= -4265267296055464877 // 0xc4ceb9fe1a85ec53
	k ^= int64(uint64(k) >> 33)
	return k
}
