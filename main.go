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

// Command main is a smoke-test harness for the driver's frame codec and data codecs, exercised without a live
// cluster: it round-trips a handful of representative frames through frame.Codec and demonstrates the CEP-30
// vector codec and the batch builder's encode-error reporting.
package main

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/nativecql/driver/datacodec"
	"github.com/nativecql/driver/datatype"
	"github.com/nativecql/driver/frame"
	"github.com/nativecql/driver/message"
	"github.com/nativecql/driver/primitive"
	"github.com/nativecql/driver/session"
)

func main() {
	demoStartupFrame()
	demoQueryFrame()
	demoVectorCodec()
	demoBatchEncodeError()
}

// demoStartupFrame round-trips a STARTUP request, the first frame any connection sends.
func demoStartupFrame() {
	startupFrame, err := frame.NewRequestFrame(primitive.ProtocolVersion4, 1, false, nil, message.NewStartup())
	if err != nil {
		panic(err)
	}
	roundTrip("STARTUP", startupFrame)
}

// demoQueryFrame round-trips a QUERY request at LOCAL_ONE, the consistency level session.NewStatement defaults to.
func demoQueryFrame() {
	queryFrame, err := frame.NewRequestFrame(
		primitive.ProtocolVersion4,
		1,
		false,
		nil,
		&message.Query{
			Query:   "SELECT * FROM system.local",
			Options: &message.QueryOptions{Consistency: primitive.ConsistencyLevelLocalOne},
		},
	)
	if err != nil {
		panic(err)
	}
	roundTrip("QUERY", queryFrame)
}

// demoVectorCodec encodes and decodes a 4-dimensional float vector, the CEP-30 type this driver adds on top of
// the original cassandra-protocol message set.
func demoVectorCodec() {
	vectorType := datatype.NewVectorType(datatype.Float, 4)
	codec, err := datacodec.NewVector(vectorType)
	if err != nil {
		panic(err)
	}
	encoded, err := codec.Encode([]float32{1, 0.5, -2, 3.25}, primitive.ProtocolVersion4)
	if err != nil {
		panic(err)
	}
	fmt.Println("--------------------------------")
	fmt.Println("vector codec:", vectorType)
	fmt.Print("encoded vector:\n", hex.Dump(encoded))
	var decoded []float32
	if _, err := codec.Decode(encoded, &decoded, primitive.ProtocolVersion4); err != nil {
		panic(err)
	}
	fmt.Printf("decoded vector: %v\n\n", decoded)
}

// demoBatchEncodeError shows a batch child whose argument cannot be encoded for its column type: rather than
// silently dropping the child, the batch records the error and ExecuteBatch returns it before touching the
// network.
func demoBatchEncodeError() {
	batch := session.NewBatchStatement(primitive.BatchTypeUnlogged).
		AddStatement("INSERT INTO t (a) VALUES (?)", make(chan int))
	fmt.Println("--------------------------------")
	fmt.Printf("batch encode error: %v\n\n", batch.Err())
}

func roundTrip(label string, originalFrame *frame.Frame) {
	fmt.Println("--------------------------------")
	fmt.Printf("%s original frame:\n%v\n", label, originalFrame)
	codec := frame.NewCodec()
	encodedFrame := bytes.Buffer{}
	if err := codec.EncodeFrame(originalFrame, &encodedFrame); err != nil {
		panic(err)
	}
	fmt.Print("encoded frame:\n", hex.Dump(encodedFrame.Bytes()))
	decodedFrame, err := codec.DecodeFrame(&encodedFrame)
	if err != nil {
		panic(err)
	}
	fmt.Printf("decoded frame:\n%v\n\n", decodedFrame)
}
