// Package proto defines the wire contract of the transkeeper gRPC service:
// plain Go messages carried by a JSON codec, the service descriptor and a
// typed client.
package proto

import (
	"encoding/json"
	"sync"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype of the JSON codec.
const CodecName = "json"

var registerCodecOnce sync.Once

type jsonCodec struct{}

func (c *jsonCodec) Name() string {
	return CodecName
}

func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// EnsureJSONCodec registers the JSON codec with gRPC. Safe to call many times.
func EnsureJSONCodec() {
	registerCodecOnce.Do(func() {
		encoding.RegisterCodec(&jsonCodec{})
	})
}
