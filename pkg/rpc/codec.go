package rpc

import "fmt"

// Message is implemented by every wire type this server exchanges.
type Message interface {
	MarshalBinary() ([]byte, error)
	UnmarshalBinary(b []byte) error
}

// Codec adapts the hand-marshaled wire types to grpc-go's codec interface.
// It advertises the standard "proto" name so unmodified protobuf clients can
// talk to the server.
type Codec struct{}

// Marshal implements grpc encoding.Codec.
func (Codec) Marshal(v interface{}) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("cannot marshal %T: not a wire message", v)
	}
	return m.MarshalBinary()
}

// Unmarshal implements grpc encoding.Codec.
func (Codec) Unmarshal(data []byte, v interface{}) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("cannot unmarshal into %T: not a wire message", v)
	}
	return m.UnmarshalBinary(data)
}

// Name implements grpc encoding.Codec.
func (Codec) Name() string {
	return "proto"
}
