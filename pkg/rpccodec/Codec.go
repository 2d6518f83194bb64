package rpccodec

import "github.com/vmihailenco/msgpack/v5"
import "google.golang.org/grpc"
import "google.golang.org/grpc/encoding"


//=========================================== Msgpack gRPC Codec


/*
	wire messages are plain go structs, so instead of protobuf generated types every service in the
	cluster uses a msgpack codec registered under the "msgpack" content subtype

		client --> grpc.CallContentSubtype(Name) on every call (set on dial by the connection pool)
		server --> grpc.ForceServerCodec so every inbound message is decoded with msgpack
*/

const Name = "msgpack"


type msgpackCodec struct{}

func (msgpackCodec) Marshal(v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (msgpackCodec) Unmarshal(data []byte, v interface{}) error {
	return msgpack.Unmarshal(data, v)
}

func (msgpackCodec) Name() string {
	return Name
}

func init() {
	encoding.RegisterCodec(msgpackCodec{})
}

func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(Name)
}

func ServerOption() grpc.ServerOption {
	return grpc.ForceServerCodec(msgpackCodec{})
}

func NewServer(opts ...grpc.ServerOption) *grpc.Server {
	return grpc.NewServer(append([]grpc.ServerOption{ ServerOption() }, opts...)...)
}
