package rpccodec

import "context"

import "google.golang.org/grpc"


//=========================================== Hand Written Service Helpers


/*
	Unary Handler:
		builds the method handler a grpc.MethodDesc expects, decoding the request into Req and routing it through
		any configured interceptor the same way generated code does
*/

func UnaryHandler [Req any, Res any](
	fullMethod string,
	call func(srv interface{}, ctx context.Context, req *Req) (*Res, error),
) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		decErr := dec(in)
		if decErr != nil { return nil, decErr }

		if interceptor == nil { return call(srv, ctx, in) }

		info := &grpc.UnaryServerInfo{ Server: srv, FullMethod: fullMethod }
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv, ctx, req.(*Req))
		}

		return interceptor(ctx, in, info, handler)
	}
}

func Invoke [Res any](ctx context.Context, cc grpc.ClientConnInterface, fullMethod string, in interface{}, opts ...grpc.CallOption) (*Res, error) {
	out := new(Res)

	invokeErr := cc.Invoke(ctx, fullMethod, in, out, opts...)
	if invokeErr != nil { return nil, invokeErr }

	return out, nil
}

func FullMethod(service string, method string) string {
	return "/" + service + "/" + method
}
