// Package apiconnect wires the creaturemap.v1 services to Connect handlers
// and clients. Every handler and client uses api.Codec.
package apiconnect

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/creaturemap/pkg/api"
)

// PackageName is the RPC package of every service.
const PackageName = "creaturemap.v1"

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
}

// serviceMux dispatches on the full procedure path.
type serviceMux map[string]http.Handler

func (m serviceMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := m[r.URL.Path]; ok {
		h.ServeHTTP(w, r)
		return
	}
	http.NotFound(w, r)
}
