// Package apiconnect wires the tripsplit.v1 services to Connect handlers and
// clients. Messages travel as JSON using the json codec below, registered under
// the "json" name so it replaces Connect's protobuf-only JSON codec.
package apiconnect

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// Codec marshals api messages with encoding/json.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

type route struct {
	procedure string
	handler   http.Handler
}

func unary[Req, Res any](procedure string, fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error), opts []connect.HandlerOption) route {
	return route{procedure: procedure, handler: connect.NewUnaryHandler(procedure, fn, opts...)}
}

// serviceHandler routes every procedure of one service and returns the path
// prefix to mount it under.
func serviceHandler(serviceName string, routes ...route) (string, http.Handler) {
	byProcedure := make(map[string]http.Handler, len(routes))
	for _, r := range routes {
		byProcedure[r.procedure] = r.handler
	}
	return "/" + serviceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := byProcedure[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}

func newClient[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string, opts []connect.ClientOption) *connect.Client[Req, Res] {
	return connect.NewClient[Req, Res](httpClient, strings.TrimRight(baseURL, "/")+procedure, opts...)
}
