package rpcclient

import "errors"

var (
	// ErrRpcUnreachable covers a transport-level failure to reach the
	// node at all (connection refused, DNS failure, TLS handshake
	// failure).
	ErrRpcUnreachable = errors.New("rpcclient: node unreachable")

	// ErrJsonRPCHTTP covers an HTTP-level failure on an otherwise
	// reachable node (non-2xx status, malformed JSON-RPC envelope).
	ErrJsonRPCHTTP = errors.New("rpcclient: json-rpc http error")
)
