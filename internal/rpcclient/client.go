// Package rpcclient talks to a Bitcoin Core node over JSON-RPC: a thin
// rpcclient.Client for cheap synchronous calls, and a dedicated
// long-timeout raw HTTP path for the handful of RPCs (dumptxoutset,
// scantxoutset, gettxoutsetinfo) that can run for minutes against a
// large UTXO set and so cannot use btcd's 60-second default timeout.
package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/btcsuite/btcd/rpcclient"
)

// Client is a Bitcoin Core RPC facade scoped to the operations this
// project needs: connectivity, UTXO set dump/scan, and set summary.
type Client struct {
	rpc    *rpcclient.Client
	config Config
}

// New connects to the node named by cfg and verifies connectivity with
// getblockcount.
func New(cfg Config) (*Client, error) {
	connCfg := &rpcclient.ConnConfig{
		Host:         cfg.Host,
		User:         cfg.User,
		Pass:         cfg.Pass,
		HTTPPostMode: true,
		DisableTLS:   true,
	}

	log.Printf("[RPCClient] connecting to %s", cfg.Host)
	rpc, err := rpcclient.New(connCfg, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRpcUnreachable, err)
	}

	height, err := rpc.GetBlockCount()
	if err != nil {
		rpc.Shutdown()
		return nil, fmt.Errorf("%w: %v", ErrRpcUnreachable, err)
	}
	log.Printf("[RPCClient] connected, chain height %d", height)

	return &Client{rpc: rpc, config: cfg}, nil
}

// Shutdown closes the underlying RPC connection.
func (c *Client) Shutdown() {
	c.rpc.Shutdown()
}

// DumpUtxoSet calls dumptxoutset with "latest" and the given output
// path, writing the node's current UTXO set to disk. The facade itself
// has no opinion about whether path already exists; the orchestrator
// checks that before calling.
func (c *Client) DumpUtxoSet(ctx context.Context, path string) (*DumpResult, error) {
	var result DumpResult
	if err := c.call(ctx, "dumptxoutset", rawParams("latest", path), &result); err != nil {
		return nil, fmt.Errorf("dumptxoutset: %w", err)
	}
	return &result, nil
}

// ScanUtxoSet issues one independent scantxoutset call per request (the
// node only tolerates one concurrent scan at a time), returning results
// paired 1:1 with requests in input order.
func (c *Client) ScanUtxoSet(ctx context.Context, requests []ScanRequest) ([]ScanResult, error) {
	results := make([]ScanResult, len(requests))
	for i, req := range requests {
		encoded, err := json.Marshal([]map[string]string{{"desc": req.Descriptor}})
		if err != nil {
			return nil, fmt.Errorf("scantxoutset: encode descriptor: %w", err)
		}
		params := append(rawParams("start"), encoded)

		var result ScanResult
		if err := c.call(ctx, "scantxoutset", params, &result); err != nil {
			return nil, fmt.Errorf("scantxoutset: path %s: %w", req.Path, err)
		}
		results[i] = result
	}
	return results, nil
}

// GetTxOutSetInfo calls gettxoutsetinfo, an expensive full-set scan on
// large chains.
func (c *Client) GetTxOutSetInfo(ctx context.Context) (*TxOutSetInfo, error) {
	var result TxOutSetInfo
	if err := c.call(ctx, "gettxoutsetinfo", nil, &result); err != nil {
		return nil, fmt.Errorf("gettxoutsetinfo: %w", err)
	}
	return &result, nil
}

func rawParams(values ...string) []json.RawMessage {
	params := make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		encoded, _ := json.Marshal(v)
		params = append(params, encoded)
	}
	return params
}

type jsonRPCRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      int               `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

type jsonRPCResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// call performs a raw JSON-RPC POST with the client's configured
// timeout, bypassing c.rpc entirely so that long-running calls are
// never subject to rpcclient's hardcoded 60-second default.
func (c *Client) call(ctx context.Context, method string, params []json.RawMessage, out interface{}) error {
	if params == nil {
		params = []json.RawMessage{}
	}
	reqBody, err := json.Marshal(jsonRPCRequest{JSONRPC: "1.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("http://%s", c.config.Host)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.config.User, c.config.Pass)

	httpClient := &http.Client{Timeout: c.config.timeout()}
	httpResp, err := httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRpcUnreachable, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrJsonRPCHTTP, err)
	}

	var rpcResp jsonRPCResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return fmt.Errorf("%w: unmarshal response: %v", ErrJsonRPCHTTP, err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("%w: %d: %s", ErrJsonRPCHTTP, rpcResp.Error.Code, rpcResp.Error.Message)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(rpcResp.Result, out)
}
