package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"io"
	"net/http"
	"time"
)

const (
	jsonrpcVersion = "2.0"
)

var (
	ErrMissingHost = errors.New("bad call missing argument host")
)

// A rpcClient represents a JSON RPC client (over HTTP(s)) to the wallet provider.
type rpcClient struct {
	url        string
	httpClient *retryablehttp.Client
	timeout    int
	debug      bool
}

type rpcRequest struct {
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	Id      int64         `json:"id"`
	JsonRpc string        `json:"jsonrpc"`
}

// RPCErrorCode represents an error code returned by the wallet provider.
// 4001 is the EIP-1193 "user rejected the request" code.
type RPCErrorCode int

const (
	UserRejectedRequest RPCErrorCode = 4001
)

type RPCError struct {
	Code    RPCErrorCode `json:"code,omitempty"`
	Message string       `json:"message,omitempty"`
}

var _, _ error = RPCError{}, (*RPCError)(nil)

func (e RPCError) Error() string {
	return fmt.Sprintf("%d:%s", e.Code, e.Message)
}

type rpcResponse struct {
	Id     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

func (rResp rpcResponse) ResultAsStrings() ([]string, error) {
	var result []string
	if err := json.Unmarshal(rResp.Result, &result); err != nil {
		return nil, err
	}

	return result, nil
}

func (rResp rpcResponse) ResultAsString() (string, error) {
	var result string
	if err := json.Unmarshal(rResp.Result, &result); err != nil {
		return "", err
	}

	return result, nil
}

func NewClient(url string, timeout int, debug bool) (*rpcClient, error) {
	if len(url) == 0 {
		return nil, ErrMissingHost
	}

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = 0
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &rpcClient{
		url,
		retryClient,
		timeout,
		debug,
	}, nil
}

func NewRequest(method string, params ...interface{}) *rpcRequest {
	if params == nil {
		params = []interface{}{}
	}
	return &rpcRequest{method, params, time.Now().UnixNano(), jsonrpcVersion}
}

// doTimeoutRequest process a HTTP request with timeout
func (c *rpcClient) doTimeoutRequest(ctx context.Context, timer *time.Timer, req *retryablehttp.Request) (*http.Response, error) {
	type result struct {
		resp *http.Response
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := c.httpClient.Do(req.WithContext(ctx))
		done <- result{resp, err}
	}()

	select {
	case r := <-done:
		return r.resp, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, errors.New("timeout reading data from wallet provider")
	}
}

// call prepare & exec the request
func (c *rpcClient) call(ctx context.Context, method string, params ...interface{}) (*rpcResponse, error) {
	rpcR := NewRequest(method, params...)
	payloadBuffer := &bytes.Buffer{}
	if err := json.NewEncoder(payloadBuffer).Encode(rpcR); err != nil {
		return nil, err
	}

	zap.L().With(zap.String("request", rpcR.Method)).Debug("Wallet: RPC Request")
	if c.debug {
		zap.L().With(zap.String("request", payloadBuffer.String())).Debug("Wallet: RPC Request")
	}

	req, err := retryablehttp.NewRequest("POST", c.url, payloadBuffer)
	if err != nil {
		return nil, err
	}
	req.Header.Add("Content-Type", "application/json;charset=utf-8")
	req.Header.Add("Accept", "application/json")

	timer := time.NewTimer(time.Duration(c.timeout) * time.Second)
	defer timer.Stop()

	resp, err := c.doTimeoutRequest(ctx, timer, req)
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("request", rpcR.Method)).Warn("Wallet: RPC Failure")
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if c.debug {
		zap.L().With(zap.String("response", string(data))).Debug("Wallet: RPC Response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wallet provider responded %s", resp.Status)
	}

	var rr rpcResponse
	if err := json.Unmarshal(data, &rr); err != nil {
		return nil, err
	}
	if rr.Error != nil {
		return nil, *rr.Error
	}

	return &rr, nil
}
