package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/ZilDuck/nft-test-market/internal/entity"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type rpcCall struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type recorder struct {
	mu    sync.Mutex
	calls []rpcCall
}

func (r *recorder) add(call rpcCall) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) first() rpcCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[0]
}

func newWalletServer(t *testing.T, handler func(call rpcCall) (interface{}, *RPCError)) (*httptest.Server, *recorder) {
	t.Helper()
	calls := &recorder{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var call rpcCall
		if err := json.NewDecoder(r.Body).Decode(&call); err != nil {
			t.Errorf("invalid rpc request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		calls.add(call)

		result, rpcErr := handler(call)
		resp := map[string]interface{}{"jsonrpc": "2.0", "id": 1}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	return srv, calls
}

func newTestProvider(t *testing.T, url string) Provider {
	t.Helper()
	client, err := NewClient(url, 5, false)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	return NewProvider(client)
}

func TestNewClientRequiresHost(t *testing.T) {
	if _, err := NewClient("", 5, false); !errors.Is(err, ErrMissingHost) {
		t.Errorf("expected ErrMissingHost, got %v", err)
	}
}

func TestRequestAccounts(t *testing.T) {
	srv, calls := newWalletServer(t, func(call rpcCall) (interface{}, *RPCError) {
		return []string{"0x52b38626d3167e5357fe7348624352b7062fe271"}, nil
	})

	accounts, err := newTestProvider(t, srv.URL).RequestAccounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 1 || accounts[0] != "0x52b38626d3167e5357fe7348624352b7062fe271" {
		t.Errorf("unexpected accounts %v", accounts)
	}
	if calls.first().Method != "eth_requestAccounts" {
		t.Errorf("unexpected method %s", calls.first().Method)
	}
	if calls.first().Params == nil {
		t.Error("params should be an empty array, not null")
	}
}

func TestGetAuthorizedAccounts(t *testing.T) {
	srv, calls := newWalletServer(t, func(call rpcCall) (interface{}, *RPCError) {
		return []string{}, nil
	})

	accounts, err := newTestProvider(t, srv.URL).GetAuthorizedAccounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 0 {
		t.Errorf("expected no accounts, got %v", accounts)
	}
	if calls.first().Method != "eth_accounts" {
		t.Errorf("unexpected method %s", calls.first().Method)
	}
}

func TestRpcErrorIsReturned(t *testing.T) {
	srv, _ := newWalletServer(t, func(call rpcCall) (interface{}, *RPCError) {
		return nil, &RPCError{Code: UserRejectedRequest, Message: "User rejected the request."}
	})

	_, err := newTestProvider(t, srv.URL).RequestAccounts(context.Background())

	var rpcErr RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("expected an RPCError, got %v", err)
	}
	if rpcErr.Code != UserRejectedRequest {
		t.Errorf("unexpected code %d", rpcErr.Code)
	}
}

func TestSendTransaction(t *testing.T) {
	srv, calls := newWalletServer(t, func(call rpcCall) (interface{}, *RPCError) {
		return "0xhash", nil
	})

	hash, err := newTestProvider(t, srv.URL).SendTransaction(context.Background(), entity.Transaction{
		From:  "0x03469fdba3e9f4880e8e9dd7b74d61851afc02f3",
		To:    "0x00000000006c3852cbef3e08e8df289169ede581",
		Value: big.NewInt(1000000000000),
		Data:  "0xfb0f3ee1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash != "0xhash" {
		t.Errorf("unexpected hash %s", hash)
	}

	call := calls.first()
	if call.Method != "eth_sendTransaction" || len(call.Params) != 1 {
		t.Fatalf("unexpected call %+v", call)
	}

	var params sendTransactionParams
	if err := json.Unmarshal(call.Params[0], &params); err != nil {
		t.Fatalf("invalid params: %v", err)
	}
	if params.Value != "0xe8d4a51000" {
		t.Errorf("unexpected value %s", params.Value)
	}
	if params.Data != "0xfb0f3ee1" || params.From != "0x03469fdba3e9f4880e8e9dd7b74d61851afc02f3" {
		t.Errorf("unexpected params %+v", params)
	}
}

func TestNonOkStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := newTestProvider(t, srv.URL).GetAuthorizedAccounts(context.Background()); err == nil {
		t.Error("expected an error for a forbidden response")
	}
}
