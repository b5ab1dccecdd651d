package mirror

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClientTestnet(t *testing.T) {
	client, err := NewClient(Config{Network: "hedera-testnet"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.baseURL != "https://testnet.mirrornode.hedera.com" {
		t.Fatalf("unexpected baseURL: %s", client.baseURL)
	}
}

func TestNewClientMainnet(t *testing.T) {
	client, err := NewClient(Config{Network: "mainnet"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.BaseURL() != "https://mainnet-public.mirrornode.hedera.com" {
		t.Fatalf("unexpected baseURL: %s", client.BaseURL())
	}
}

func TestNewClientCustomBaseURL(t *testing.T) {
	client, err := NewClient(Config{
		Network: "testnet",
		BaseURL: "https://custom.example.com/",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.baseURL != "https://custom.example.com" {
		t.Fatalf("unexpected baseURL: %s", client.baseURL)
	}
}

func TestNewClientInvalidBaseURL(t *testing.T) {
	if _, err := NewClient(Config{Network: "testnet", BaseURL: "ftp://mirror.example.com"}); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
	if _, err := NewClient(Config{Network: "testnet", BaseURL: "https://"}); err == nil {
		t.Fatal("expected error for missing host")
	}
}

func TestNewClientUnsupportedNetwork(t *testing.T) {
	_, err := NewClient(Config{Network: "sepolia"})
	if err == nil {
		t.Fatal("expected error for unsupported network")
	}
}

func TestNewClientCopiesHeaders(t *testing.T) {
	headers := map[string]string{"X-Custom": "test"}
	client, err := NewClient(Config{Network: "testnet", Headers: headers})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	headers["X-Custom"] = "changed"
	if client.headers["X-Custom"] != "test" {
		t.Fatalf("expected header copy, got %q", client.headers["X-Custom"])
	}
}

func TestGetAccountEmpty(t *testing.T) {
	client, _ := NewClient(Config{Network: "testnet"})
	_, err := client.GetAccount(context.Background(), "  ")
	if err == nil {
		t.Fatal("expected error for empty account ID")
	}
}

func TestGetAccountSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/accounts/0.0.12345" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Fatalf("missing bearer token: %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("X-Custom") != "yes" {
			t.Fatalf("missing custom header")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AccountInfo{
			Account:    "0.0.12345",
			EvmAddress: "0x0000000000000000000000000000000000003039",
		})
	}))
	defer server.Close()

	client, _ := NewClient(Config{
		Network: "testnet",
		BaseURL: server.URL,
		APIKey:  " secret ",
		Headers: map[string]string{"X-Custom": "yes"},
	})
	info, err := client.GetAccount(context.Background(), "0.0.12345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.EvmAddress != "0x0000000000000000000000000000000000003039" {
		t.Fatalf("unexpected evm address: %s", info.EvmAddress)
	}
}

func TestGetContractSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/contracts/0.0.777" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(ContractInfo{
			ContractID: "0.0.777",
			EvmAddress: "0x1111111111111111111111111111111111111111",
		})
	}))
	defer server.Close()

	client, _ := NewClient(Config{Network: "testnet", BaseURL: server.URL})
	info, err := client.GetContract(context.Background(), "0.0.777")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.EvmAddress != "0x1111111111111111111111111111111111111111" {
		t.Fatalf("unexpected evm address: %s", info.EvmAddress)
	}

	if _, err := client.GetContract(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty contract ID")
	}
}

func TestGetContractResultUsesMirrorTransactionID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/contracts/results/0.0.2-1700000000-123456789" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(ContractResult{
			Result:       "CONTRACT_REVERT_EXECUTED",
			ErrorMessage: "insufficient liquidity",
		})
	}))
	defer server.Close()

	client, _ := NewClient(Config{Network: "testnet", BaseURL: server.URL})
	result, err := client.GetContractResult(context.Background(), "0.0.2@1700000000.123456789")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ErrorMessage != "insufficient liquidity" {
		t.Fatalf("unexpected error message: %q", result.ErrorMessage)
	}
}

func TestToMirrorTransactionID(t *testing.T) {
	cases := map[string]string{
		"0.0.2@1700000000.123456789":           "0.0.2-1700000000-123456789",
		"0.0.2@1700000000.123456789?scheduled": "0.0.2-1700000000-123456789",
		"0.0.2-1700000000-123456789":           "0.0.2-1700000000-123456789",
		"  ":                                   "",
	}
	for input, expected := range cases {
		if got := ToMirrorTransactionID(input); got != expected {
			t.Fatalf("expected %q for %q, got %q", expected, input, got)
		}
	}
}

func TestGetJSONErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"_status":{"messages":[{"message":"Not found"}]}}`))
	}))
	defer server.Close()

	client, _ := NewClient(Config{Network: "testnet", BaseURL: server.URL})
	if _, err := client.GetAccount(context.Background(), "0.0.1"); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestGetJSONInvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client, _ := NewClient(Config{Network: "testnet", BaseURL: server.URL})
	if _, err := client.GetContract(context.Background(), "0.0.1"); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestResolveURL(t *testing.T) {
	client, _ := NewClient(Config{Network: "testnet", BaseURL: "https://mirror.example.com"})
	if got := client.resolveURL("api/v1/accounts/0.0.1"); got != "https://mirror.example.com/api/v1/accounts/0.0.1" {
		t.Fatalf("unexpected url: %s", got)
	}
	if got := client.resolveURL("https://other.example.com/x"); got != "https://other.example.com/x" {
		t.Fatalf("absolute url should pass through, got %s", got)
	}
}
