package binancebridge

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestSignRequestSetsHeaderAndSignature(t *testing.T) {
	sign := SignRequest("my-api-key", "my-secret")

	req, err := http.NewRequest(http.MethodGet, "https://example.test/api/v3/account?symbol=LTCBTC&timestamp=1499827319559", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := sign(req); err != nil {
		t.Fatalf("sign: %v", err)
	}

	if got := req.Header.Get(APIKeyHeader); got != "my-api-key" {
		t.Errorf("%s = %q, want my-api-key", APIKeyHeader, got)
	}

	q := req.URL.Query()
	if q.Get("timestamp") != "1499827319559" {
		t.Errorf("caller timestamp was replaced: %q", q.Get("timestamp"))
	}

	// The signature must be HMAC-SHA256 over the encoded query string
	// minus the signature parameter itself.
	signed := url.Values{}
	signed.Set("symbol", "LTCBTC")
	signed.Set("timestamp", "1499827319559")
	mac := hmac.New(sha256.New, []byte("my-secret"))
	mac.Write([]byte(signed.Encode()))
	want := hex.EncodeToString(mac.Sum(nil))

	if got := q.Get("signature"); got != want {
		t.Errorf("signature = %q, want %q", got, want)
	}
	if !strings.HasSuffix(req.URL.RawQuery, "&signature="+want) {
		t.Errorf("signature must be the final query parameter: %q", req.URL.RawQuery)
	}
}

func TestSignRequestAddsTimestamp(t *testing.T) {
	sign := SignRequest("k", "s")
	req, _ := http.NewRequest(http.MethodGet, "https://example.test/api/v3/account", nil)
	if err := sign(req); err != nil {
		t.Fatalf("sign: %v", err)
	}
	if req.URL.Query().Get("timestamp") == "" {
		t.Error("no timestamp parameter added")
	}
}

func TestSignRequestDropsStaleSignature(t *testing.T) {
	sign := SignRequest("k", "s")
	req, _ := http.NewRequest(http.MethodGet,
		"https://example.test/api/v3/order?symbol=BTCUSDT&timestamp=1&signature=deadbeef", nil)
	if err := sign(req); err != nil {
		t.Fatalf("sign: %v", err)
	}

	signed := url.Values{}
	signed.Set("symbol", "BTCUSDT")
	signed.Set("timestamp", "1")
	mac := hmac.New(sha256.New, []byte("s"))
	mac.Write([]byte(signed.Encode()))
	want := hex.EncodeToString(mac.Sum(nil))

	if got := req.URL.Query().Get("signature"); got != want {
		t.Errorf("stale signature leaked into payload: got %q, want %q", got, want)
	}
}
