package vault

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	vault "github.com/hashicorp/vault/api"
)

// kvServer answers KV-v2 reads for secret/pcgsite/db.
func kvServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/secret/data/pcgsite/db" {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"data":{"password":"s3cret","port":3306},"metadata":{}}}`))
	}))
}

func testClient(t *testing.T, addr string) *Client {
	t.Helper()
	cfg := vault.DefaultConfig()
	cfg.Address = addr
	c, err := newClient(cfg, "test-token", nil)
	if err != nil {
		t.Fatalf("newClient: %v", err)
	}
	return c
}

func TestResolveAndCache(t *testing.T) {
	var hits int32
	srv := kvServer(t, &hits)
	defer srv.Close()
	c := testClient(t, srv.URL)

	for i := 0; i < 2; i++ {
		v, err := c.Resolve(context.Background(), "secret/pcgsite/db#password")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if v != "s3cret" {
			t.Fatalf("value = %q", v)
		}
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("server hits = %d, want 1 (cached)", got)
	}
}

func TestGetKVErrors(t *testing.T) {
	var hits int32
	srv := kvServer(t, &hits)
	defer srv.Close()
	c := testClient(t, srv.URL)
	ctx := context.Background()

	if _, err := c.GetKV(ctx, "secret/pcgsite/db", "missing", 0); err == nil {
		t.Error("expected missing-key error")
	}
	if _, err := c.GetKV(ctx, "secret/pcgsite/db", "port", 0); err == nil {
		t.Error("expected non-string error")
	}
	if _, err := c.GetKV(ctx, "secret/pcgsite/nope", "password", 0); err == nil {
		t.Error("expected not-found error")
	}
	if _, err := c.Resolve(ctx, "secret/pcgsite/db"); err == nil {
		t.Error("expected malformed-ref error")
	}
	if _, err := c.GetKV(ctx, "secret", "password", 0); err == nil {
		t.Error("expected bare-mount error")
	}
}

func TestSplitMount(t *testing.T) {
	m, r := splitMount("/secret/pcgsite/db/")
	if m != "secret" || r != "pcgsite/db" {
		t.Fatalf("split = %q, %q", m, r)
	}
}
