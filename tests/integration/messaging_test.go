// Integration test: messaging gateway against a stub relay endpoint.
package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func TestSendThroughStubRelay(t *testing.T) {
	var sends atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sends.Add(1)
		w.Write([]byte("OK"))
	}))
	defer srv.Close()

	_, gw, _ := setupPantry(t)
	gw.SetEndpoint(srv.URL)
	if err := gw.Configure(types.RelayConfig{ServiceID: "svc", TemplateID: "tpl", Token: "tok"}); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	if _, err := gw.Send(context.Background(), "Hello", "Integration test body", ""); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if sends.Load() != 1 {
		t.Fatalf("relay received %d sends, want 1", sends.Load())
	}

	records := gw.History()
	if len(records) != 1 {
		t.Fatalf("history has %d records, want 1", len(records))
	}
	if records[0].Subject != "Hello" {
		t.Errorf("subject = %q, want Hello", records[0].Subject)
	}
	if got := gw.RemainingToday(); got != types.MaxSendsPerDay-1 {
		t.Errorf("remaining = %d, want %d", got, types.MaxSendsPerDay-1)
	}
}

func TestRelayFailureDoesNotConsumeQuota(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"service suspended"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	_, gw, _ := setupPantry(t)
	gw.SetEndpoint(srv.URL)
	if err := gw.Configure(types.RelayConfig{ServiceID: "svc", TemplateID: "tpl", Token: "tok"}); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	if _, err := gw.Send(context.Background(), "Hello", "body", ""); err == nil {
		t.Fatal("Send: expected error from failing relay")
	}
	if len(gw.History()) != 0 {
		t.Error("failed send must not append to history")
	}
	if got := gw.RemainingToday(); got != types.MaxSendsPerDay {
		t.Errorf("remaining = %d, want %d", got, types.MaxSendsPerDay)
	}
}
