package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterExposesMetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	Register(r, "/metrics")

	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rr.Code)
	}
	if rr.Body.Len() == 0 {
		t.Fatalf("expected body from /metrics, got empty")
	}
}

func TestVaultCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(VaultUploads)
	VaultUploads.Inc()
	if got := testutil.ToFloat64(VaultUploads); got != before+1 {
		t.Fatalf("expected upload counter %v, got %v", before+1, got)
	}

	before = testutil.ToFloat64(KeyUnwrapFailures)
	KeyUnwrapFailures.Inc()
	if got := testutil.ToFloat64(KeyUnwrapFailures); got != before+1 {
		t.Fatalf("expected unwrap failure counter %v, got %v", before+1, got)
	}
}

func TestMetricsEndpointListsVaultCounters(t *testing.T) {
	gin.SetMode(gin.TestMode)

	VaultRetrievals.Inc()

	r := gin.New()
	Register(r, "/metrics")

	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if !strings.Contains(rr.Body.String(), "beyond_vault_retrievals_total") {
		t.Fatalf("expected retrieval counter in /metrics output")
	}
}
