package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Register attaches the Prometheus metrics endpoint to the router.
func Register(router *gin.Engine, path string) {
	router.GET(path, gin.WrapH(promhttp.Handler()))
}

var (
	// VaultUploads counts successfully stored secure files.
	VaultUploads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "beyond_vault_uploads_total",
		Help: "Number of secure files stored.",
	})

	// VaultRetrievals counts issued retrieval bundles.
	VaultRetrievals = promauto.NewCounter(prometheus.CounterOpts{
		Name: "beyond_vault_retrievals_total",
		Help: "Number of retrieval bundles issued.",
	})

	// VaultDeletes counts deleted secure files.
	VaultDeletes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "beyond_vault_deletes_total",
		Help: "Number of secure files deleted.",
	})

	// KeyUnwrapFailures counts wrapped-key authentication failures. A nonzero
	// rate means tampered key material or a wrong master secret and warrants
	// investigation, not retries.
	KeyUnwrapFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "beyond_vault_key_unwrap_failures_total",
		Help: "Number of data key unwrap operations that failed authentication.",
	})
)
