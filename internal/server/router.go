package server

import (
	"github.com/JejeDurden2/beyond/internal/auth"
	"github.com/JejeDurden2/beyond/internal/beneficiary"
	"github.com/JejeDurden2/beyond/internal/config"
	"github.com/JejeDurden2/beyond/internal/keepsake"
	"github.com/JejeDurden2/beyond/internal/logger"
	"github.com/JejeDurden2/beyond/internal/metrics"
	"github.com/JejeDurden2/beyond/internal/vault"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Dependencies groups the services required by the HTTP router.
type Dependencies struct {
	Config             config.Config
	Logger             *zap.Logger
	DB                 *pgxpool.Pool
	ObjectStore        *minio.Client
	AuthService        *auth.Service
	BeneficiaryService *beneficiary.Service
	KeepsakeService    *keepsake.Service
	VaultService       *vault.Service
}

// NewRouter builds a Gin engine with foundational middleware and routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.Middleware())
	router.Use(gin.Logger())

	registerHealthRoutes(router, deps)
	metrics.Register(router, deps.Config.Metrics.PrometheusPath)

	api := router.Group("/v1")
	if deps.AuthService != nil {
		auth.RegisterRoutes(api, deps.AuthService)

		protected := api.Group("/")
		protected.Use(auth.AuthMiddleware(deps.AuthService))

		if deps.BeneficiaryService != nil {
			beneficiary.RegisterRoutes(protected, deps.BeneficiaryService)
		}
		if deps.KeepsakeService != nil {
			keepsake.RegisterRoutes(protected, deps.KeepsakeService)
		}
		if deps.VaultService != nil {
			vault.RegisterRoutes(protected, deps.VaultService)
		}
	}

	return router
}
