package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/chriscouch/ledgercore/internal/core/ports/services"
)

// actorIDHeader names the caller performing a mutation; the engine itself has
// no user management.
const actorIDHeader = "X-Actor-ID"

const defaultActorID = "system"

func actorID(c *gin.Context) string {
	if id := c.GetHeader(actorIDHeader); id != "" {
		return id
	}
	return defaultActorID
}

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	rateProvider portssvc.RateProvider,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services, rateProvider)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	rateProvider portssvc.RateProvider,
) {
	v1 := r.Group("/api/v1")

	registerCurrencyRoutes(v1, services.Currency)
	registerAccountRoutes(v1, services.Chart)
	registerDocumentRoutes(v1, services.Document)
	registerLedgerRoutes(v1, services.Ledger, services.Document, rateProvider)
	registerReportingRoutes(v1, services.Reporting)
}
