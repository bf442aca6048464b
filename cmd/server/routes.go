package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"lusdt-bridge.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	bridgeHandler  *handlers.BridgeHandler
	feeHandler     *handlers.FeeHandler
	adminHandler   *handlers.AdminHandler
	authMiddleware gin.HandlerFunc
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		bridge := v1.Group("/bridge")
		{
			bridge.POST("/deposits", d.bridgeHandler.CreateDeposit)
			bridge.POST("/redemptions", d.bridgeHandler.CreateRedemption)
			bridge.GET("/transactions", d.bridgeHandler.ListTransactions)
			bridge.GET("/transactions/:id", d.bridgeHandler.GetTransaction)
			bridge.POST("/transactions/:id/cancel", d.bridgeHandler.CancelTransaction)
			bridge.GET("/stats", d.bridgeHandler.GetStats)

			fees := bridge.Group("/fees")
			{
				fees.GET("/quote", d.feeHandler.QuoteFee)
				fees.GET("/current", d.feeHandler.GetCurrentFee)
				fees.GET("/config", d.feeHandler.GetFeeConfig)
			}
		}

		// Admin routes (JWT role guarded)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware)
		{
			admin.PUT("/fee-config", d.adminHandler.UpdateFeeConfig)
			admin.PUT("/distribution-wallets", d.adminHandler.UpdateDistributionWallets)
			admin.POST("/pause", d.adminHandler.Pause)
			admin.POST("/unpause", d.adminHandler.Unpause)
			admin.GET("/pause-status", d.adminHandler.GetPauseStatus)
		}
	}
}
