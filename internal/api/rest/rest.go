package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/yoshitoke/nft141d/internal/api/middleware"
)

// SetupRoutes configures all REST API routes.
//
// The :vault parameter is a registry index on the index lookup routes and a
// vault address everywhere else; gin requires a single wildcard name per
// position so the handlers disambiguate. Registry-level operations live under
// /registry since gin does not allow a static segment next to a wildcard.
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Vault creation (admin only)
		v1.POST("/vaults", middleware.Auth(authCfg), handler.CreateVault)

		// Registry read endpoints (public read access)
		v1.GET("/vaults", handler.ListVaults)
		v1.GET("/registry/count", handler.GetVaultCount)
		v1.GET("/vaults/:vault", handler.GetVaultInfoByIndex)
		v1.GET("/vaults/:vault/address", handler.GetVaultAddressByIndex)

		// Cache refresh fan-out
		v1.POST("/registry/refresh", handler.RefreshVaults)

		// Registry policy endpoints (admin only for writes)
		v1.PUT("/vaults/:vault/params", middleware.Auth(authCfg), handler.SetVaultParams)
		v1.PUT("/registry/fee", middleware.Auth(authCfg), handler.SetFee)
		v1.GET("/registry/fee", handler.GetFee)

		// Vault read endpoints (public read access)
		v1.GET("/vaults/:vault/info", handler.GetVaultInfo)
		v1.GET("/vaults/:vault/supply", handler.GetTotalSupply)
		v1.GET("/vaults/:vault/balances/:account", handler.GetBalance)

		// Share account endpoints (requires authentication)
		v1.POST("/vaults/:vault/transfers", middleware.Auth(authCfg), handler.CreateTransfer)
		v1.DELETE("/vaults/:vault/balances/:account", middleware.Auth(authCfg), handler.CloseAccount)

		// Asset custody endpoints (requires authentication)
		v1.POST("/vaults/:vault/deposits", middleware.Auth(authCfg), handler.CreateDeposit)
		v1.POST("/vaults/:vault/withdrawals", middleware.Auth(authCfg), handler.CreateWithdrawal)
		v1.POST("/vaults/:vault/swaps", middleware.Auth(authCfg), handler.CreateSwap)
	}
}
