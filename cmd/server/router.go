package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "producer-payout-backend"
	serviceVersion = "0.1.0"
)

const landingPage = `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Producer Payout</title></head>
<body>
<h1>Producer Payout API</h1>
<p>Linked accounts, KYC onboarding, transfers and checkout orders live under <code>/api/v1</code>.</p>
<ul>
<li><a href="/health">/health</a></li>
<li><a href="/metrics">/metrics</a></li>
</ul>
</body>
</html>
`

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Idempotency-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerLandingRoute(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(landingPage))
	})
}

func registerMetricsRoute(r *gin.Engine, h http.Handler) {
	r.GET("/metrics", gin.WrapH(h))
}

// registerStaticRoutes serves dir under /static when it exists
func registerStaticRoutes(r *gin.Engine, dir string) bool {
	if dir == "" {
		return false
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	r.Static("/static", dir)
	return true
}
