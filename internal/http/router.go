package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"autovest/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
// Con jwtSvc deshabilitado las rutas de consulta quedan abiertas.
func NewRouter(
	logger *zap.Logger,
	queryH *QueryHandler,
	jwtSvc *service.JWTService,
) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/health", queryH.Health)

	api := r.Group("")
	if jwtSvc.Enabled() {
		api.Use(ClientAuthMiddleware(jwtSvc))
	}
	api.POST("/query", queryH.PostQuery)
	api.GET("/queries", queryH.ListQueries)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
