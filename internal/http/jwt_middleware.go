package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"autovest/internal/service"
)

const clientClaimsKey = "client_claims"

// ClientAuthMiddleware exige un access token emitido para un cliente de la
// API y deja sus claims en el contexto.
func ClientAuthMiddleware(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !jwtSvc.Enabled() {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "jwt not configured"})
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := jwtSvc.ParseAccessToken(token)
		switch {
		case errors.Is(err, service.ErrJWTExpired):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
			return
		case err != nil:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(clientClaimsKey, claims)
		c.Next()
	}
}

// ClientID devuelve el cliente autenticado de la petición, si lo hay.
func ClientID(c *gin.Context) (string, bool) {
	val, ok := c.Get(clientClaimsKey)
	if !ok {
		return "", false
	}
	claims, ok := val.(service.Claims)
	if !ok || claims.ClientID == "" {
		return "", false
	}
	return claims.ClientID, true
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
