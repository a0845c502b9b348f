package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"revebot.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// MerchantIDKey is the context key for the authenticated merchant id
	MerchantIDKey = "merchantId"
	// MerchantDomainKey is the context key for the merchant storefront domain
	MerchantDomainKey = "merchantDomain"
)

// AuthMiddleware validates the merchant session token and exposes the
// merchant identity to handlers
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if err == jwt.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		c.Set(MerchantIDKey, claims.MerchantID)
		c.Set(MerchantDomainKey, claims.Domain)

		c.Next()
	}
}

// GetMerchantID gets the authenticated merchant id from context
func GetMerchantID(c *gin.Context) (uuid.UUID, bool) {
	merchantID, exists := c.Get(MerchantIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return merchantID.(uuid.UUID), true
}

// GetMerchantDomain gets the merchant storefront domain from context
func GetMerchantDomain(c *gin.Context) (string, bool) {
	domain, exists := c.Get(MerchantDomainKey)
	if !exists {
		return "", false
	}
	return domain.(string), true
}
