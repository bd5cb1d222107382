package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/wishbox/wishbox/internal/api/shared/errors"
	"github.com/wishbox/wishbox/internal/logger"
)

const (
	// UserIDKey is the gin context key holding the authenticated user id
	UserIDKey = "auth_user_id"
	// ViewerHashKey is the gin context key holding the hashed viewer token
	ViewerHashKey = "viewer_hash"

	// ViewerTokenHeader carries the opaque per-browser viewer identity
	ViewerTokenHeader = "X-Viewer-Token"
	// ViewerTokenCookie is the cookie fallback for the same identity
	ViewerTokenCookie = "viewer_token"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret string
}

// validateJWT validates an HS256 token and returns its claims
func validateJWT(tokenString string, secret string) (*jwt.RegisteredClaims, error) {
	if secret == "" {
		return nil, errors.New("JWT secret not configured")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// authenticate extracts and validates the bearer token, returning the user id
func authenticate(authHeader string, cfg AuthConfig) (int64, error) {
	if authHeader == "" {
		return 0, errors.New("missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return 0, errors.New("invalid Authorization header format")
	}

	claims, err := validateJWT(parts[1], cfg.JWTSecret)
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, errors.New("token subject is not a user id")
	}
	return userID, nil
}

// Auth returns a gin middleware requiring a valid bearer token
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := authenticate(c.GetHeader("Authorization"), cfg)
		if err != nil {
			logger.Warn("Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			apiErr := apierrors.NewUnauthorizedError("Authentication failed", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apiErr})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth parses a bearer token if one is present but lets anonymous
// requests through. An invalid token is still rejected rather than silently
// downgraded to anonymous.
func OptionalAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		userID, err := authenticate(authHeader, cfg)
		if err != nil {
			apiErr := apierrors.NewUnauthorizedError("Authentication failed", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apiErr})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id from the context, 0 when anonymous
func UserID(c *gin.Context) int64 {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}

// HashViewerToken derives the stored form of a raw viewer token. Raw tokens
// never reach the store or the logs.
func HashViewerToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ViewerIdentity resolves the viewer token from header or cookie, hashes it,
// and stores the hash on the context. Endpoints that act on behalf of a viewer
// reject requests without one.
func ViewerIdentity(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(ViewerTokenHeader)
		if token == "" {
			if cookie, err := c.Cookie(ViewerTokenCookie); err == nil {
				token = cookie
			}
		}

		if token == "" {
			if required {
				apiErr := apierrors.NewBadRequestError("Viewer token required",
					fmt.Sprintf("send the %s header", ViewerTokenHeader))
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": apiErr})
				return
			}
			c.Next()
			return
		}

		c.Set(ViewerHashKey, HashViewerToken(token))
		c.Next()
	}
}

// ViewerHash returns the hashed viewer token from the context, empty when absent
func ViewerHash(c *gin.Context) string {
	v, ok := c.Get(ViewerHashKey)
	if !ok {
		return ""
	}
	hash, _ := v.(string)
	return hash
}
