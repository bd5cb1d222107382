package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wishbox/wishbox/internal/logger"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	gin.SetMode(gin.TestMode)

	code := m.Run()
	os.Exit(code)
}

func signToken(t *testing.T, subject string, expiresAt time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

// authRouter wires the middleware under test in front of a probe handler that
// reports what the context carries
func authRouter(handler gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/protected", handler, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":     UserID(c),
			"viewer_hash": ViewerHash(c),
		})
	})
	return r
}

func doRequest(r *gin.Engine, headers map[string]string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_ValidToken(t *testing.T) {
	r := authRouter(Auth(AuthConfig{JWTSecret: testSecret}))
	token := signToken(t, "42", time.Now().Add(time.Hour))

	w := doRequest(r, map[string]string{"Authorization": "Bearer " + token})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}

func TestAuth_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer scheme", "Basic dXNlcjpwYXNz"},
		{"malformed header", "Bearer"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong signature", "Bearer " + func() string {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "42"})
			signed, _ := token.SignedString([]byte("other-secret"))
			return signed
		}()},
		{"non-numeric subject", ""},
	}

	r := authRouter(Auth(AuthConfig{JWTSecret: testSecret}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := tt.header
			if tt.name == "non-numeric subject" {
				header = "Bearer " + signToken(t, "alice", time.Now().Add(time.Hour))
			}
			headers := map[string]string{}
			if header != "" {
				headers["Authorization"] = header
			}

			w := doRequest(r, headers)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	r := authRouter(Auth(AuthConfig{JWTSecret: testSecret}))
	token := signToken(t, "42", time.Now().Add(-time.Minute))

	w := doRequest(r, map[string]string{"Authorization": "Bearer " + token})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_UnsignedTokenRejected(t *testing.T) {
	r := authRouter(Auth(AuthConfig{JWTSecret: testSecret}))

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "42"})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	w := doRequest(r, map[string]string{"Authorization": "Bearer " + unsigned})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	r := authRouter(OptionalAuth(AuthConfig{JWTSecret: testSecret}))

	w := doRequest(r, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)
}

func TestOptionalAuth_InvalidTokenStillRejected(t *testing.T) {
	r := authRouter(OptionalAuth(AuthConfig{JWTSecret: testSecret}))

	w := doRequest(r, map[string]string{"Authorization": "Bearer not.a.jwt"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestViewerIdentity_Header(t *testing.T) {
	r := authRouter(ViewerIdentity(true))

	w := doRequest(r, map[string]string{ViewerTokenHeader: "raw-viewer-token"})

	assert.Equal(t, http.StatusOK, w.Code)
	// The raw token never reaches handlers, only its hash does
	assert.Contains(t, w.Body.String(), HashViewerToken("raw-viewer-token"))
	assert.NotContains(t, w.Body.String(), "raw-viewer-token")
}

func TestViewerIdentity_CookieFallback(t *testing.T) {
	r := authRouter(ViewerIdentity(true))

	w := doRequest(r, nil, &http.Cookie{Name: ViewerTokenCookie, Value: "cookie-token"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), HashViewerToken("cookie-token"))
}

func TestViewerIdentity_HeaderWinsOverCookie(t *testing.T) {
	r := authRouter(ViewerIdentity(true))

	w := doRequest(r, map[string]string{ViewerTokenHeader: "header-token"},
		&http.Cookie{Name: ViewerTokenCookie, Value: "cookie-token"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), HashViewerToken("header-token"))
}

func TestViewerIdentity_RequiredMissing(t *testing.T) {
	r := authRouter(ViewerIdentity(true))

	w := doRequest(r, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestViewerIdentity_OptionalMissing(t *testing.T) {
	r := authRouter(ViewerIdentity(false))

	w := doRequest(r, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"viewer_hash":""`)
}
