package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", mw, func(c *gin.Context) {
		c.String(http.StatusOK, ViewerID(c))
	})
	return router
}

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("secret", "dashboard")
	token, err := v.Issue("c-1", time.Minute)
	require.NoError(t, err)

	viewer, err := v.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "c-1", viewer)
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier("secret", "dashboard")

	_, err := v.Verify("")
	require.ErrorIs(t, err, ErrMissingToken)

	expired, err := v.Issue("c-1", -time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(expired)
	require.ErrorIs(t, err, ErrInvalidToken)

	forged, err := NewVerifier("other", "dashboard").Issue("c-1", time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(forged)
	require.ErrorIs(t, err, ErrInvalidToken)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "dashboard",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = v.Verify(noSubject)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	v := NewVerifier("secret", "")
	router := newProtectedRouter(Middleware(v))
	token, err := v.Issue("c-7", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "c-7", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), `"redirect":"/login"`)
}

func TestHeaderMiddleware(t *testing.T) {
	router := newProtectedRouter(HeaderMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(ViewerHeader, "c-3")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, "c-3", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
