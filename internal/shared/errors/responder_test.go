package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/probe", handler)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))
	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestRespond_SetsProblemContentTypeAndInstance(t *testing.T) {
	rec, problem := serve(t, func(c *gin.Context) {
		Respond(c, NewUnavailableProblem("postgres down"))
	})

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	require.Equal(t, "/probe", problem.Instance)
	require.Equal(t, TypeUnavailable, problem.Type)
	require.Equal(t, true, problem.Extensions["retryable"])
}

func TestUnauthorized_CarriesRedirect(t *testing.T) {
	rec, problem := serve(t, func(c *gin.Context) {
		DefaultResponder.Unauthorized(c, "missing token", "/login")
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "/login", problem.Extensions["redirect"])
	require.Equal(t, "missing token", problem.Detail)
}

func TestChainedResponder_UsesFirstMatchingMapper(t *testing.T) {
	sentinel := errors.New("replaced")
	responder := NewChainedResponder("https://errors.example.com", func(err error) (ProblemDetail, bool) {
		if errors.Is(err, sentinel) {
			return ErrConflict.WithDetail(err.Error()), true
		}
		return ProblemDetail{}, false
	})

	rec, problem := serve(t, func(c *gin.Context) {
		responder.RespondError(c, sentinel)
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "https://errors.example.com"+TypeConflict, problem.Type)

	rec, _ = serve(t, func(c *gin.Context) {
		responder.RespondError(c, errors.New("unmapped"))
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, http.StatusInternalServerError, HTTPStatusFromError(errors.New("plain")))
	require.Equal(t, http.StatusConflict, HTTPStatusFromError(ErrConflict))
}
