package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func bodyEcho(limit int64) *gin.Engine {
	r := gin.New()
	r.POST("/echo", JSONBody(limit), func(c *gin.Context) { c.JSON(http.StatusOK, Body(c)) })
	return r
}

func TestJSONBody_DecodesObject(t *testing.T) {
	r := bodyEcho(0)
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"Ana","n":1}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"name":"Ana","n":1}`, w.Body.String())
}

func TestJSONBody_EmptyAndNonObjectBodies(t *testing.T) {
	r := bodyEcho(0)
	for _, body := range []string{"", "[1,2]", `"text"`} {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, "body %q", body)
		require.JSONEq(t, `{}`, w.Body.String())
	}
}

func TestJSONBody_IgnoresNonJSONContentType(t *testing.T) {
	r := bodyEcho(0)
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`name=Ana`))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{}`, w.Body.String())
}

func TestJSONBody_Malformed(t *testing.T) {
	r := bodyEcho(0)
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"invalid JSON body"}`, w.Body.String())
}

func TestJSONBody_TooLarge(t *testing.T) {
	r := bodyEcho(16)
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"`+strings.Repeat("a", 64)+`"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestJSONBody_RejectsTrailingData(t *testing.T) {
	r := bodyEcho(0)
	for _, body := range []string{`{"name":"Ana"} trailing-garbage`, `{"name":"Ana"}{}`, `{"name":"Ana"} [1]`} {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
		require.JSONEq(t, `{"error":"invalid JSON body"}`, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("{\"name\":\"Ana\"}\n  \n"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
