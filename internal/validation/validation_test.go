package validation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hostsapi/hosts-api/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(rules ...Rule) *gin.Engine {
	g := gin.New()
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	g.POST("/items/:id", middleware.JSONBody(0), Validate(rules...), ok)
	g.GET("/items", Validate(rules...), ok)
	return g
}

func post(g *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestValidate_PassesThrough(t *testing.T) {
	g := newEngine(
		Param("id").NotEmpty("id is required"),
		Body("name").IsString("name must be a string").NotEmpty("name is required"),
		Body("email").Optional().IsString("email must be a string").IsEmail("email is not valid"),
	)
	w := post(g, "/items/abc", `{"name":"Ana","email":" a@b.com "}`)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestValidate_AggregatesAllFailures(t *testing.T) {
	g := newEngine(
		Param("id").NotEmpty("id is required"),
		Body("name").IsString("name must be a string").NotEmpty("name is required"),
		Body("email").Optional().IsString("email must be a string").IsEmail("email is not valid"),
		Body("phoneNumber").Optional().IsString("phoneNumber must be a string"),
	)
	w := post(g, "/items/%20", `{"name":"   ","email":"not-an-email","phoneNumber":42}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode(t, w)
	require.Equal(t, ErrorKind, resp.Error)
	require.Len(t, resp.Errors, 4)
	assert.Equal(t, FieldError{Field: "id", Message: "id is required", Value: " ", Location: LocationPath}, resp.Errors[0])
	assert.Equal(t, "name", resp.Errors[1].Field)
	assert.Equal(t, "name is required", resp.Errors[1].Message)
	assert.Equal(t, LocationBody, resp.Errors[1].Location)
	assert.Equal(t, "email is not valid", resp.Errors[2].Message)
	assert.Equal(t, "not-an-email", resp.Errors[2].Value)
	assert.Equal(t, "phoneNumber must be a string", resp.Errors[3].Message)
	assert.Equal(t, float64(42), resp.Errors[3].Value)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	g := newEngine(Body("name").IsString("name must be a string").NotEmpty("name is required"))
	w := post(g, "/items/x", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	require.Len(t, resp.Errors, 1)
	require.Equal(t, "name", resp.Errors[0].Field)
	require.Equal(t, "name must be a string", resp.Errors[0].Message)
	require.Nil(t, resp.Errors[0].Value)
}

func TestValidate_NullOptionalIsAbsent(t *testing.T) {
	g := newEngine(Body("email").Optional().IsString("email must be a string"))
	w := post(g, "/items/x", `{"email":null}`)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestValidate_QueryIntegers(t *testing.T) {
	g := newEngine(
		Query("limit").Optional().IsInt(1, 100, "limit must be an integer between 1 and 100"),
		Query("page").Optional().IsInt(1, 0, "page must be an integer greater than or equal to 1"),
	)
	cases := []struct {
		query string
		code  int
		n     int
	}{
		{"", http.StatusOK, 0},
		{"?limit=1&page=2", http.StatusOK, 0},
		{"?limit=100&page=100000", http.StatusOK, 0},
		{"?limit=0", http.StatusBadRequest, 1},
		{"?limit=101", http.StatusBadRequest, 1},
		{"?limit=abc&page=0", http.StatusBadRequest, 2},
		{"?page=-3", http.StatusBadRequest, 1},
		{"?page=1.5", http.StatusBadRequest, 1},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items"+tc.query, nil))
		require.Equal(t, tc.code, w.Code, "query %q", tc.query)
		if tc.code == http.StatusBadRequest {
			resp := decode(t, w)
			require.Len(t, resp.Errors, tc.n, "query %q", tc.query)
			require.Equal(t, LocationQuery, resp.Errors[0].Location)
		}
	}
}

func TestRuleCheckDoesNotShareBackingArray(t *testing.T) {
	base := Body("name").IsString("must be a string")
	a := base.Check("a", func(interface{}) bool { return false })
	b := base.Check("b", func(interface{}) bool { return false })

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	middleware.SetBody(c, map[string]interface{}{"name": "x"})

	require.Equal(t, "a", Evaluate(c, a)[0].Message)
	require.Equal(t, "b", Evaluate(c, b)[0].Message)
}

func TestValidate_AllowEmptySkipsChecks(t *testing.T) {
	g := newEngine(Body("email").Optional().AllowEmpty().IsString("email must be a string").IsEmail("email is not valid"))

	for _, body := range []string{`{"email":""}`, `{"email":"   "}`, `{"email":"a@b.com"}`} {
		require.Equal(t, http.StatusOK, post(g, "/items/x", body).Code, body)
	}

	w := post(g, "/items/x", `{"email":"nope"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "email is not valid", decode(t, w).Errors[0].Message)

	// a non-string is still rejected
	w = post(g, "/items/x", `{"email":5}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "email must be a string", decode(t, w).Errors[0].Message)
}
