package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hostsapi/hosts-api/internal/host"
	"github.com/hostsapi/hosts-api/internal/host/service"
	"github.com/hostsapi/hosts-api/internal/validation"
	"github.com/hostsapi/hosts-api/pkg/logger"
	"github.com/hostsapi/hosts-api/pkg/middleware"
)

const (
	msgNotFound    = "host not found"
	msgCreateError = "error creating host"
	msgListError   = "error listing hosts"
	msgGetError    = "error fetching host"
	msgUpdateError = "error updating host"
	msgDeleteError = "error deleting host"
)

var (
	idRule = validation.Param("id").IsString("id must be a string").NotEmpty("id is required")

	paginationRules = []validation.Rule{
		validation.Query("limit").Optional().IsInt(1, service.MaxLimit, "limit must be an integer between 1 and 100"),
		validation.Query("page").Optional().IsInt(1, 0, "page must be an integer greater than or equal to 1"),
	}

	optionalFieldRules = []validation.Rule{
		validation.Body("documentId").Optional().IsString("documentId must be a string"),
		validation.Body("phoneNumber").Optional().IsString("phoneNumber must be a string"),
		validation.Body("email").Optional().AllowEmpty().IsString("email must be a string").IsEmail("email is not valid"),
	}

	createRules = append([]validation.Rule{
		validation.Body("name").IsString("name must be a string").NotEmpty("name is required"),
	}, optionalFieldRules...)

	updateRules = append([]validation.Rule{
		idRule,
		validation.Body("name").Optional().IsString("name must be a string").NotEmpty("name cannot be empty"),
	}, optionalFieldRules...)
)

// RegisterHostRoutes mounts the hosts resource under /hosts.
// bodyLimit caps JSON bodies; zero selects middleware.DefaultBodyLimit.
func RegisterHostRoutes(r gin.IRouter, svc service.Service, bodyLimit int64) {
	h := &hostHandler{svc: svc}
	g := r.Group("/hosts")
	g.POST("", middleware.JSONBody(bodyLimit), validation.Validate(createRules...), h.create)
	g.GET("", validation.Validate(paginationRules...), h.list)
	g.GET("/:id", validation.Validate(idRule), h.get)
	g.PUT("/:id", middleware.JSONBody(bodyLimit), validation.Validate(updateRules...), h.update)
	g.DELETE("/:id", validation.Validate(idRule), h.delete)
}

type hostHandler struct {
	svc service.Service
}

func (h *hostHandler) create(c *gin.Context) {
	body := middleware.Body(c)
	name, _ := body["name"].(string)
	in := host.CreateInput{
		Name:        name,
		DocumentID:  optionalString(body, "documentId"),
		PhoneNumber: optionalString(body, "phoneNumber"),
		Email:       optionalString(body, "email"),
	}
	created, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		internalError(c, msgCreateError, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *hostHandler) list(c *gin.Context) {
	limit := queryInt(c, "limit", service.DefaultLimit)
	page := queryInt(c, "page", service.DefaultPage)
	p, err := h.svc.List(c.Request.Context(), page, limit)
	if err != nil {
		internalError(c, msgListError, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *hostHandler) get(c *gin.Context) {
	found, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
			return
		}
		internalError(c, msgGetError, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *hostHandler) update(c *gin.Context) {
	body := middleware.Body(c)
	in := host.UpdateInput{
		Name:        optionalString(body, "name"),
		DocumentID:  optionalString(body, "documentId"),
		PhoneNumber: optionalString(body, "phoneNumber"),
		Email:       optionalString(body, "email"),
	}
	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
			return
		}
		internalError(c, msgUpdateError, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *hostHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
			return
		}
		internalError(c, msgDeleteError, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// internalError logs the cause and answers with a message that hides it.
func internalError(c *gin.Context, msg string, err error) {
	logger.Errorf("%s %s: %s: %v", c.Request.Method, c.Request.URL.Path, msg, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

func optionalString(body map[string]interface{}, key string) host.Optional[string] {
	if s, ok := body[key].(string); ok {
		return host.Some(s)
	}
	return host.None[string]()
}

// queryInt reads an already validated integer query parameter.
func queryInt(c *gin.Context, key string, def int) int {
	v, ok := c.GetQuery(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}
