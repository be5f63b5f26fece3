package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/candies-app/candies/internal/candy"
	"github.com/candies-app/candies/internal/candy/service"
	"github.com/candies-app/candies/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	msgUpdated = "Candy successfully updated"
	msgDeleted = "Candy successfully deleted"
)

// Handler maps the /candies routes onto the candy service.
type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterCandyRoutes registers the candy routes on r. Any guard handlers run
// in front of the write routes (create, update, delete) only.
func RegisterCandyRoutes(r gin.IRouter, svc *service.Service, guard ...gin.HandlerFunc) {
	h := NewHandler(svc)
	write := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		chain := make([]gin.HandlerFunc, 0, len(guard)+1)
		chain = append(chain, guard...)
		return append(chain, fn)
	}

	r.GET("/candies", h.List)
	r.POST("/candies", write(h.Create)...)
	r.GET("/candies/:id", h.Get)
	r.PUT("/candies/:id", write(h.Update)...)
	r.PATCH("/candies/:id", write(h.Update)...)
	r.DELETE("/candies/:id", write(h.Delete)...)
}

// List renders the index page, or a JSON array when the client prefers JSON.
// Any other Accept value gets the page.
func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, "find", err)
		return
	}
	if c.NegotiateFormat(binding.MIMEHTML, binding.MIMEJSON) == binding.MIMEJSON {
		c.JSON(http.StatusOK, list)
		return
	}
	c.HTML(http.StatusOK, "index", gin.H{"Title": "Candies", "Candies": list})
}

func (h *Handler) Create(c *gin.Context) {
	var in candy.Input
	if err := bind(c, &in); err != nil {
		fail(c, "create", err)
		return
	}
	created, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, "create", err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// Get answers {candy: null} for unknown ids; that is not treated as an error.
func (h *Handler) Get(c *gin.Context) {
	found, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"candy": nil})
			return
		}
		fail(c, "find", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"candy": found})
}

func (h *Handler) Update(c *gin.Context) {
	var p candy.Patch
	if err := bind(c, &p); err != nil {
		fail(c, "update", err)
		return
	}
	if _, err := h.svc.Update(c.Request.Context(), c.Param("id"), p); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			fail(c, "find", err)
			return
		}
		fail(c, "update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgUpdated})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, "delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgDeleted})
}

// bind decodes a JSON or urlencoded body into dst. The query string is never
// read. An empty body counts as an empty object.
func bind(c *gin.Context, dst interface{}) error {
	b := binding.Default(c.Request.Method, c.ContentType())
	if b == binding.Form {
		b = binding.FormPost
	}
	err := c.ShouldBindWith(dst, b)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return badRequest{err}
}

type badRequest struct{ err error }

func (b badRequest) Error() string { return b.err.Error() }
func (b badRequest) Unwrap() error { return b.err }

// fail writes the error message for verb. Store failures keep the legacy
// 200 status; malformed input and unknown ids on update get 400 and 404.
func fail(c *gin.Context, verb string, err error) {
	status := http.StatusOK
	var br badRequest
	switch {
	case errors.As(err, &br), errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	default:
		logger.Errorf("candy %s failed: %v", verb, err)
	}
	c.JSON(status, gin.H{"message": "Could not " + verb + " candy b/c:" + err.Error()})
}
