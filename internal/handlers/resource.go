package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ukydev/fleet-rental/internal/apperr"
	"github.com/ukydev/fleet-rental/internal/metrics"
	"github.com/ukydev/fleet-rental/internal/middleware"
)

// CRUD is the operation set every entity service exposes.
type CRUD[T any, K comparable, I any, C any] interface {
	Name() string
	Add(ctx context.Context, in I) (*T, error)
	FindByID(ctx context.Context, id K) (*T, error)
	FindAll(ctx context.Context) ([]*T, error)
	Update(ctx context.Context, id K, in I) (*T, error)
	Delete(ctx context.Context, id K) error
	Search(ctx context.Context, c C) ([]*T, error)
}

// KeyParser reads an entity key from the :id path parameter.
type KeyParser[K comparable] func(raw string) (K, error)

// IntKey parses numeric keys.
func IntKey(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("id", "id %q must be a positive integer", raw)
	}
	return id, nil
}

// MailKey parses mail keys, which may arrive percent-encoded.
func MailKey(raw string) (string, error) {
	mail, err := url.PathUnescape(raw)
	if err != nil || strings.TrimSpace(mail) == "" {
		return "", apperr.Validation("mail", "mail %q is not a valid key", raw)
	}
	return strings.TrimSpace(mail), nil
}

// Resource serves one entity service over HTTP.
type Resource[T any, K comparable, I any, C any] struct {
	svc     CRUD[T, K, I, C]
	key     KeyParser[K]
	metrics *metrics.Metrics
}

// NewResource creates a handler for svc. m may be nil.
func NewResource[T any, K comparable, I any, C any](svc CRUD[T, K, I, C], key KeyParser[K], m *metrics.Metrics) *Resource[T, K, I, C] {
	return &Resource[T, K, I, C]{svc: svc, key: key, metrics: m}
}

// Register mounts the routes on g.
func (h *Resource[T, K, I, C]) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.POST("/search", h.Search)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *Resource[T, K, I, C]) List(c echo.Context) error {
	items, err := h.svc.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []*T{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Resource[T, K, I, C]) Get(c echo.Context) error {
	id, err := h.key(c.Param("id"))
	if err != nil {
		return err
	}
	item, err := h.svc.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Resource[T, K, I, C]) Create(c echo.Context) error {
	var in I
	if err := c.Bind(&in); err != nil {
		return err
	}
	item, err := h.svc.Add(c.Request().Context(), in)
	h.record("add", err)
	if err != nil {
		return err
	}
	middleware.Logger(c).WithField("entity", h.svc.Name()).Info("entity added")
	return c.JSON(http.StatusCreated, item)
}

// Update applies a partial update: absent or meaningless fields keep the
// stored value.
func (h *Resource[T, K, I, C]) Update(c echo.Context) error {
	id, err := h.key(c.Param("id"))
	if err != nil {
		return err
	}
	var in I
	if err := c.Bind(&in); err != nil {
		return err
	}
	item, err := h.svc.Update(c.Request().Context(), id, in)
	h.record("update", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Resource[T, K, I, C]) Delete(c echo.Context) error {
	id, err := h.key(c.Param("id"))
	if err != nil {
		return err
	}
	err = h.svc.Delete(c.Request().Context(), id)
	h.record("delete", err)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Search narrows the collection with the criteria in the body. An empty
// body lists everything, and an empty result is a 404.
func (h *Resource[T, K, I, C]) Search(c echo.Context) error {
	var criteria C
	if err := c.Bind(&criteria); err != nil {
		return err
	}
	items, err := h.svc.Search(c.Request().Context(), criteria)
	h.record("search", err)
	if h.metrics != nil {
		h.metrics.SearchResults.WithLabelValues(h.svc.Name()).Observe(float64(len(items)))
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Resource[T, K, I, C]) record(op string, err error) {
	if h.metrics != nil {
		h.metrics.RecordOperation(h.svc.Name(), op, err)
	}
}
