// server/internal/api/handlers/view_handler.go
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pr-tracker-api-server/internal/cache"
	"pr-tracker-api-server/internal/s3"
	"pr-tracker-api-server/internal/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Exporter uploads a JSON document and returns where it can be fetched.
type Exporter interface {
	UploadJSON(ctx context.Context, objectKey string, v interface{}) (string, error)
}

type ViewHandler struct {
	Source   RequestSource
	Cache    cache.Cache
	TTL      time.Duration
	Exporter Exporter
	Logger   *zap.Logger
}

type ExportViewRequest struct {
	View string `json:"view" binding:"required,oneof=pipeline in-transit business all"`
}

// ViewCacheKey names the cached views of one mirror revision. The epoch
// keeps processes sharing a cache from reading each other's revisions.
func ViewCacheKey(epoch string, revision uint64) string {
	return fmt.Sprintf("views:%s:%d", epoch, revision)
}

// EvictViews drops the cached views of revision.
func EvictViews(ctx context.Context, c cache.Cache, epoch string, revision uint64) error {
	return c.Delete(ctx, ViewCacheKey(epoch, revision))
}

// PurgeViews drops every cached view of epoch.
func PurgeViews(ctx context.Context, c cache.Cache, epoch string) error {
	return c.DeleteByPattern(ctx, fmt.Sprintf("views:%s:*", epoch))
}

// views returns the classified views for the current mirror revision,
// consulting the cache first. Cache failures fall back to computing.
func (h *ViewHandler) views(c *gin.Context) (views.Views, uint64) {
	revision := h.Source.Revision()
	requests := h.Source.Requests()
	key := ViewCacheKey(h.Source.Epoch(), revision)

	var v views.Views
	if h.Cache != nil {
		err := cache.GetJSON(c.Request.Context(), h.Cache, key, &v)
		if err == nil {
			return v, revision
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			h.Logger.Warn("view cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v = views.FromRequests(requests)
	if h.Cache != nil {
		if err := cache.SetJSON(c.Request.Context(), h.Cache, key, v, h.TTL); err != nil {
			h.Logger.Warn("view cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return v, revision
}

func (h *ViewHandler) GetPipeline(c *gin.Context) {
	v, _ := h.views(c)
	c.JSON(http.StatusOK, v.Pipeline)
}

func (h *ViewHandler) GetInTransit(c *gin.Context) {
	v, _ := h.views(c)
	c.JSON(http.StatusOK, v.InTransit)
}

func (h *ViewHandler) GetBusiness(c *gin.Context) {
	v, _ := h.views(c)
	c.JSON(http.StatusOK, v.Business)
}

func (h *ViewHandler) GetSummary(c *gin.Context) {
	v, revision := h.views(c)
	c.JSON(http.StatusOK, gin.H{
		"revision": revision,
		"summary":  views.Summarize(v),
	})
}

// ExportView writes one view, or all three, to object storage.
func (h *ViewHandler) ExportView(c *gin.Context) {
	if h.Exporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Export storage is not configured"})
		return
	}

	var req ExportViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, revision := h.views(c)
	var body interface{}
	switch req.View {
	case string(views.KindPipeline):
		body = v.Pipeline
	case string(views.KindInTransit):
		body = v.InTransit
	case string(views.KindBusiness):
		body = v.Business
	default:
		body = v
	}

	key := s3.ExportKey(req.View, time.Now())
	url, err := h.Exporter.UploadJSON(c.Request.Context(), key, gin.H{
		"view":     req.View,
		"revision": revision,
		"data":     body,
	})
	if err != nil {
		h.Logger.Error("view export failed", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to export view", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url":      url,
		"key":      key,
		"revision": revision,
	})
}
