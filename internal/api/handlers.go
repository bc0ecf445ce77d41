package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"shortlink-allocator/internal/batch"
	"shortlink-allocator/internal/config"
	"shortlink-allocator/internal/shortener"
)

// CreateLinkRequest is the body of POST /links.
type CreateLinkRequest struct {
	Target string `json:"target" binding:"required,url"`
}

// CreateLinkResponse is returned for a committed allocation.
type CreateLinkResponse struct {
	Code      string `json:"code"`
	Shortlink string `json:"shortlink"`
	Target    string `json:"target"`
}

// BatchRequest is the body of POST /links/batch.
type BatchRequest struct {
	Targets []string `json:"targets" binding:"required"`
}

// BatchItem carries either a code and shortlink or an error for one target.
type BatchItem struct {
	Target    string `json:"target"`
	Code      string `json:"code,omitempty"`
	Shortlink string `json:"shortlink,omitempty"`
	Error     string `json:"error,omitempty"`
}

// BatchResponse lists results in request order.
type BatchResponse struct {
	Results []BatchItem `json:"results"`
}

// LookupResponse is returned by GET /links/:code.
type LookupResponse struct {
	Code   string `json:"code"`
	Target string `json:"target"`
}

// Handler serves the HTTP surface over an Allocator.
type Handler struct {
	allocator *shortener.Allocator
	pool      *batch.Pool
	cfg       *config.Config
}

// NewHandler returns a Handler.
func NewHandler(allocator *shortener.Allocator, pool *batch.Pool, cfg *config.Config) *Handler {
	return &Handler{allocator: allocator, pool: pool, cfg: cfg}
}

// CreateLinkHandler allocates a code for one target.
func (h *Handler) CreateLinkHandler(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if msg := h.checkDomain(req.Target); msg != "" {
		c.JSON(http.StatusForbidden, gin.H{"error": msg})
		return
	}

	code, err := h.allocator.Allocate(c.Request.Context(), req.Target)
	if err != nil {
		status, msg := allocationError(err)
		log.Printf("Allocation failed for URL %s: %v", req.Target, err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	log.Printf("Allocated short code %s for URL: %s", code, req.Target)
	c.JSON(http.StatusCreated, CreateLinkResponse{
		Code:      string(code),
		Shortlink: h.shortlink(code),
		Target:    req.Target,
	})
}

// BatchCreateHandler allocates codes for up to BatchMaxURLs targets
// concurrently. Per-target failures are reported inline.
func (h *Handler) BatchCreateHandler(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	targets := make([]string, 0, len(req.Targets))
	for _, t := range req.Targets {
		if t = strings.TrimSpace(t); t != "" {
			targets = append(targets, t)
		}
	}
	if len(targets) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter at least one valid URL."})
		return
	}
	if len(targets) > h.cfg.BatchMaxURLs {
		log.Printf("Batch: truncating %d targets to %d", len(targets), h.cfg.BatchMaxURLs)
		targets = targets[:h.cfg.BatchMaxURLs]
	}

	items := make([]BatchItem, len(targets))
	var pending []string
	var slots []int
	for i, t := range targets {
		items[i].Target = t
		if err := shortener.ValidateTarget(t); err != nil {
			items[i].Error = "Invalid URL"
			continue
		}
		if msg := h.checkDomain(t); msg != "" {
			items[i].Error = msg
			continue
		}
		pending = append(pending, t)
		slots = append(slots, i)
	}

	for _, r := range h.pool.AllocateAll(c.Request.Context(), pending) {
		item := &items[slots[r.Index]]
		if r.Err != nil {
			_, item.Error = allocationError(r.Err)
			continue
		}
		item.Code = string(r.Code)
		item.Shortlink = h.shortlink(r.Code)
	}

	c.JSON(http.StatusOK, BatchResponse{Results: items})
}

// LookupHandler reports whether a code is mapped and to what.
func (h *Handler) LookupHandler(c *gin.Context) {
	code := shortener.ShortCode(c.Param("code"))
	target, err := h.allocator.LookupRedirect(c.Request.Context(), code)
	if err != nil {
		h.lookupError(c, code, err)
		return
	}
	c.JSON(http.StatusOK, LookupResponse{Code: string(code), Target: target})
}

// RedirectHandler sends the client to the mapped target.
func (h *Handler) RedirectHandler(c *gin.Context) {
	code := shortener.ShortCode(c.Param("code"))
	target, err := h.allocator.LookupRedirect(c.Request.Context(), code)
	if err != nil {
		h.lookupError(c, code, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// HealthCheckHandler provides a simple health check endpoint.
func HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

// StatusHandler reports the effective allocation settings.
func (h *Handler) StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":                  "UP",
		"store_backend":           h.cfg.StoreBackend,
		"max_allocation_attempts": h.allocator.MaxAttempts(),
		"batch_worker_count":      h.pool.WorkerCount(),
		"batch_max_urls":          h.cfg.BatchMaxURLs,
	})
}

func (h *Handler) lookupError(c *gin.Context, code shortener.ShortCode, err error) {
	if errors.Is(err, shortener.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Short code not found"})
		return
	}
	log.Printf("Error retrieving link for short code %s: %v", code, err)
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage unavailable"})
}

// checkDomain returns a non-empty message when target's host is not allowed.
func (h *Handler) checkDomain(target string) string {
	allowed := h.cfg.AllowedDomainList()
	if len(allowed) == 0 {
		return ""
	}
	parsedURL, err := url.Parse(target)
	if err != nil {
		return "Invalid URL"
	}
	hostname := parsedURL.Hostname()
	if !slices.Contains(allowed, hostname) {
		return fmt.Sprintf("Domain '%s' is not allowed for shortening.", hostname)
	}
	return ""
}

func (h *Handler) shortlink(code shortener.ShortCode) string {
	return h.cfg.BaseURL + "/" + string(code)
}

// allocationError maps an Allocate error to a status code and message.
func allocationError(err error) (int, string) {
	switch {
	case errors.Is(err, shortener.ErrInvalidTarget):
		return http.StatusBadRequest, "Invalid URL"
	case errors.Is(err, shortener.ErrExhausted):
		return http.StatusConflict, "Failed to generate unique code"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "Request cancelled before a code was saved"
	default:
		return http.StatusServiceUnavailable, "Failed to save shortlink"
	}
}
