package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"

	"leadcapture/pkg/lead"
	"leadcapture/pkg/messages"
	"leadcapture/pkg/middleware"
	"leadcapture/pkg/models"
	"leadcapture/pkg/pages"
	"leadcapture/pkg/services"
	"leadcapture/pkg/storage"
)

// Options configures the handlers beyond their collaborators
type Options struct {
	DoneURL              string
	AllowedRedirectHosts []string
	CookieTTLDays        int
}

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	subscriptionService services.SubscriptionService
	cookies             *storage.CookieBackend
	pages               *pages.Pages
	opts                Options
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	subscriptionService services.SubscriptionService,
	cookies *storage.CookieBackend,
	landing *pages.Pages,
	opts Options,
) *Handlers {
	if opts.DoneURL == "" {
		opts.DoneURL = "/"
	}
	return &Handlers{
		subscriptionService: subscriptionService,
		cookies:             cookies,
		pages:               landing,
		opts:                opts,
	}
}

// Register mounts every route on router
func (h *Handlers) Register(router gin.IRoutes) {
	router.GET("/health", h.HealthCheck)

	router.GET("/subscribe/:key", h.landing(services.VariantBasic))
	router.POST("/subscribe/:key", h.subscribe(services.VariantBasic))
	router.GET("/subscribe/:key/phone", h.landing(services.VariantPhone))
	router.POST("/subscribe/:key/phone", h.subscribe(services.VariantPhone))
	router.POST("/subscribe/:key/save", h.HandleSave)

	router.POST("/api/subscribe", h.HandleAPISubscribe)
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// postForm exposes the posted fields, telling absent fields from empty ones
type postForm struct {
	c *gin.Context
}

func (f postForm) Lookup(field string) (string, bool) {
	return f.c.GetPostForm(field)
}

func (h *Handlers) store(c *gin.Context) *lead.ContactStore {
	return lead.NewContactStore(h.cookies.Open(c.Writer, c.Request), h.opts.CookieTTLDays)
}

// landing serves the lead form prefilled with whatever the visitor entered last time
func (h *Handlers) landing(variant services.Variant) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := h.pages.Render(c.Request.URL.Path, c.Query("doneurl"), variant == services.VariantPhone)
		if err != nil {
			middleware.Logger(c, "api").WithError(err).Error("unable to render landing page")
			c.String(http.StatusInternalServerError, "Error rendering page")
			return
		}

		lead.Prefill(doc, h.store(c))
		h.writePage(c, http.StatusOK, doc)
	}
}

// subscribe handles a lead form posted by the browser
func (h *Handlers) subscribe(variant services.Variant) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.Logger(c, "api")

		doneURL := h.resolveRedirect(c.PostForm("doneurl"))
		redirect, err := h.subscriptionService.Subscribe(c.Request.Context(), h.store(c), services.SubscribeRequest{
			Key:     c.Param("key"),
			DoneURL: doneURL,
			Variant: variant,
			Form:    postForm{c: c},
		})

		var verr *lead.ValidationError
		switch {
		case errors.As(err, &verr):
			h.rejectPage(c, variant, verr)
		case errors.Is(err, services.ErrMissingKey):
			c.String(http.StatusBadRequest, "Missing subscription key")
		case err != nil:
			logger.WithError(err).Error("subscription failed")
			c.String(http.StatusInternalServerError, "Error processing subscription")
		default:
			c.Redirect(http.StatusSeeOther, redirect)
		}
	}
}

// HandleSave remembers the posted lead fields and marks the key without subscribing
func (h *Handlers) HandleSave(c *gin.Context) {
	err := h.subscriptionService.Remember(c.Request.Context(), h.store(c), c.Param("key"), postForm{c: c})
	switch {
	case errors.Is(err, services.ErrMissingKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing subscription key"})
	case err != nil:
		middleware.Logger(c, "api").WithError(err).Error("unable to remember lead")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving lead"})
	default:
		c.Status(http.StatusNoContent)
	}
}

// rejectPage shows the form again with the visitor's input, the problem and focus on the offending field
func (h *Handlers) rejectPage(c *gin.Context, variant services.Variant, verr *lead.ValidationError) {
	doc, err := h.pages.Render(c.Request.URL.Path, c.PostForm("doneurl"), variant == services.VariantPhone)
	if err != nil {
		middleware.Logger(c, "api").WithError(err).Error("unable to render landing page")
		c.String(http.StatusInternalServerError, "Error rendering page")
		return
	}

	values := make(map[string]string)
	for _, field := range []string{models.FieldName, models.FieldEmail, models.FieldPhone, models.FieldCity} {
		if value, ok := c.GetPostForm(field); ok {
			values[field] = value
		}
	}
	pages.FillValues(doc, values)

	lang := messages.Negotiate(c.GetHeader("Accept-Language"))
	pages.MarkInvalid(doc, verr.Field, messages.For(lang, verr.Reason))

	h.writePage(c, http.StatusUnprocessableEntity, doc)
}

// HandleAPISubscribe accepts leads from script-driven landing pages as JSON or form data
func (h *Handlers) HandleAPISubscribe(c *gin.Context) {
	logger := middleware.Logger(c, "api")

	var data models.SubscribeFormData
	if err := c.ShouldBind(&data); err != nil {
		logger.WithError(err).Info("invalid subscription payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	variant := services.VariantBasic
	if data.WithPhone {
		variant = services.VariantPhone
	}

	redirect, err := h.subscriptionService.Subscribe(c.Request.Context(), h.store(c), services.SubscribeRequest{
		Key:     data.Key,
		DoneURL: h.resolveRedirect(data.DoneURL),
		Variant: variant,
		Form:    lead.Fields(data.Fields()),
	})

	var verr *lead.ValidationError
	switch {
	case errors.As(err, &verr):
		lang := messages.Negotiate(c.GetHeader("Accept-Language"))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      string(verr.Reason),
			"field":      verr.Field,
			"message":    messages.For(lang, verr.Reason),
			"structural": verr.Structural(),
		})
	case errors.Is(err, services.ErrMissingKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing subscription key"})
	case err != nil:
		logger.WithError(err).Error("subscription failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing subscription"})
	default:
		c.JSON(http.StatusOK, gin.H{
			"status":   "success",
			"redirect": redirect,
		})
	}
}

// resolveRedirect accepts site-relative paths and absolute URLs on allowed hosts, otherwise the configured default
func (h *Handlers) resolveRedirect(raw string) string {
	if raw == "" {
		return h.opts.DoneURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return h.opts.DoneURL
	}

	if !u.IsAbs() && u.Host == "" && strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") && !strings.HasPrefix(raw, "/\\") {
		return raw
	}

	if u.Scheme == "http" || u.Scheme == "https" {
		for _, host := range h.opts.AllowedRedirectHosts {
			if strings.EqualFold(u.Hostname(), host) {
				return raw
			}
		}
	}

	return h.opts.DoneURL
}

func (h *Handlers) writePage(c *gin.Context, status int, doc *goquery.Document) {
	html, err := pages.HTML(doc)
	if err != nil {
		middleware.Logger(c, "api").WithError(err).Error("unable to render landing page")
		c.String(http.StatusInternalServerError, "Error rendering page")
		return
	}
	c.Data(status, "text/html; charset=utf-8", html)
}
