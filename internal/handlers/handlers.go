package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrrestyle/internal/config"
	"github.com/cristianadrielbraun/qrrestyle/internal/detect"
	"github.com/cristianadrielbraun/qrrestyle/internal/logomask"
	"github.com/cristianadrielbraun/qrrestyle/internal/restyle"
)

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	cfg      config.Config
	pipeline *restyle.Pipeline
	sessions *sessionStore
}

// New returns a Handler scanning with d. A nil d means the zxing detector.
func New(cfg config.Config, d detect.Detector) *Handler {
	if d == nil {
		d = detect.NewZXing()
	}
	return &Handler{
		cfg: cfg,
		pipeline: &restyle.Pipeline{
			Detector:  d,
			Resampler: logomask.ResamplerByName(cfg.Resampler),
		},
		sessions: newSessionStore(cfg.SessionLimit),
	}
}

// Register mounts the API routes on r.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	{
		api.POST("/convert", h.Convert)
		api.POST("/htmx/toast", h.GenericToast)

		api.POST("/sessions", h.CreateSession)
		api.PUT("/sessions/:id/options", h.UpdateSessionOptions)
		api.GET("/sessions/:id/svg", h.SessionSVG)
		api.GET("/sessions/:id/debug/mosaic", h.SessionMosaic)
		api.GET("/sessions/:id/debug/svg", h.SessionDebugSVG)
		api.DELETE("/sessions/:id", h.DeleteSession)
	}
	r.GET("/sitemap.xml", h.SitemapXML)
}

// Close cancels the analyses of every live session.
func (h *Handler) Close() {
	h.sessions.closeAll()
}

// sitemapPages lists the indexable pages and their priority.
var sitemapPages = []struct {
	path     string
	priority string
}{
	{"/", "1.0"},
}

// SitemapXML serves the sitemap for the pages the service renders.
func (h *Handler) SitemapXML(c *gin.Context) {
	base := h.baseURL(c.Request)

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, p := range sitemapPages {
		fmt.Fprintf(&b, "  <url><loc>%s%s</loc><changefreq>monthly</changefreq><priority>%s</priority></url>\n",
			base, p.path, p.priority)
	}
	b.WriteString("</urlset>\n")

	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(b.String()))
}

// baseURL guesses the public origin of r. Local plain-text listeners get http.
func (h *Handler) baseURL(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto + "://" + r.Host
	}
	local := r.Host == "localhost"+h.cfg.Addr || r.Host == "127.0.0.1"+h.cfg.Addr
	if r.TLS == nil && local {
		return "http://" + r.Host
	}
	return "https://" + r.Host
}
