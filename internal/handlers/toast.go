package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrrestyle/web/components/ui/toast"
)

func toastVariant(variant string) toast.Variant {
	switch variant {
	case "error", "destructive":
		return toast.VariantError
	case "warning":
		return toast.VariantWarning
	case "info":
		return toast.VariantInfo
	default:
		return toast.VariantSuccess
	}
}

// GenericToast returns a Toast component rendered as HTML for HTMX swaps.
func (h *Handler) GenericToast(c *gin.Context) {
	renderToast(c, http.StatusOK, toast.Props{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Variant:     toastVariant(c.PostForm("variant")),
		Dismissible: c.PostForm("dismissible") == "on",
	})
}

// renderToast writes p with the service defaults for position, duration
// and icon.
func renderToast(c *gin.Context, status int, p toast.Props) {
	p.Position = toast.PositionBottomRight
	p.Duration = 2000
	p.Icon = true

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	_ = toast.Toast(p).Render(c.Request.Context(), c.Writer)
}

// wantsHTML reports whether the request came from HTMX, which expects a
// toast fragment instead of JSON on errors.
func wantsHTML(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// fail answers with the service's JSON error body, or with an error toast
// for HTMX requests.
func fail(c *gin.Context, status int, msg string) {
	if wantsHTML(c) {
		// HTMX does not swap non-2xx responses by default.
		c.Header("HX-Reswap", "innerHTML")
		c.Header("HX-Retarget", "#toasts")
		renderToast(c, status, toast.Props{Title: msg, Variant: toast.VariantError, Dismissible: true})
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
