package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrrestyle/internal/detect"
	"github.com/cristianadrielbraun/qrrestyle/internal/imageio"
	"github.com/cristianadrielbraun/qrrestyle/internal/logging"
	"github.com/cristianadrielbraun/qrrestyle/internal/logomask"
	"github.com/cristianadrielbraun/qrrestyle/internal/qrgrid"
	"github.com/cristianadrielbraun/qrrestyle/internal/raster"
	"github.com/cristianadrielbraun/qrrestyle/internal/render"
	"github.com/cristianadrielbraun/qrrestyle/internal/restyle"
)

// maxScale caps the pixel density of raster output.
const maxScale = 8

// maskErrorHeader carries the reason a logo mask could not be computed.
const maskErrorHeader = "X-Logo-Mask-Error"

// parseColorParam parses a hex colour or "transparent" (zero alpha).
// Invalid input yields defaultColor.
func parseColorParam(param string, defaultColor color.RGBA) color.RGBA {
	if param == "" {
		return defaultColor
	}

	// Handle transparent background
	if strings.ToLower(param) == "transparent" {
		return color.RGBA{0, 0, 0, 0}
	}

	c, err := raster.ParseColor(param)
	if err != nil {
		return defaultColor
	}
	return c
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func formBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// parseOptions applies the style fields present in the form to base.
// Absent fields keep their value in base.
func parseOptions(c *gin.Context, base render.Options) (render.Options, error) {
	opts := base.WithDefaults()

	if v, ok := c.GetPostForm("dotsColor"); ok {
		opts.DotsColor = hexColor(parseColorParam(v, color.RGBA{0, 0, 0, 255}))
	}
	if v, ok := c.GetPostForm("backgroundColor"); ok {
		bg := parseColorParam(v, color.RGBA{255, 255, 255, 255})
		if bg.A == 0 {
			opts.Transparent = true
		} else {
			opts.BackgroundColor = hexColor(bg)
			opts.Transparent = false
		}
	}
	if v, ok := c.GetPostForm("transparent"); ok {
		opts.Transparent = formBool(v)
	}
	if v, ok := c.GetPostForm("dotsType"); ok && v != "" {
		opts.DotsType = render.ParseStyle(v)
	}
	if v, ok := c.GetPostForm("cornersSquareType"); ok && v != "" {
		opts.CornersSquareType = render.ParseStyle(v)
	}
	if v, ok := c.GetPostForm("logoSize"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 || f >= 1 {
			return opts, fmt.Errorf("logoSize must be between 0 and 1, got %q", v)
		}
		opts.LogoSize = f
	}
	if v, ok := c.GetPostForm("debug"); ok {
		opts.Debug = formBool(v)
	}
	return opts, nil
}

func parseScale(v string) (float64, error) {
	if v == "" {
		return 1, nil
	}
	s, err := strconv.ParseFloat(v, 64)
	if err != nil || s <= 0 || s > maxScale {
		return 0, fmt.Errorf("scale must be in (0, %d], got %q", maxScale, v)
	}
	return s, nil
}

// readFormFile returns the bytes of the named upload, or nil when the field
// is absent.
func (h *Handler) readFormFile(c *gin.Context, name string) ([]byte, error) {
	fh, err := c.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return imageio.ReadAll(f, h.cfg.MaxUploadBytes)
}

// limitBody caps the request body at the configured upload size. Requests
// announcing a larger body are refused right away.
func (h *Handler) limitBody(c *gin.Context) bool {
	if c.Request.ContentLength > h.cfg.MaxUploadBytes {
		fail(c, http.StatusRequestEntityTooLarge, "Upload is too large")
		return false
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes)
	return true
}

// uploadStatus maps an upload or scan error to its HTTP status and the
// message shown to the user.
func uploadStatus(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge), errors.Is(err, imageio.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "Upload is too large"
	case errors.Is(err, restyle.ErrUnsupportedImage):
		return http.StatusBadRequest, "Unsupported image format"
	case errors.Is(err, detect.ErrDetectionFailure):
		return http.StatusUnprocessableEntity, "No QR code found in the image"
	}
	return http.StatusBadRequest, err.Error()
}

// scanUpload decodes the "image" upload and samples the symbol in it. On
// failure it answers the request and returns ok == false.
func (h *Handler) scanUpload(c *gin.Context) (*qrgrid.Grid, *detect.Detection, bool) {
	if !h.limitBody(c) {
		return nil, nil, false
	}

	data, err := h.readFormFile(c, "image")
	if err == nil && data == nil {
		fail(c, http.StatusBadRequest, "image file is required")
		return nil, nil, false
	}
	if err != nil {
		status, msg := uploadStatus(err)
		fail(c, status, msg)
		return nil, nil, false
	}

	g, det, err := h.pipeline.Scan(c.Request.Context(), data)
	if err != nil {
		logging.Logger().Info("[QR] scan failed", "bytes", len(data), "error", err)
		status, msg := uploadStatus(err)
		fail(c, status, msg)
		return nil, nil, false
	}
	return g, det, true
}

// Convert restyles the uploaded QR image in one request.
func (h *Handler) Convert(c *gin.Context) {
	g, det, ok := h.scanUpload(c)
	if !ok {
		return
	}

	opts, err := parseOptions(c, render.DefaultOptions())
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	format, err := raster.ParseFormat(c.DefaultPostForm("format", "svg"))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	scale, err := parseScale(c.PostForm("scale"))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	logo, err := h.readFormFile(c, "logo")
	if err != nil {
		status, msg := uploadStatus(err)
		fail(c, status, msg)
		return
	}
	opts.Logo = render.NewLogo(logo)

	res, err := h.pipeline.Compose(c.Request.Context(), g, opts)
	if err != nil {
		status, msg := uploadStatus(err)
		fail(c, status, msg)
		return
	}
	if res.MaskErr != nil {
		c.Header(maskErrorHeader, res.MaskErr.Error())
	}

	doc := res.Document
	c.Header("X-QR-Debug", fmt.Sprintf("modules=%d;drawn=%d;occluded=%d;format=%s", det.ModuleCount, doc.Drawn, doc.Occluded, format))
	h.writeDocument(c, doc, opts, format, scale)
}

// writeDocument answers with doc in the requested format. SVG is
// compressed when the client allows it; rasters are drawn at scale.
func (h *Handler) writeDocument(c *gin.Context, doc *render.Document, opts render.Options, format raster.Format, scale float64) {
	c.Header("Cache-Control", "no-store")

	if format == raster.FormatSVG {
		writeCompressed(c, http.StatusOK, format.ContentType(), []byte(doc.SVG()))
		return
	}

	img, err := raster.Rasterize(c.Request.Context(), doc, scale)
	if err != nil {
		logging.Logger().Error("[QR] rasterize failed", "scale", scale, "error", err)
		msg := "Failed to rasterize document"
		if errors.Is(err, raster.ErrContextUnavailable) {
			msg = "Could not allocate a drawing surface"
		}
		fail(c, http.StatusInternalServerError, msg)
		return
	}

	var buf bytes.Buffer
	if format == raster.FormatJPEG {
		// Flatten on white when transparent, else on the background.
		var bg color.Color = color.White
		if !opts.Transparent {
			bg = parseColorParam(opts.BackgroundColor, color.RGBA{255, 255, 255, 255})
		}
		err = raster.EncodeJPEG(&buf, img, bg)
	} else {
		err = raster.EncodePNG(&buf, img)
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, fmt.Sprintf("Failed to encode %s: %v", format, err))
		return
	}
	logging.Logger().Debug("[QR] sent raster", "format", format, "side", img.Bounds().Dx(), "bytes", buf.Len())
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// writeMosaic answers with a debug mosaic as PNG.
func writeMosaic(c *gin.Context, m *logomask.Mask) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, m.Debug.Mosaic); err != nil {
		fail(c, http.StatusInternalServerError, fmt.Sprintf("Failed to encode mosaic: %v", err))
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
