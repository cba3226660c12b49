package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/pborman/uuid"

	"github.com/cristianadrielbraun/qrrestyle/internal/detect"
	"github.com/cristianadrielbraun/qrrestyle/internal/editor"
	"github.com/cristianadrielbraun/qrrestyle/internal/logging"
	"github.com/cristianadrielbraun/qrrestyle/internal/render"
)

var errSessionLimit = errors.New("too many editor sessions")

type sessionEntry struct {
	session   *editor.Session
	detection *detect.Detection
}

// sessionStore holds the live editor sessions by id.
type sessionStore struct {
	mu       sync.Mutex
	limit    int
	sessions map[string]*sessionEntry
}

func newSessionStore(limit int) *sessionStore {
	return &sessionStore{
		limit:    limit,
		sessions: make(map[string]*sessionEntry),
	}
}

func (s *sessionStore) add(e *sessionEntry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.limit > 0 && len(s.sessions) >= s.limit {
		return "", errSessionLimit
	}
	id := uuid.New()
	s.sessions[id] = e
	return id, nil
}

func (s *sessionStore) get(id string) (*sessionEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	return e, ok
}

func (s *sessionStore) remove(id string) (*sessionEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	delete(s.sessions, id)
	return e, ok
}

func (s *sessionStore) closeAll() {
	s.mu.Lock()
	entries := s.sessions
	s.sessions = make(map[string]*sessionEntry)
	s.mu.Unlock()

	for _, e := range entries {
		e.session.Close()
	}
}

func (h *Handler) lookupSession(c *gin.Context) (*sessionEntry, bool) {
	e, ok := h.sessions.get(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, "session not found")
	}
	return e, ok
}

// CreateSession scans the uploaded image and starts an editor session for
// it.
func (h *Handler) CreateSession(c *gin.Context) {
	g, det, ok := h.scanUpload(c)
	if !ok {
		return
	}

	s := editor.New(h.pipeline.Resampler)
	s.SetGrid(g)
	id, err := h.sessions.add(&sessionEntry{session: s, detection: det})
	if err != nil {
		s.Close()
		fail(c, http.StatusTooManyRequests, err.Error())
		return
	}
	logging.Logger().Info("[QR] session created", "id", id, "modules", det.ModuleCount)

	c.JSON(http.StatusCreated, gin.H{
		"id":          id,
		"moduleCount": det.ModuleCount,
		"version":     det.Version(),
		"payload":     det.Payload,
	})
}

// UpdateSessionOptions applies the form fields to the session options. A
// "logo" upload replaces the logo and removeLogo=true drops it; otherwise
// the logo is kept.
func (h *Handler) UpdateSessionOptions(c *gin.Context) {
	e, ok := h.lookupSession(c)
	if !ok {
		return
	}
	if !h.limitBody(c) {
		return
	}

	logo, err := h.readFormFile(c, "logo")
	if err != nil {
		status, msg := uploadStatus(err)
		fail(c, status, msg)
		return
	}

	err = e.session.Update(func(cur render.Options) (render.Options, error) {
		opts, err := parseOptions(c, cur)
		if err != nil {
			return cur, err
		}
		switch {
		case logo != nil:
			opts.Logo = render.NewLogo(logo)
		case formBool(c.PostForm("removeLogo")):
			opts.Logo = nil
		}
		return opts, nil
	})
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// SessionSVG answers with the current document. With wait=true it first
// waits for a running logo analysis; otherwise a logo still being analysed
// gets the fallback patch.
func (h *Handler) SessionSVG(c *gin.Context) {
	e, ok := h.lookupSession(c)
	if !ok {
		return
	}
	if formBool(c.Query("wait")) {
		e.session.Wait()
	}

	doc, err := e.session.Render()
	if err != nil {
		fail(c, http.StatusConflict, err.Error())
		return
	}
	if err := e.session.Err(); err != nil {
		c.Header(maskErrorHeader, err.Error())
	}
	c.Header("Cache-Control", "no-store")
	writeCompressed(c, http.StatusOK, "image/svg+xml", []byte(doc.SVG()))
}

// SessionMosaic answers with the coverage mosaic of the current mask.
func (h *Handler) SessionMosaic(c *gin.Context) {
	e, ok := h.lookupSession(c)
	if !ok {
		return
	}
	m := e.session.Mask()
	if m == nil || m.Debug == nil {
		fail(c, http.StatusNotFound, "no logo mask")
		return
	}
	writeMosaic(c, m)
}

// SessionDebugSVG answers with the diagnostic SVG of the current mask.
func (h *Handler) SessionDebugSVG(c *gin.Context) {
	e, ok := h.lookupSession(c)
	if !ok {
		return
	}
	m := e.session.Mask()
	if m == nil || m.Debug == nil {
		fail(c, http.StatusNotFound, "no logo mask")
		return
	}
	writeCompressed(c, http.StatusOK, "image/svg+xml", []byte(m.Debug.SVG))
}

// DeleteSession cancels the session's analysis and forgets it.
func (h *Handler) DeleteSession(c *gin.Context) {
	e, ok := h.sessions.remove(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, "session not found")
		return
	}
	e.session.Close()
	c.Status(http.StatusNoContent)
}
