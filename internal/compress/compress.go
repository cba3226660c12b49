// Package compress wraps the content encodings used for SVG output.
package compress

import (
	"bytes"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Method is a content encoding.
type Method interface {
	// Name is the Content-Encoding token.
	Name() string

	// Writer compresses into w. Closing it flushes the stream but does not
	// close w.
	Writer(w io.Writer) (io.WriteCloser, error)
}

type Zstd struct{}

func (Zstd) Name() string {
	return "zstd"
}

func (Zstd) Writer(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w)
}

type Gzip struct{}

func (Gzip) Name() string {
	return "gzip"
}

func (Gzip) Writer(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriterLevel(w, gzip.DefaultCompression)
}

// Methods lists the supported encodings in order of preference.
var Methods = []Method{Zstd{}, Gzip{}}

// Negotiate picks the preferred method the Accept-Encoding header allows,
// or nil for identity. Encodings with q=0 are refused.
func Negotiate(acceptEncoding string) Method {
	accepted := map[string]bool{}
	for _, part := range strings.Split(acceptEncoding, ",") {
		token, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		accepted[token] = !refused(params)
	}
	for _, m := range Methods {
		if ok, listed := accepted[m.Name()]; listed {
			if ok {
				return m
			}
			continue
		}
		if accepted["*"] {
			return m
		}
	}
	return nil
}

func refused(params string) bool {
	for _, p := range strings.Split(params, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
		if ok && strings.TrimSpace(k) == "q" {
			v = strings.TrimSpace(v)
			return strings.Trim(v, "0.") == ""
		}
	}
	return false
}

// Encode compresses data with m in one go.
func Encode(m Method, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := m.Writer(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
