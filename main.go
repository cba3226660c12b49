package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrrestyle/internal/config"
	"github.com/cristianadrielbraun/qrrestyle/internal/handlers"
	"github.com/cristianadrielbraun/qrrestyle/internal/logging"
	"github.com/cristianadrielbraun/qrrestyle/web/pages"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(cfg.LogLevel),
	})))

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	// Static assets
	r.Static("/web/static", "web/static")
	r.Static("/web/assets", "web/assets")

	// API routes
	h := handlers.New(cfg, nil)
	defer h.Close()
	h.Register(r)

	// Pages
	r.GET("/", func(c *gin.Context) {
		if err := pages.HomePage().Render(c.Request.Context(), c.Writer); err != nil {
			c.String(500, err.Error())
		}
	})

	log.Printf("qrrestyle listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
