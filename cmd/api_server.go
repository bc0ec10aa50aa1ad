package cmd

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rm-hull/image-convolution/internal"
	"github.com/rm-hull/image-convolution/internal/api"
	"github.com/rm-hull/image-convolution/internal/kernel"
	healthcheck "github.com/tavsec/gin-healthcheck"
	"github.com/tavsec/gin-healthcheck/checks"
	hc_config "github.com/tavsec/gin-healthcheck/config"
)

func ApiServer(outputDir string, port, workers int, debug bool) {
	internal.ShowVersion()
	internal.EnvironmentVars("CONVOLVE_")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	r := gin.New()

	prometheus := ginprom.New(
		ginprom.Engine(r),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/healthz"),
	)
	prometheus.AddCustomCounter("convolutions_total", "Number of images filtered, by kernel", []string{"kernel"})

	r.Use(
		gin.Recovery(),
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		prometheus.Instrument(),
	)

	if debug {
		log.Println("WARNING: pprof endpoints are enabled and exposed. Do not run with this flag in production.")
		pprof.Register(r)
	}

	err := healthcheck.New(r, hc_config.DefaultConfig(), []checks.Check{})
	if err != nil {
		log.Fatalf("failed to initialize healthcheck: %v", err)
	}

	handler := &api.Handler{
		Workers: workers,
		OnConvolve: func(preset kernel.Preset) {
			if err := prometheus.IncrementCounterValue("convolutions_total", []string{preset.String()}); err != nil {
				log.Printf("failed to update metrics: %v", err)
			}
		},
	}
	v1 := r.Group("/v1")
	handler.Register(v1)
	v1.Static("/images", outputDir)

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting HTTP API Server on port %d...", port)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("HTTP API Server failed to start on port %d: %v", port, err)
	}
}
