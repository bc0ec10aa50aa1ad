// Package api exposes the convolution engine over HTTP.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rm-hull/image-convolution/internal/convolve"
	"github.com/rm-hull/image-convolution/internal/kernel"
	"github.com/rm-hull/image-convolution/internal/picture"
	"github.com/rm-hull/image-convolution/internal/picture/stage"
)

// maxUploadBytes caps multipart bodies held in memory.
const maxUploadBytes = 32 << 20

type KernelInfo struct {
	Name    string    `json:"name"`
	Title   string    `json:"title"`
	Rows    int       `json:"rows"`
	Cols    int       `json:"cols"`
	Weights []float64 `json:"weights"`
}

type Handler struct {
	// Workers is passed to the engine for each request; <= 0 means all CPUs.
	Workers int
	// OnConvolve, when set, is called after each successful convolution.
	OnConvolve func(preset kernel.Preset)
}

// Register mounts the API routes under r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/kernels", h.ListKernels)
	r.POST("/convolve", h.Convolve)
}

func (h *Handler) ListKernels(c *gin.Context) {
	all := kernel.All()
	infos := make([]KernelInfo, len(all))
	for i, p := range all {
		m := p.Matrix()
		rows, cols := m.Dims()
		infos[i] = KernelInfo{
			Name:    p.String(),
			Title:   p.Title(),
			Rows:    rows,
			Cols:    cols,
			Weights: m.RawMatrix().Data,
		}
	}
	c.JSON(http.StatusOK, infos)
}

func (h *Handler) Convolve(c *gin.Context) {
	preset, err := kernel.Parse(c.DefaultQuery("kernel", kernel.Default.String()))
	if err != nil {
		badRequest(c, err)
		return
	}
	padding, err := convolve.ParsePadding(c.Query("padding"))
	if err != nil {
		badRequest(c, err)
		return
	}
	mode, err := picture.ParseMode(c.Query("mode"))
	if err != nil {
		badRequest(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fh, err := c.FormFile("image")
	if err != nil {
		badRequest(c, fmt.Errorf("missing image upload: %w", err))
		return
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer func() {
		_ = f.Close()
	}()

	img, err := picture.NewPictureFromReader(f)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("failed to decode image: %v", err)})
		return
	}

	err = img.Pipeline(&stage.ConvolveStage{
		Kernel:  preset.Matrix(),
		Mode:    mode,
		Engine:  &convolve.Engine{Padding: padding, Workers: h.Workers},
		Context: c.Request.Context(),
	})
	if err != nil {
		log.Printf("Convolution of %s upload failed: %v", fh.Filename, err)
		status := http.StatusInternalServerError
		var shapeErr *convolve.UnsupportedShapeError
		if errors.As(err, &shapeErr) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := img.Write(&buf, "png"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.OnConvolve != nil {
		h.OnConvolve(preset)
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
