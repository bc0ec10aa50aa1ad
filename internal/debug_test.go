package internal

import (
	"bytes"
	"log"
	"testing"

	"github.com/rm-hull/image-convolution/internal/convolve"
	"github.com/rm-hull/image-convolution/internal/kernel"
	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(orig) })
	return &buf
}

func TestEnvironmentVars(t *testing.T) {
	t.Setenv("CONVOLVE_KERNEL", "sharpen")
	t.Setenv("CONVOLVE_API_KEY", "hunter2")
	t.Setenv("UNRELATED_VAR", "visible-elsewhere")
	out := captureLog(t)

	EnvironmentVars("CONVOLVE_")

	assert.Contains(t, out.String(), "CONVOLVE_KERNEL: sharpen")
	assert.Contains(t, out.String(), "CONVOLVE_API_KEY: ********")
	assert.NotContains(t, out.String(), "hunter2")
	assert.NotContains(t, out.String(), "UNRELATED_VAR")
}

func TestShowVersion(t *testing.T) {
	out := captureLog(t)
	ShowVersion()
	assert.Contains(t, out.String(), "Version: ")
}

func TestShapeReport(t *testing.T) {
	var buf bytes.Buffer
	ShapeReport(&buf, "original", convolve.NewPixelBuffer(480, 640, 3).Shape)
	ShapeReport(&buf, "gray", []int{2, 3})
	assert.Equal(t, "original: shape (480, 640, 3)\ngray: shape (2, 3)\n", buf.String())
}

func TestKernelReport(t *testing.T) {
	var buf bytes.Buffer
	KernelReport(&buf, kernel.Outline, kernel.Outline.Matrix())
	assert.Contains(t, buf.String(), "Applying filter: Outline (outline, 3x3, sum 0)")
	assert.Contains(t, buf.String(), "8")
}
