// Package kernel holds the fixed menu of convolution kernels a user can
// pick from.
package kernel

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var ErrUnknownPreset = errors.New("unknown kernel preset")

// Preset names one of the built-in kernels.
type Preset int

const (
	BoxBlur Preset = iota
	BoxBlur5x5
	EdgeDetect
	Sharpen
	Emboss
	Outline
)

// Default is the preset applied when nothing else is configured.
const Default = Outline

type definition struct {
	name  string
	title string
	build func() *mat.Dense
}

var presets = []definition{
	BoxBlur:    {"box-blur", "Box blur (3x3)", func() *mat.Dense { return Box(3) }},
	BoxBlur5x5: {"box-blur-5x5", "Box blur (5x5)", func() *mat.Dense { return Box(5) }},
	EdgeDetect: {"edge-detect", "Edge detection (Laplacian)", func() *mat.Dense {
		return mat.NewDense(3, 3, []float64{
			0, 1, 0,
			1, -4, 1,
			0, 1, 0,
		})
	}},
	Sharpen: {"sharpen", "Sharpen", func() *mat.Dense {
		return mat.NewDense(3, 3, []float64{
			0, -1, 0,
			-1, 5, -1,
			0, -1, 0,
		})
	}},
	Emboss: {"emboss", "Emboss", func() *mat.Dense {
		return mat.NewDense(3, 3, []float64{
			-2, -1, 0,
			-1, 1, 1,
			0, 1, 2,
		})
	}},
	Outline: {"outline", "Outline", func() *mat.Dense {
		return mat.NewDense(3, 3, []float64{
			-1, -1, -1,
			-1, 8, -1,
			-1, -1, -1,
		})
	}},
}

// All returns every preset in menu order.
func All() []Preset {
	all := make([]Preset, len(presets))
	for i := range presets {
		all[i] = Preset(i)
	}
	return all
}

// Parse resolves a preset by its name, e.g. "edge-detect".
func Parse(name string) (Preset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, d := range presets {
		if d.name == name {
			return Preset(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q (choose one of %s)", ErrUnknownPreset, name, strings.Join(Names(), ", "))
}

// Names lists the preset names in menu order.
func Names() []string {
	names := make([]string, len(presets))
	for i, d := range presets {
		names[i] = d.name
	}
	return names
}

func (p Preset) valid() bool { return p >= 0 && int(p) < len(presets) }

func (p Preset) String() string {
	if !p.valid() {
		return fmt.Sprintf("Preset(%d)", int(p))
	}
	return presets[p].name
}

// Title is a human readable label for reports.
func (p Preset) Title() string {
	if !p.valid() {
		return p.String()
	}
	return presets[p].title
}

// Matrix returns a fresh copy of the preset's weights. Callers may modify it.
func (p Preset) Matrix() *mat.Dense {
	if !p.valid() {
		panic(fmt.Sprintf("kernel: matrix of invalid %s", p))
	}
	return presets[p].build()
}

// Set and Type satisfy pflag.Value so a Preset can back a --kernel flag.
func (p *Preset) Set(s string) error {
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p *Preset) Type() string { return "kernel" }

// Box returns an n×n box blur whose weights sum to 1.
func Box(n int) *mat.Dense {
	data := make([]float64, n*n)
	for i := range data {
		data[i] = 1
	}
	m := mat.NewDense(n, n, data)
	m.Scale(1/float64(n*n), m)
	return m
}

// Sum is the total weight of m. Kernels summing to 1 preserve brightness,
// those summing to 0 respond only to change.
func Sum(m mat.Matrix) float64 {
	return floats.Sum(mat.DenseCopyOf(m).RawMatrix().Data)
}

// Format pretty prints a kernel matrix, one row per line.
func Format(m mat.Matrix) string {
	return fmt.Sprintf("%.4g", mat.Formatted(m, mat.Squeeze()))
}
