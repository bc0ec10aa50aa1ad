package internal

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rm-hull/image-convolution/internal/kernel"
	"github.com/rm-hull/image-convolution/internal/picture"
)

var ErrNoImages = errors.New("no images to process")

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

// Processor filters every image in a directory with a worker pool.
type Processor struct {
	startTime time.Time
	endTime   time.Time
	outputDir string
	poolSize  int
	jobs      chan string
	results   chan error
	files     []string
	outputs   map[string]string
	preset    kernel.Preset
	stages    []picture.PipelineStage
}

func NewProcessor(inputDir, outputDir string, poolSize int, preset kernel.Preset, stages ...picture.PipelineStage) (*Processor, error) {
	if poolSize < 1 {
		return nil, errors.New("pool size must be at least 1")
	}
	startTime := time.Now()

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list input directory %s: %w", inputDir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		files = append(files, filepath.Join(inputDir, entry.Name()))
	}
	sort.Strings(files)

	log.Printf("Directory %s contains %d images", inputDir, len(files))
	if len(files) == 0 {
		return nil, ErrNoImages
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Processor{
		startTime: startTime,
		outputDir: outputDir,
		poolSize:  poolSize,
		jobs:      make(chan string),
		results:   make(chan error),
		files:     files,
		outputs:   outputNames(files, outputDir, preset),
		preset:    preset,
		stages:    stages,
	}, nil
}

// outputNames maps each input to <stem>_<preset>.png. Inputs sharing a stem,
// such as a.png and a.jpg, keep their extension: a-png_<preset>.png.
func outputNames(files []string, outputDir string, preset kernel.Preset) map[string]string {
	stems := make(map[string]int, len(files))
	for _, file := range files {
		stems[stemOf(file)]++
	}

	outputs := make(map[string]string, len(files))
	for _, file := range files {
		stem := stemOf(file)
		if stems[stem] > 1 {
			stem += "-" + strings.ToLower(strings.TrimPrefix(filepath.Ext(file), "."))
		}
		outputs[file] = filepath.Join(outputDir, fmt.Sprintf("%s_%s.png", stem, preset))
	}
	return outputs
}

func stemOf(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

// Run processes every image and returns the errors encountered.
func (p *Processor) Run() []error {
	p.StartWorkers()
	p.DispatchJobs()
	return p.Wait()
}

// DispatchJobs sends files to the jobs channel for processing by workers.
func (p *Processor) DispatchJobs() {
	go func() {
		for _, file := range p.files {
			p.jobs <- file
		}
		close(p.jobs)
	}()
}

func (p *Processor) StartWorkers() {
	log.Printf("Starting %s filter with pool size: %d", p.preset, p.poolSize)

	for i := range p.poolSize {
		go p.worker(i)
	}
}

func (p *Processor) worker(i int) {
	log.Printf("Worker %d started", i)
	for file := range p.jobs {
		p.results <- p.processFile(file)
	}
	log.Printf("Worker %d finished", i)
}

// OutputPath is where the filtered version of file is written.
func (p *Processor) OutputPath(file string) string {
	if out, ok := p.outputs[file]; ok {
		return out
	}
	return filepath.Join(p.outputDir, fmt.Sprintf("%s_%s.png", stemOf(file), p.preset))
}

func (p *Processor) processFile(file string) error {
	filename := p.OutputPath(file)

	// if the output already exists, skip processing
	if _, err := os.Stat(filename); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	img, err := picture.Load(file)
	if err != nil {
		return err
	}

	if err := img.Pipeline(p.stages...); err != nil {
		return fmt.Errorf("failed to process %s: %w", file, err)
	}

	tmpFile, err := os.CreateTemp(p.outputDir, "convolve-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	cleanupTemp := true
	defer func() {
		_ = tmpFile.Close()
		if cleanupTemp {
			_ = os.Remove(tmpFile.Name())
		}
	}()

	if err := img.Write(tmpFile, "png"); err != nil {
		return fmt.Errorf("failed to write filtered image to temporary file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file before rename: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	cleanupTemp = false
	return nil
}

func (p *Processor) Wait() []error {
	waitFor := len(p.files)
	log.Printf("Waiting for %d images to be filtered", waitFor)

	errors := make([]error, 0, 10)
	for range waitFor {
		err := <-p.results
		if err != nil {
			errors = append(errors, err)
		}
	}
	p.endTime = time.Now()
	elapsed := p.endTime.Sub(p.startTime)
	log.Printf("All images filtered in %s (errors=%d)", elapsed, len(errors))
	return errors
}
