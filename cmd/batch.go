package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rm-hull/image-convolution/internal"
)

// Batch filters every image in inputDir into outputDir.
func Batch(ctx context.Context, inputDir, outputDir string, poolSize int, opts FilterOptions) error {
	p, err := internal.NewProcessor(inputDir, outputDir, poolSize, opts.Preset, opts.Stages(ctx, opts.Preset)...)
	if err != nil {
		return err
	}

	errs := p.Run()
	for _, err := range errs {
		log.Printf("  %v", err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d images failed to process", len(errs))
	}
	return nil
}

// Watch runs Batch on a schedule until interrupted. An empty input
// directory is not an error here; new images may arrive later.
func Watch(inputDir, outputDir string, poolSize int, every time.Duration, opts FilterOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched, err := internal.NewScheduler(every, func() error {
		err := Batch(ctx, inputDir, outputDir, poolSize, opts)
		if errors.Is(err, internal.ErrNoImages) {
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	log.Println("Shutting down scheduler")
	return sched.Shutdown()
}
