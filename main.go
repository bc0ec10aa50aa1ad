package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/earthboundkid/versioninfo/v2"
	"github.com/joho/godotenv"
	"github.com/rm-hull/image-convolution/cmd"
	"github.com/rm-hull/image-convolution/internal/convolve"
	"github.com/rm-hull/image-convolution/internal/kernel"
	"github.com/spf13/cobra"
)

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// defaultOptions resolves the filter configuration from the environment once,
// before any flag overrides it.
func defaultOptions() cmd.FilterOptions {
	preset, err := kernel.Parse(envOr("CONVOLVE_KERNEL", kernel.Default.String()))
	if err != nil {
		log.Fatalf("CONVOLVE_KERNEL: %v", err)
	}
	padding, err := convolve.ParsePadding(envOr("CONVOLVE_PADDING", "zero"))
	if err != nil {
		log.Fatalf("CONVOLVE_PADDING: %v", err)
	}
	workers, err := strconv.Atoi(envOr("CONVOLVE_WORKERS", "0"))
	if err != nil {
		log.Fatalf("CONVOLVE_WORKERS: %v", err)
	}
	return cmd.FilterOptions{Preset: preset, Padding: padding, Workers: workers}
}

func main() {
	var inputFile string
	var inputDir string
	var outputDir string
	var saveOriginal bool
	var poolSize int
	var every time.Duration
	var frameDelay float64
	var port int
	var debug bool

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	opts := defaultOptions()
	defaultOutput := envOr("CONVOLVE_OUTPUT_DIR", "./data/output")

	rootCmd := &cobra.Command{
		Use:  "image-convolution",
		Long: `Apply convolution kernels (blur, edge detect, sharpen, emboss, outline) to images`,
	}

	filterFlags := func(c *cobra.Command) {
		c.Flags().Var(&opts.Preset, "kernel", "Kernel preset to apply")
		c.Flags().Var(&opts.Padding, "padding", "Border padding: zero, replicate or reflect")
		c.Flags().Var(&opts.Mode, "mode", "Channel layout: auto, gray, rgb or rgba")
		c.Flags().IntVar(&opts.Workers, "workers", opts.Workers, "Goroutines per convolution (0 = all CPUs)")
		c.Flags().Float64Var(&opts.PreBlur, "pre-blur", 0, "Gaussian sigma applied before the kernel (0 = off)")
		c.Flags().IntVar(&opts.MaxWidth, "max-width", 0, "Downscale wider images before filtering (0 = off)")
		c.Flags().StringVar(&outputDir, "output", defaultOutput, "Path to output folder")
	}

	filterCmd := &cobra.Command{
		Use:   "filter --input <path|url> [--kernel <name>]",
		Short: "Filter a single image",
		Run: func(c *cobra.Command, _ []string) {
			if _, err := cmd.Filter(context.Background(), c.OutOrStdout(), inputFile, outputDir, saveOriginal, opts); err != nil {
				log.Fatalf("Error: %v", err)
			}
		},
	}
	filterFlags(filterCmd)
	filterCmd.Flags().StringVar(&inputFile, "input", "imagem_exemplo.png", "Image file or http(s) URL to filter")
	filterCmd.Flags().BoolVar(&saveOriginal, "save-original", false, "Also save a PNG copy of the original image")

	showcaseCmd := &cobra.Command{
		Use:   "showcase --input <path|url>",
		Short: "Apply every kernel and render an animated comparison",
		Run: func(c *cobra.Command, _ []string) {
			if _, err := cmd.Showcase(context.Background(), c.OutOrStdout(), inputFile, outputDir, frameDelay, opts); err != nil {
				log.Fatalf("Error: %v", err)
			}
		},
	}
	filterFlags(showcaseCmd)
	showcaseCmd.Flags().StringVar(&inputFile, "input", "imagem_exemplo.png", "Image file or http(s) URL to filter")
	showcaseCmd.Flags().Float64Var(&frameDelay, "delay", 1.5, "Seconds each animation frame is shown")

	batchCmd := &cobra.Command{
		Use:   "batch --input <dir> [--output <dir>]",
		Short: "Filter every image in a folder",
		Run: func(_ *cobra.Command, _ []string) {
			if err := cmd.Batch(context.Background(), inputDir, outputDir, poolSize, opts); err != nil {
				log.Fatalf("Error: %v", err)
			}
		},
	}
	filterFlags(batchCmd)
	batchCmd.Flags().StringVar(&inputDir, "input", "./data/input", "Path to input folder")
	batchCmd.Flags().IntVar(&poolSize, "pool", 4, "Number of images filtered concurrently")

	watchCmd := &cobra.Command{
		Use:   "watch --input <dir> [--every <duration>]",
		Short: "Filter new images in a folder on a schedule",
		Run: func(_ *cobra.Command, _ []string) {
			if err := cmd.Watch(inputDir, outputDir, poolSize, every, opts); err != nil {
				log.Fatalf("Error: %v", err)
			}
		},
	}
	filterFlags(watchCmd)
	watchCmd.Flags().StringVar(&inputDir, "input", "./data/input", "Path to input folder")
	watchCmd.Flags().IntVar(&poolSize, "pool", 4, "Number of images filtered concurrently")
	watchCmd.Flags().DurationVar(&every, "every", 5*time.Minute, "Interval between runs")

	apiServerCmd := &cobra.Command{
		Use:   "api-server [--output <path>] [--port <port>] [--debug]",
		Short: "Start HTTP API server",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.ApiServer(outputDir, port, opts.Workers, debug)
		},
	}
	apiServerCmd.Flags().StringVar(&outputDir, "output", defaultOutput, "Path to folder served under /v1/images")
	apiServerCmd.Flags().IntVar(&port, "port", 8080, "Port to run HTTP server on")
	apiServerCmd.Flags().IntVar(&opts.Workers, "workers", opts.Workers, "Goroutines per convolution (0 = all CPUs)")
	apiServerCmd.Flags().BoolVar(&debug, "debug", false, "Enable debugging (pprof) - WARNING: do not enable in production")

	kernelsCmd := &cobra.Command{
		Use:   "kernels",
		Short: "List the available kernel presets",
		Run: func(c *cobra.Command, _ []string) {
			cmd.Kernels(c.OutOrStdout())
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(c *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(c.OutOrStdout(), versioninfo.Short())
		},
	}

	rootCmd.AddCommand(filterCmd, showcaseCmd, batchCmd, watchCmd, apiServerCmd, kernelsCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
