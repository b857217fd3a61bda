package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"wiki-quiz/internal/app"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/service"
)

// readURLs returns the non-blank, non-comment lines of path.
func readURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}

func main() {
	input := flag.String("input", "urls.txt", "file with one Wikipedia article URL per line")
	concurrency := flag.Int("concurrency", 0, "parallel generations (defaults to batch.concurrency)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	urls, err := readURLs(*input)
	if err != nil {
		appLogger.Fatal("Failed to read URL list", zap.String("input", *input), zap.Error(err))
	}
	if len(urls) == 0 {
		appLogger.Info("No URLs to process. Batch process finishing early.")
		return
	}

	components, err := app.Build(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer components.Close()

	workers := cfg.Batch.Concurrency
	if *concurrency > 0 {
		workers = *concurrency
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report := service.NewBatchService(components.QuizService, workers, appLogger).GenerateAll(ctx, urls)
	if report.Failed > 0 {
		appLogger.Warn("Batch finished with failures", zap.Int("failed", report.Failed))
	}
}
