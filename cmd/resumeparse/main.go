package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tsawler/resumeparser"
	"github.com/tsawler/resumeparser/cache"
	"github.com/tsawler/resumeparser/inference"
	"github.com/tsawler/resumeparser/ingest"
	"github.com/tsawler/resumeparser/internal/config"
	"github.com/tsawler/resumeparser/refine"
	"github.com/tsawler/resumeparser/schema"
	"github.com/tsawler/resumeparser/store"
)

func main() {
	out := flag.String("o", "", "write JSON to this file instead of stdout")
	doRefine := flag.Bool("refine", false, "run the refiner (overrides ENABLE_SLM_REFINER)")
	doStore := flag.Bool("store", false, "save the result to DATABASE_URL")
	noCache := flag.Bool("no-cache", false, "ignore REDIS_URL")
	byColumn := flag.Bool("by-column", false, "reorder tokens column by column")
	excludeHeaders := flag.Bool("exclude-headers", false, "drop repeated header and footer lines")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: resumeparse [flags] <file>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Load()
	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	cfg.RefinerEnabled = cfg.RefinerEnabled || *doRefine
	cfg.ByColumn = cfg.ByColumn || *byColumn
	cfg.ExcludeHeaders = cfg.ExcludeHeaders || *excludeHeaders
	if *noCache {
		cfg.RedisURL = ""
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, flag.Arg(0), *out, *doStore); err != nil {
		logger.Error("resumeparse failed", "file", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, path, out string, save bool) error {
	ingestCfg := ingest.DefaultConfig()
	ingestCfg.MaxPages = cfg.MaxPages
	ingestCfg.OCRLanguage = cfg.OCRLanguage

	p := resumeparser.Open(path).WithLogger(logger).WithIngestConfig(ingestCfg)
	if cfg.ByColumn {
		p = p.ByColumn()
	}
	if cfg.ExcludeHeaders {
		p = p.ExcludeHeaders()
	}
	if cfg.InferenceEndpoint != "" {
		p = p.WithEmbedder(inference.NewRemoteEmbedder(cfg.InferenceEndpoint, http.DefaultClient, logger))
	}

	if cfg.RefinerEnabled {
		backend, closeBackend, err := refinerBackend(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeBackend()
		p = p.WithRefiner(refine.New(backend, refine.Config{Enabled: true, Timeout: cfg.RefinerTimeout}, logger))
	}

	if cfg.RedisURL != "" && !save {
		c, err := cache.Open(ctx, cfg.RedisURL, cfg.CacheTTL, logger)
		if err != nil {
			logger.Warn("resumeparse.cache.unavailable", "error", err)
		} else {
			defer c.Close()
			p = p.WithCache(c)
		}
	}

	var (
		resume  *schema.Resume
		rawText string
		err     error
	)
	if save {
		// the store keeps the raw text, so the document is needed
		doc, derr := p.Document(ctx)
		if derr != nil {
			return derr
		}
		rawText = doc.RawText
		resume, err = p.ParseDocument(ctx, doc)
	} else {
		resume, err = p.Parse(ctx)
	}
	if err != nil {
		return err
	}

	data, err := resume.JSON()
	if err != nil {
		return err
	}
	if out == "" {
		fmt.Println(string(data))
	} else if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	if save {
		if cfg.DatabaseURL == "" {
			return errors.New("-store requires DATABASE_URL")
		}
		st, err := store.Open(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}
		id, err := st.Save(ctx, resume, rawText)
		if err != nil {
			return err
		}
		logger.Info("resumeparse.stored", "id", id, "file", path)
	}
	return nil
}

// refinerBackend prefers Gemini when an API key is configured and falls
// back to the HTTP endpoint.
func refinerBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) (refine.Backend, func(), error) {
	if cfg.GeminiAPIKey != "" {
		g, err := refine.NewGeminiBackend(ctx, cfg.GeminiAPIKey, cfg.RefinerModel, logger)
		if err != nil {
			return nil, nil, err
		}
		return g, func() { _ = g.Close() }, nil
	}
	if cfg.RefinerEndpoint != "" {
		return refine.NewHTTPBackend(cfg.RefinerEndpoint, http.DefaultClient, logger), func() {}, nil
	}
	return nil, nil, errors.New("refiner enabled but neither GEMINI_API_KEY nor SLM_REFINER_ENDPOINT is set")
}
