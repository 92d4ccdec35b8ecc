// Command docsmith is an MCP (Model Context Protocol) server that lets
// AI assistants create, inspect, and edit Word (.docx) documents.
//
// # Installation
//
//	go install github.com/docsmith/docsmith/cmd/docsmith@latest
//
// # Configuration for Claude Desktop
//
// Add to ~/.config/claude/claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "docsmith": {
//	      "command": "docsmith",
//	      "args": ["--root", "/path/to/documents"]
//	    }
//	  }
//	}
//
// # Available Tools
//
//   - create_document, copy_document, list_available_documents
//   - add_heading, add_paragraph, add_table, add_picture, add_page_break
//   - format_text, format_table, set_paragraph_alignment
//   - search_and_replace, delete_paragraph, create_custom_style
//   - get_document_info, get_document_text, get_document_outline
//   - get_document_styles, get_headers_and_footers, get_footnotes_and_endnotes
//   - search_documents: full-text search across the document root
//
// # Available Resources
//
//   - docx://{path} : plain text content
//   - docx-formatted://{path} : content with formatting markup
//
// Flags override the DOCSMITH_ROOT, DOCSMITH_TRANSPORT, DOCSMITH_ADDR,
// and DOCSMITH_DEBUG environment variables.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/docsmith/docsmith/catalog"
	"github.com/docsmith/docsmith/registry"
	"github.com/docsmith/docsmith/search"
)

var version = "dev"

type options struct {
	Root      string `env:"DOCSMITH_ROOT" envDefault:"."`
	Transport string `env:"DOCSMITH_TRANSPORT" envDefault:"stdio"`
	Addr      string `env:"DOCSMITH_ADDR" envDefault:":8421"`
	Debug     bool   `env:"DOCSMITH_DEBUG"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "docsmith: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}
	envErr := env.Parse(&opts)

	cmd := &cobra.Command{
		Use:           "docsmith",
		Short:         "MCP server for creating and editing Word documents",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return fmt.Errorf("parse environment: %w", envErr)
			}
			return run(opts)
		},
	}

	// Environment provides the defaults; flags win when set.
	cmd.Flags().StringVar(&opts.Root, "root", opts.Root, "directory holding the .docx documents")
	cmd.Flags().StringVar(&opts.Transport, "transport", opts.Transport, "transport to serve on: stdio or http")
	cmd.Flags().StringVar(&opts.Addr, "addr", opts.Addr, "listen address for the http transport")
	cmd.Flags().BoolVar(&opts.Debug, "debug", opts.Debug, "enable debug logging")
	return cmd
}

func run(opts options) error {
	logger, err := newLogger(opts.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", root)
	}

	searcher := search.NewSearcher(search.Config{})
	defer func() { _ = searcher.Close() }()

	srv := registry.New(registry.Config{
		ServerInfo: registry.ServerInfo{Name: "word-document-server", Version: version},
		Root:       root,
		Catalog:    catalog.New(root, catalog.Options{Searcher: searcher, Logger: logger}),
		Logger:     logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch opts.Transport {
	case "stdio":
		return srv.Run(ctx)
	case "http":
		return serveHTTP(ctx, srv, opts.Addr, logger)
	default:
		return fmt.Errorf("unknown transport %q (want stdio or http)", opts.Transport)
	}
}

func serveHTTP(ctx context.Context, srv *registry.Server, addr string, logger *zap.Logger) error {
	if err := srv.Catalog().Scan(); err != nil {
		logger.Warn("initial catalog scan failed", zap.Error(err))
	}

	mux := http.NewServeMux()
	mux.Handle("/mcp", srv.HTTPHandler())

	httpSrv := &http.Server{Addr: addr, Handler: mux}
	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	logger.Info("serving documents over http", zap.String("addr", addr))
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

// newLogger builds a stderr logger; stdout belongs to the stdio
// transport.
func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
