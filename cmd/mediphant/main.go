// Package main is the Mediphant CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Jitenthink/mediphant-devtest/internal/answer"
	"github.com/Jitenthink/mediphant-devtest/internal/config"
	"github.com/Jitenthink/mediphant-devtest/internal/embedding"
	"github.com/Jitenthink/mediphant-devtest/internal/fallback"
	"github.com/Jitenthink/mediphant-devtest/internal/indexer"
	"github.com/Jitenthink/mediphant-devtest/internal/retrieval"
	"github.com/Jitenthink/mediphant-devtest/internal/server"
	"github.com/Jitenthink/mediphant-devtest/internal/vector"
	"github.com/Jitenthink/mediphant-devtest/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/mediphant/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallbackPath := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallbackPath); statErr == nil {
				cfg, loadErr := config.Load(fallbackPath)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallbackPath, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "server":
		runServer()
	case "index":
		runIndex()
	case "ask":
		runAsk()
	case "version", "--version", "-v":
		fmt.Printf("mediphant version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`Usage: mediphant <command> [flags]

Commands:
  server    Start the FAQ HTTP server
  index     Chunk and index the corpus (remote index + local snapshot)
  ask       Answer a single question from the command line
  version   Print version
  help      Show this help

Configuration is read from config.yaml (or -config). API keys come from the
environment or a .env file: OPENAI_API_KEY, PINECONE_API_KEY,
PINECONE_INDEX_HOST.
`)
}

// components holds the wired retrieval stack shared by server, index, and ask.
type components struct {
	Embedder  embedding.Embedder
	Remote    vector.Index
	Store     *fallback.Store
	Retriever *retrieval.Retriever
	Composer  *answer.Composer
}

// initializeComponents builds the retrieval stack from config and env.
// Missing keys degrade instead of failing: no OpenAI key means keyword-mode
// matching and templated answers, no Pinecone key means local-only retrieval.
func initializeComponents(cfg *config.Config, logger *zap.Logger) *components {
	var embedder embedding.Embedder
	if e, err := embedding.NewOpenAIEmbedder(os.Getenv("OPENAI_API_KEY"), cfg.OpenAI.EmbeddingModel, cfg.OpenAI.Dimensions); err == nil {
		embedder = e
	} else {
		logger.Info("embedding provider not configured, keyword matching only")
	}

	var remote vector.Index
	if p, err := vector.NewPineconeIndex(os.Getenv("PINECONE_API_KEY"), os.Getenv("PINECONE_INDEX_HOST"), cfg.Retrieval.Timeout(), logger); err == nil {
		remote = p
	} else {
		logger.Info("remote vector index not configured, local fallback only")
	}

	var generator answer.Generator
	if g, err := answer.NewOpenAIGenerator(os.Getenv("OPENAI_API_KEY"), cfg.OpenAI.ChatModel); err == nil {
		generator = g
	} else {
		logger.Info("answer generation not configured, templated answers only")
	}

	store := fallback.NewStore(cfg.Fallback.SnapshotPath, logger)
	store.Reload()
	matcher := fallback.NewMatcher(store, embedder, logger)
	retriever := retrieval.NewRetriever(remote, embedder, matcher, cfg.Retrieval.Timeout(), logger)
	composer := answer.NewComposer(generator, logger)

	return &components{
		Embedder:  embedder,
		Remote:    remote,
		Store:     store,
		Retriever: retriever,
		Composer:  composer,
	}
}

func setup(args []string) (*config.Config, *zap.Logger) {
	fs := flag.NewFlagSet(args[0], flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(args[1:])

	// Not an error when absent; env vars may be set directly.
	_ = godotenv.Load()

	cfg, resolvedPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger.Info("config loaded", zap.String("config_path", resolvedPath))
	return cfg, logger
}

func runServer() {
	cfg, logger := setup(os.Args[1:])
	defer logger.Sync()

	comps := initializeComponents(cfg, logger)

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Fallback.WatchOrDefault() {
		if err := comps.Store.Watch(watchCtx); err != nil {
			logger.Warn("snapshot watch unavailable", zap.Error(err))
		}
	}

	srv := server.NewServer(comps.Retriever, comps.Composer, comps.Store, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runIndex() {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	corpusPath := fs.String("corpus", "", "corpus document path (overrides config)")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	_ = godotenv.Load()

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	comps := initializeComponents(cfg, logger)
	idx := indexer.NewIndexer(comps.Embedder, comps.Remote, cfg.Fallback.SnapshotPath, cfg.Indexer.Workers, logger)

	path := cfg.Corpus.Path
	if *corpusPath != "" {
		path = *corpusPath
	}
	if err := idx.Run(context.Background(), path); err != nil {
		logger.Fatal("Indexing failed", zap.Error(err))
	}
}

// buildQuery joins all positional args with spaces so multi-word questions
// work the same with or without shell quoting.
func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	topK := fs.Int("top-k", 0, "number of passages to retrieve (default from config)")
	_ = fs.Parse(os.Args[2:])

	query := buildQuery(fs.Args())
	if query == "" {
		fmt.Println("Usage: mediphant ask <question>")
		os.Exit(1)
	}

	_ = godotenv.Load()

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := zap.NewNop()
	comps := initializeComponents(cfg, logger)

	k := cfg.Retrieval.TopK
	if *topK > 0 {
		k = *topK
	}
	ctx := context.Background()
	matches := comps.Retriever.Retrieve(ctx, query, k)
	fmt.Println(comps.Composer.Compose(ctx, query, matches))
	for _, m := range matches {
		fmt.Printf("  [%.2f] %s\n", m.Score, m.Title)
	}
}
