// Package main is the Oboe CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/oboe/internal/cli"
	"github.com/hyperjump/oboe/internal/config"
	"github.com/hyperjump/oboe/internal/embedding"
	"github.com/hyperjump/oboe/internal/models"
	"github.com/hyperjump/oboe/internal/server"
	"github.com/hyperjump/oboe/internal/storage"
	"github.com/hyperjump/oboe/pkg/utils"
)

var version = "dev"

const (
	defaultConfigPath = "/usr/local/etc/oboe/config.yaml"
	defaultServerURL  = "http://localhost:8000"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "add":
		runAdd()
	case "search":
		runSearch()
	case "delete":
		runDelete()
	case "health":
		runHealth()
	case "version", "--version", "-v":
		fmt.Printf("oboe version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage: oboe <command> [options]

Commands:
  server    Run the Oboe API server
  add       Add content to a running server
  search    Search content on a running server
  delete    Delete content by id on a running server
  health    Check server and database health
  version   Print version
  help      Print this help

Run "oboe <command> -h" for command options.`)
}

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := cwd + "/config.yaml"
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("storage_backend", cfg.Database.Backend),
		zap.Bool("debug", debugMode),
	)

	provider := embedding.NewProvider(func() (embedding.Embedder, error) {
		emb, err := embedding.NewONNXEmbedder(
			cfg.Embedding.ModelPath,
			cfg.Embedding.Dimensions,
			cfg.Embedding.MaxTokens,
			cfg.Embedding.CacheSize,
		)
		if err != nil {
			return nil, err
		}
		return emb, nil
	})
	defer provider.Close()

	ctx := context.Background()
	newStore := func() (storage.Store, error) {
		return storage.NewStore(ctx, &cfg.Database, cfg.Embedding.Dimensions)
	}

	strict := cfg.Server.StrictStartupOrDefault()
	var store storage.Store
	if strict {
		store, err = newStore()
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
		if _, err := provider.Get(); err != nil {
			logger.Fatal("Failed to initialize embedder", zap.Error(err))
		}
	} else {
		lazy := storage.NewLazy(newStore)
		if err := lazy.Ping(ctx); err != nil {
			logger.Warn("starting degraded: store unreachable", zap.Error(err))
		}
		if _, err := provider.Get(); err != nil {
			logger.Warn("starting degraded: embedder unavailable", zap.Error(err))
		}
		store = lazy
	}
	defer store.Close()

	srv := server.NewServer(store, provider, &cfg.Server, cfg.Search.DistanceThreshold, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}
}

func runAdd() {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "server URL")
	userID := fs.String("user", "", "user identifier (required, max 9 characters)")
	content := fs.String("content", "", "text content to store (reads stdin when omitted)")
	source := fs.String("source", "", "provenance tag (e.g., filename or URL)")
	metadata := fs.String("metadata", "", "additional metadata as a JSON object")
	_ = fs.Parse(os.Args[2:])

	text := *content
	if text == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Printf("Failed to read stdin: %v\n", err)
			os.Exit(1)
		}
		text = strings.TrimSpace(string(data))
	}

	input := models.AddContentInput{
		UserID:  *userID,
		Content: text,
		Source:  *source,
	}
	if *metadata != "" {
		if err := json.Unmarshal([]byte(*metadata), &input.Metadata); err != nil {
			fmt.Printf("Invalid -metadata JSON: %v\n", err)
			os.Exit(1)
		}
	}

	var resp models.AddContentResponse
	if err := postJSON(*serverURL+"/content", input, http.StatusCreated, &resp); err != nil {
		fmt.Printf("Add failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created %s (user %s, %d bytes)\n", resp.ID, resp.UserID, len(resp.Content))
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "server URL")
	limit := fs.Int("limit", 0, "maximum number of results (default 10)")
	userID := fs.String("user", "", "filter by user identifier")
	source := fs.String("source", "", "filter by source tag")
	threshold := fs.Float64("threshold", -1, "maximum cosine distance (server default when unset)")
	after := fs.String("after", "", "only records created at or after this RFC 3339 timestamp")
	before := fs.String("before", "", "only records created at or before this RFC 3339 timestamp")
	jsonOut := fs.Bool("json", false, "print results as JSON")
	_ = fs.Parse(searchArgsReorder(os.Args[2:]))

	query := buildSearchQuery(fs.Args())
	if query == "" {
		fmt.Println("Usage: oboe search [options] <query>")
		os.Exit(1)
	}

	req := models.SearchQuery{
		Query:         query,
		Limit:         *limit,
		UserID:        *userID,
		Source:        *source,
		CreatedAfter:  *after,
		CreatedBefore: *before,
	}
	if *threshold >= 0 {
		req.DistanceThreshold = threshold
	}

	var results []*models.SearchResult
	if err := postJSON(*serverURL+"/search", req, http.StatusOK, &results); err != nil {
		fmt.Printf("Search failed: %v\n", err)
		os.Exit(1)
	}

	format := cli.OutputText
	if *jsonOut {
		format = cli.OutputJSON
	}
	if err := cli.WriteSearchResults(os.Stdout, results, format); err != nil {
		fmt.Printf("Failed to write results: %v\n", err)
		os.Exit(1)
	}
}

func runDelete() {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "server URL")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() != 1 {
		fmt.Println("Usage: oboe delete [options] <id>")
		os.Exit(1)
	}
	id := fs.Arg(0)

	req, err := http.NewRequest(http.MethodDelete, *serverURL+"/content/"+id, nil)
	if err != nil {
		fmt.Printf("Delete failed: %v\n", err)
		os.Exit(1)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Delete failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		fmt.Printf("Deleted %s\n", id)
	case http.StatusNotFound:
		fmt.Printf("Not found: %s\n", id)
		os.Exit(1)
	default:
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("Delete failed: %s %s\n", resp.Status, string(body))
		os.Exit(1)
	}
}

func runHealth() {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "server URL")
	_ = fs.Parse(os.Args[2:])

	resp, err := http.Get(*serverURL + "/health")
	if err != nil {
		fmt.Printf("Health check failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	var health models.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		fmt.Printf("Health check failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Status: %s, database: %s\n", health.Status, health.Database)
	if health.Status != "healthy" {
		os.Exit(1)
	}
}

// postJSON posts body to url and decodes the response into out when the
// status matches wantStatus; otherwise it returns the response body as error.
func postJSON(url string, body interface{}, wantStatus int, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// searchArgsReorder moves flag arguments before positional query words so
// that "oboe search some text -limit 5" parses as expected.
func searchArgsReorder(args []string) []string {
	var flags, positional []string
	i := 0
	for i < len(args) {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") && !isBoolSearchFlag(arg) {
				flags = append(flags, args[i+1])
				i++
			}
		} else {
			positional = append(positional, arg)
		}
		i++
	}
	out := make([]string, 0, len(args))
	out = append(out, flags...)
	out = append(out, positional...)
	return out
}

func isBoolSearchFlag(arg string) bool {
	name := strings.TrimLeft(arg, "-")
	return name == "json"
}

// buildSearchQuery joins positional arguments into one query string.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
