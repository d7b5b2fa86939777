// Command mdubot crawls course and program syllabi from mdu.se, indexes
// them with Ollama embeddings, and answers questions about them.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/henfal/mdubot/htmltomarkdown"
	mduhttp "github.com/henfal/mdubot/http"
	"github.com/henfal/mdubot/ollama"
	"github.com/henfal/mdubot/retrieve"
	mduslog "github.com/henfal/mdubot/slog"
	"github.com/henfal/mdubot/sqlite"
	"github.com/henfal/mdubot/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the storage services.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("mdubot"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'mdubot --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := commandName(kongCtx.Command())

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Config, err = yaml.Load(cli.ConfigPath)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(deps.Config.Database.Path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set MDUBOT_DB to use a different database path")
		return fmt.Errorf("failed to open database at %q: %w", deps.Config.Database.Path, err)
	}

	deps.DB = m.DB
	deps.Courses = sqlite.NewCourseService(m.DB)
	deps.Programs = sqlite.NewProgramService(m.DB)
	deps.Chunks = sqlite.NewChunkService(m.DB)

	switch cmd {
	case "crawl":
		timeout := secondsToDuration(deps.Config.Crawler.TimeoutSecs)
		deps.Fetcher = mduslog.NewLoggingFetcher(mduhttp.NewFetcher(mduhttp.WithTimeout(timeout)), deps.Logger)
		defer deps.Fetcher.Close()
		deps.Converter = htmltomarkdown.NewConverter()

	case "populate":
		deps.Embedder, err = newEmbedder(deps.Config)
		if err != nil {
			return err
		}

	case "ask", "chat":
		deps.Embedder, err = newEmbedder(deps.Config)
		if err != nil {
			return err
		}
		deps.Search = mduslog.NewLoggingSearchService(retrieve.NewRetriever(deps.Embedder, deps.Chunks), deps.Logger)
		deps.Asker, err = ollama.NewAsker(deps.Search,
			ollama.WithChatModel(deps.Config.Ollama.ChatModel),
			ollama.WithChatServerURL(deps.Config.Ollama.ServerURL),
		)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Is Ollama running? Start it with 'ollama serve'")
			return err
		}
	}

	return kongCtx.Run(deps)
}

func newEmbedder(config *yaml.Config) (*ollama.Embedder, error) {
	return ollama.NewEmbedder(
		ollama.WithEmbedModel(config.Ollama.EmbedModel),
		ollama.WithEmbedServerURL(config.Ollama.ServerURL),
		ollama.WithEmbedRPS(config.Ollama.EmbedRPS),
	)
}

// commandName returns the first word of a Kong command string, e.g.
// "crawl" from "crawl --course-range".
func commandName(command string) string {
	for i, r := range command {
		if r == ' ' {
			return command[:i]
		}
	}
	return command
}

func secondsToDuration(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}
