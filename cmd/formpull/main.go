package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/formpull"
	"github.com/fwojciec/formpull/extract"
	"github.com/fwojciec/formpull/goquery"
	fphttp "github.com/fwojciec/formpull/http"
	fpslog "github.com/fwojciec/formpull/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("formpull"),
		kong.Description("Extract client records from CRM form pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'formpull --help' to see available commands")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.BaseURL == "" {
		fmt.Fprintln(stderr, "Hint: Set FORMPULL_BASE_URL or pass --base-url")
		return formpull.Errorf(formpull.EINVALID, "base URL is required")
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	var fetcher formpull.Fetcher = fphttp.NewFetcher(cli.BaseURL,
		fphttp.WithTimeout(cli.Timeout),
		fphttp.WithRateLimit(cli.Rate),
		fphttp.WithToken(cli.Token),
		fphttp.WithFlagParam(cli.FlagParam),
	)
	if cli.Verbose {
		fetcher = fpslog.NewLoggingFetcher(fetcher, logger)
	}

	deps.Extractor = &extract.Extractor{
		Fetcher: fetcher,
		Parser:  goquery.NewParser(),
		Logger:  logger,
	}

	return kongCtx.Run(deps)
}
