package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/formpull"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Extractor formpull.RecordExtractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	BaseURL   string        `name:"base-url" env:"FORMPULL_BASE_URL" help:"Root URL of the source system's API"`
	Token     string        `env:"FORMPULL_TOKEN" help:"Bearer token for the source system's API"`
	Timeout   time.Duration `short:"t" default:"10s" help:"HTTP request timeout"`
	Rate      float64       `default:"0" help:"Maximum requests per second (0 for no limit)"`
	FlagParam string        `name:"flag-param" help:"Query parameter that carries the fetch flag (not sent when empty)"`
	Verbose   bool          `short:"v" help:"Log every request to stderr"`

	Get GetCmd `cmd:"" help:"Extract one record by identifier"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	ID   string `arg:"" help:"Record identifier"`
	JSON bool   `name:"json" help:"Print the result as JSON"`
}
