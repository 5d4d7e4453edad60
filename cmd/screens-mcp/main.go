package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/ironsheep/screens-mcp/internal/imaging"
	"github.com/ironsheep/screens-mcp/internal/server"
	"github.com/ironsheep/screens-mcp/internal/zoom"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

type cli struct {
	Sample          string           `help:"Image loaded into the pixel zoom at startup. Empty uses the generated sample." env:"SCREENS_MCP_SAMPLE" type:"path"`
	ResolutionImage string           `help:"Source image for the resolution explorer. Empty uses the generated sample." env:"SCREENS_MCP_RESOLUTION_IMAGE" type:"path"`
	ViewSize        int              `help:"Side of the square zoom output in pixels." env:"SCREENS_MCP_VIEW_SIZE" default:"${view_size}"`
	LoadTimeout     time.Duration    `help:"Delay after which a pending image load falls back to the generated sample." env:"SCREENS_MCP_LOAD_TIMEOUT" default:"${load_timeout}"`
	HoverFollows    bool             `help:"Move the zoom area on plain pointer hover, not only while dragging." env:"SCREENS_MCP_HOVER_FOLLOWS"`
	Workers         int              `help:"Goroutines used to render all resolution factors. 0 means one per CPU." env:"SCREENS_MCP_WORKERS" default:"0"`
	LogLevel        string           `help:"Log level." enum:"debug,info,warn,error" default:"info" env:"SCREENS_MCP_LOG_LEVEL"`
	Version         kong.VersionFlag `help:"Print version information and quit." short:"v"`
}

func (c *cli) Validate(kctx *kong.Context) error {
	if c.ViewSize < 1 {
		return fmt.Errorf("invalid view size: %d", c.ViewSize)
	}
	if c.LoadTimeout <= 0 {
		return fmt.Errorf("invalid load timeout: %s", c.LoadTimeout)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid worker count: %d", c.Workers)
	}
	return nil
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("screens-mcp"),
		kong.Description("MCP server for the \"How Screens Work\" pixel zoom, colour mixer and resolution explorer.\n\nThis server communicates via MCP protocol over stdin/stdout."),
		kong.Vars{
			"version":      fmt.Sprintf("screens-mcp %s (built %s, commit %s)", Version, BuildTime, GitCommit),
			"view_size":    fmt.Sprint(zoom.DefaultViewSize),
			"load_timeout": imaging.DefaultLoadTimeout.String(),
		},
	)

	// stdout is for MCP protocol
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}))
	slog.SetDefault(logger)
	logger.Debug("starting", "version", Version, "built", BuildTime, "commit", GitCommit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		SampleImage:     c.Sample,
		ResolutionImage: c.ResolutionImage,
		ViewSize:        c.ViewSize,
		LoadTimeout:     c.LoadTimeout,
		HoverFollows:    c.HoverFollows,
		Workers:         c.Workers,
		Logger:          logger,
	})
	if err := srv.Init(ctx); err != nil {
		logger.Error("initialization failed", "error", err)
		os.Exit(1)
	}
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
