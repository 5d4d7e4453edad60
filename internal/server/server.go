package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/ironsheep/screens-mcp/internal/imaging"
	"github.com/ironsheep/screens-mcp/internal/zoom"
)

// Version is reported in the initialize handshake.
const Version = "0.1.0"

// Config controls the widgets hosted by a Server.
type Config struct {
	// SampleImage is loaded into the zoom widget by Init. Empty means the
	// generated placeholder.
	SampleImage string

	// ResolutionImage is the fixed source of the resolution explorer. Empty
	// means the generated placeholder.
	ResolutionImage string

	// ViewSize is the side of the square zoom output canvas.
	ViewSize int

	// LoadTimeout is the delay after which a pending load falls back to the
	// placeholder.
	LoadTimeout time.Duration

	// HoverFollows lets plain pointer movement reposition the zoom area.
	HoverFollows bool

	// Workers bounds the goroutines used by screen_resolution_all.
	Workers int

	Logger *slog.Logger
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		ViewSize:    zoom.DefaultViewSize,
		LoadTimeout: imaging.DefaultLoadTimeout,
		Workers:     runtime.GOMAXPROCS(0),
		Logger:      slog.Default(),
	}
}

// Server handles MCP protocol communication
type Server struct {
	cfg    Config
	logger *slog.Logger
	cache  *imaging.ImageCache

	zoom       *zoomWidget
	mixer      *mixerWidget
	resolution *resolutionWidget
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON-RPC error codes used by the server.
const (
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// New creates a server with one private state per widget. Zero fields of cfg
// take their DefaultConfig values.
func New(cfg Config) *Server {
	def := DefaultConfig()
	if cfg.ViewSize <= 0 {
		cfg.ViewSize = def.ViewSize
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = def.LoadTimeout
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}

	cache := imaging.NewImageCache()
	return &Server{
		cfg:        cfg,
		logger:     cfg.Logger,
		cache:      cache,
		zoom:       newZoomWidget(cfg, cache),
		mixer:      newMixerWidget(),
		resolution: newResolutionWidget(cfg, cache),
	}
}

// Init loads the startup images. A configured file that is not an image is
// reported and replaced by the placeholder; Init itself only fails when the
// context is already done.
func (s *Server) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.zoom.load(ctx, s.cfg.SampleImage); err != nil {
		s.logger.Warn("sample image rejected, using placeholder", "path", s.cfg.SampleImage, "error", err)
		if _, err := s.zoom.load(ctx, ""); err != nil {
			return fmt.Errorf("failed to load zoom placeholder: %w", err)
		}
	}

	if err := s.resolution.load(ctx, s.cfg.ResolutionImage); err != nil {
		s.logger.Warn("resolution image rejected, using placeholder", "path", s.cfg.ResolutionImage, "error", err)
		if err := s.resolution.load(ctx, ""); err != nil {
			return fmt.Errorf("failed to load resolution placeholder: %w", err)
		}
	}

	s.logger.Info("widgets initialized",
		"sample", s.zoom.source.Path, "sample_fallback", s.zoom.source.Fallback,
		"resolution_source", s.resolution.source.Path, "resolution_fallback", s.resolution.source.Fallback)
	return nil
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve processes newline-delimited requests from r until r is exhausted or
// ctx is done, writing one response line per request to w. Requests are
// handled strictly one at a time. Cancellation returns promptly even while
// blocked on input; a read already in flight finishes when r is closed.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	// Reading happens on its own goroutine so cancellation is noticed while
	// waiting for input. The reader itself is only unblocked by its owner
	// closing it.
	lines := make(chan []byte)
	var scanErr error
	go func() {
		defer close(lines)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr = scanner.Err()
	}()

	encoder := json.NewEncoder(w)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var line []byte
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				if scanErr != nil {
					return fmt.Errorf("scanner error: %w", scanErr)
				}
				return nil
			}
			line = l
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("failed to parse request", "error", err)
			continue
		}

		resp := s.handleRequest(ctx, &req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				return fmt.Errorf("failed to encode response: %w", err)
			}
		}
	}
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	s.logger.Debug("request", "method", req.Method, "id", req.ID)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return s.errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "screens-mcp",
				"version": Version,
			},
		},
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}
