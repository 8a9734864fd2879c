// Package server exposes the macro editor as MCP tools so agents can build
// and run macros without shelling out to the CLI.
package server

import (
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mj1618/macro-cli/internal/edit"
	"github.com/mj1618/macro-cli/internal/platform"
)

// Config holds MCP server configuration.
type Config struct {
	Name    string
	Version string
	// File is loaded at startup when it exists and is the default save target.
	File string
	// Autosave writes the document back to File after every successful edit.
	Autosave bool
	// Runner launches the screenshot tool for the run tool. Nil disables it.
	Runner *platform.Runner
	// Canvas size for the render tool when no base image is given.
	Width, Height int
}

// Server wraps the MCP server with the editing session.
type Server struct {
	mu       sync.Mutex
	sess     *session
	runner   *platform.Runner
	autosave bool
	width    int
	height   int
	mcp      *mcpserver.MCPServer
}

// New creates a server with every editor tool registered.
func New(cfg Config) (*Server, error) {
	sess, err := openSession(cfg.File)
	if err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = "macro-cli"
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 800
	}

	s := &Server{
		sess:     sess,
		runner:   cfg.Runner,
		autosave: cfg.Autosave,
		width:    cfg.Width,
		height:   cfg.Height,
	}
	s.mcp = mcpserver.NewMCPServer(cfg.Name, cfg.Version)
	s.registerTools()
	return s, nil
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

// Serve starts the server on the given transport.
func (s *Server) Serve(transport string, port int) error {
	switch transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("new",
			mcp.WithDescription("Start a new empty macro document, discarding the current one"),
			mcp.WithString("path", mcp.Description("File the document will be saved to")),
		),
		s.handleNew,
	)

	s.mcp.AddTool(
		mcp.NewTool("load",
			mcp.WithDescription("Load a macro document from a .json or .yaml file"),
			mcp.WithString("path", mcp.Description("File to load"), mcp.Required()),
		),
		s.handleLoad,
	)

	s.mcp.AddTool(
		mcp.NewTool("save",
			mcp.WithDescription("Write the current document as macro JSON"),
			mcp.WithString("path", mcp.Description("Target file (default: the loaded file)")),
		),
		s.handleSave,
	)

	s.mcp.AddTool(
		mcp.NewTool("show",
			mcp.WithDescription("Return the current document"),
			mcp.WithString("format", mcp.Description("json (exchange format, default) or yaml")),
		),
		s.handleShow,
	)

	s.mcp.AddTool(
		mcp.NewTool("outline",
			mcp.WithDescription("List steps, elements and destinations with their indexes"),
			mcp.WithString("kind", mcp.Description("Only entries of this kind: step, element, destination")),
			mcp.WithString("match", mcp.Description("Only entries whose label or detail contains this text")),
		),
		s.handleOutline,
	)

	s.mcp.AddTool(
		mcp.NewTool("render",
			mcp.WithDescription("Render the elements of an annotate step onto a blank canvas or a base image"),
			mcp.WithNumber("step", mcp.Description("Annotate step index (0-based, negative counts from the end)"), mcp.Required()),
			mcp.WithString("base", mcp.Description("Base image path (default: blank canvas)")),
			mcp.WithNumber("width", mcp.Description("Canvas width when no base image is given")),
			mcp.WithNumber("height", mcp.Description("Canvas height when no base image is given")),
			mcp.WithString("format", mcp.Description("Image format: png, jpg (default: png)")),
		),
		s.handleRender,
	)

	s.mcp.AddTool(
		mcp.NewTool("run",
			mcp.WithDescription("Hand the current document to the screenshot tool as a macro"),
		),
		s.handleRun,
	)

	s.mcp.AddTool(
		mcp.NewTool("do",
			mcp.WithDescription("Apply several edit ops in order. Each step is an object with one op name mapped to its params, e.g. {\"add-step\": {\"kind\": \"capture\"}}"),
			mcp.WithArray("steps", mcp.Description("Array of step objects"), mcp.Required()),
			mcp.WithBoolean("stop-on-error", mcp.Description("Stop on first error and discard the whole batch (default: true)")),
		),
		s.handleDo,
	)

	for _, op := range edit.Ops() {
		s.mcp.AddTool(opTool(op), s.editHandler(op.Name))
	}
}

// opTool describes an edit op as an MCP tool.
func opTool(op edit.Op) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(op.Description)}
	for _, p := range op.Params {
		props := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			props = append(props, mcp.Required())
		}
		switch p.Type {
		case edit.Number:
			opts = append(opts, mcp.WithNumber(p.Name, props...))
		case edit.Boolean:
			opts = append(opts, mcp.WithBoolean(p.Name, props...))
		default:
			opts = append(opts, mcp.WithString(p.Name, props...))
		}
	}
	return mcp.NewTool(op.Name, opts...)
}
