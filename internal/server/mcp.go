package server

import (
	"context"
	"fmt"
	"sync"

	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/winnux/internal/app"
	"github.com/Gaurav-Gosain/winnux/internal/desktop"
	"github.com/Gaurav-Gosain/winnux/internal/registry"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"
)

// MCP transports.
const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamable-http"
)

// MCPServer exposes a headless desktop as MCP tools. The desktop is never
// attached to a program; commands returned by window contents are dropped.
type MCPServer struct {
	mu     sync.Mutex
	desk   *app.Desktop
	mcp    *mcpserver.MCPServer
	logger *log.Logger
}

// NewMCPServer registers the window tools over desk.
func NewMCPServer(desk *app.Desktop, version string, logger *log.Logger) *MCPServer {
	if logger == nil {
		logger = log.Default()
	}
	s := &MCPServer{
		desk:   desk,
		mcp:    mcpserver.NewMCPServer("winnux", version),
		logger: logger,
	}
	s.registerTools()
	return s
}

func (s *MCPServer) registerTools() {
	windowID := mcp.WithString("id",
		mcp.Description("Window id, unique id prefix or unique title"),
		mcp.Required(),
	)

	s.mcp.AddTool(mcp.NewTool("list_windows",
		mcp.WithDescription("List open windows with their stacking order and geometry"),
	), s.handleListWindows)

	s.mcp.AddTool(mcp.NewTool("list_apps",
		mcp.WithDescription("List the registered applications"),
	), s.handleListApps)

	s.mcp.AddTool(mcp.NewTool("open_app",
		mcp.WithDescription("Open a new window of an application"),
		mcp.WithString("kind", mcp.Description("App kind or name, e.g. terminal"), mcp.Required()),
	), s.handleOpenApp)

	s.mcp.AddTool(mcp.NewTool("close_window",
		mcp.WithDescription("Close a window"),
		windowID,
	), s.windowTool("close", s.desk.CloseWindow))

	s.mcp.AddTool(mcp.NewTool("minimize_window",
		mcp.WithDescription("Minimize a window to the taskbar"),
		windowID,
	), s.windowTool("minimize", s.desk.MinimizeWindow))

	s.mcp.AddTool(mcp.NewTool("toggle_maximize",
		mcp.WithDescription("Maximize a window, or restore it if already maximized"),
		windowID,
	), s.windowTool("toggle maximize", s.desk.ToggleMaximizeWindow))

	s.mcp.AddTool(mcp.NewTool("focus_window",
		mcp.WithDescription("Bring a window to the front, restoring it if minimized"),
		windowID,
	), s.windowTool("focus", s.desk.FocusWindow))

	s.mcp.AddTool(mcp.NewTool("move_window",
		mcp.WithDescription("Move a window's top-left corner to x, y"),
		windowID,
		mcp.WithNumber("x", mcp.Description("Column"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Row"), mcp.Required()),
	), s.handleMoveWindow)

	s.mcp.AddTool(mcp.NewTool("taskbar_click",
		mcp.WithDescription("Click an app's taskbar button: focus, restore, or open a new instance"),
		mcp.WithString("kind", mcp.Description("App kind or name"), mcp.Required()),
	), s.handleTaskbarClick)

	s.mcp.AddTool(mcp.NewTool("screenshot",
		mcp.WithDescription("Render the desktop as plain text"),
	), s.handleScreenshot)
}

// Serve runs the server on the given transport until it fails or, for
// stdio, stdin closes.
func (s *MCPServer) Serve(transport string, port int) error {
	switch transport {
	case "", TransportStdio:
		// stdout carries the protocol
		s.logger.Info("Serving MCP", "transport", TransportStdio)
		return mcpserver.ServeStdio(s.mcp)
	case TransportStreamableHTTP:
		addr := fmt.Sprintf(":%d", port)
		s.logger.Info("Serving MCP", "transport", transport, "addr", addr)
		return mcpserver.NewStreamableHTTPServer(s.mcp).Start(addr)
	default:
		return fmt.Errorf("unknown MCP transport %q", transport)
	}
}

func (s *MCPServer) handleListWindows(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

type appInfo struct {
	Kind   registry.AppKind `yaml:"kind"`
	Name   string           `yaml:"name"`
	Width  int              `yaml:"width"`
	Height int              `yaml:"height"`
	Open   int              `yaml:"open"`
}

func (s *MCPServer) handleListApps(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mgr := s.desk.Manager()
	var out []appInfo
	for _, def := range s.desk.Registry().All() {
		open := 0
		for _, w := range mgr.Windows() {
			if w.Kind == def.Kind {
				open++
			}
		}
		out = append(out, appInfo{
			Kind:   def.Kind,
			Name:   def.Name,
			Width:  def.DefaultWidth,
			Height: def.DefaultHeight,
			Open:   open,
		})
	}
	return yamlResult(map[string]any{"apps": out})
}

func (s *MCPServer) handleOpenApp(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kind, err := s.desk.Registry().ParseKind(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	w, _, ok := s.desk.OpenApp(kind)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("cannot open %q", name)), nil
	}
	s.logger.Debug("MCP open_app", "kind", kind, "id", w.ID)
	return s.snapshot()
}

// windowTool builds a handler that resolves the "id" argument and applies op.
func (s *MCPServer) windowTool(name string, op func(id string)) mcpserver.ToolHandlerFunc {
	return func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		w, res := s.resolve(request)
		if res != nil {
			return res, nil
		}
		op(w.ID)
		s.logger.Debug("MCP "+name, "id", w.ID)
		return s.snapshot()
	}
}

func (s *MCPServer) handleMoveWindow(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if _, ok := args["x"]; !ok {
		return mcp.NewToolResultError("missing required argument x"), nil
	}
	if _, ok := args["y"]; !ok {
		return mcp.NewToolResultError("missing required argument y"), nil
	}
	x := request.GetInt("x", 0)
	y := request.GetInt("y", 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	w, res := s.resolve(request)
	if res != nil {
		return res, nil
	}
	s.desk.MoveWindow(w.ID, x, y)
	return s.snapshot()
}

func (s *MCPServer) handleTaskbarClick(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kind, err := s.desk.Registry().ParseKind(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.desk.TaskbarClick(kind)
	return s.snapshot()
}

func (s *MCPServer) handleScreenshot(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mcp.NewToolResultText(ansi.Strip(s.desk.Render())), nil
}

// resolve looks up the "id" argument. A non-nil result is the tool error to
// return.
func (s *MCPServer) resolve(request mcp.CallToolRequest) (desktop.Window, *mcp.CallToolResult) {
	ref, err := request.RequireString("id")
	if err != nil {
		return desktop.Window{}, mcp.NewToolResultError(err.Error())
	}
	w, err := s.desk.Manager().Resolve(ref)
	if err != nil {
		return desktop.Window{}, mcp.NewToolResultError(err.Error())
	}
	return w, nil
}

// snapshot must be called with mu held.
func (s *MCPServer) snapshot() (*mcp.CallToolResult, error) {
	return yamlResult(s.desk.Manager().Snapshot())
}

func yamlResult(v any) (*mcp.CallToolResult, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
