// Package server exposes the diff engine over MCP stdio: one tool per
// generator plus session listing. It owns serialization and the error
// envelope; all computation lives in internal/diff.
package server

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kvit-s/tracediff/internal/diff"
	"github.com/kvit-s/tracediff/internal/locator"
	"github.com/kvit-s/tracediff/internal/logging"
)

const serverName = "tracediff"

// Server wires the engine and its collaborators to the MCP transport.
type Server struct {
	engine  *diff.Engine
	locator *locator.Locator
	logger  *logging.Logger
	mcp     *server.MCPServer
}

// New builds the MCP server and registers every tool.
func New(version string, engine *diff.Engine, loc *locator.Locator, logger *logging.Logger) *Server {
	s := &Server{
		engine:  engine,
		locator: loc,
		logger:  logger,
	}

	s.mcp = server.NewMCPServer(
		serverName,
		version,
		server.WithLogging(),
	)
	s.registerTools()
	return s
}

// ServeStdio blocks serving the stdio transport until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("edit_diff",
		mcp.WithDescription("Compute the diff for a single string replacement in a file"),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path of the edited file")),
		mcp.WithString("original", mcp.Required(), mcp.Description("Full file content before the edit")),
		mcp.WithString("old_string", mcp.Required(), mcp.Description("Text that was replaced")),
		mcp.WithString("new_string", mcp.Required(), mcp.Description("Replacement text")),
		mcp.WithBoolean("replace_all", mcp.Description("Replace every occurrence instead of the first")),
	), s.handle("edit_diff", s.handleEdit))

	s.mcp.AddTool(mcp.NewTool("write_diff",
		mcp.WithDescription("Compute the diff for a file creation or full overwrite"),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path of the written file")),
		mcp.WithString("new_content", mcp.Required(), mcp.Description("Full content after the write")),
		mcp.WithString("previous_content", mcp.Description("Full content before the write; omit for a new file")),
	), s.handle("write_diff", s.handleWrite))

	s.mcp.AddTool(mcp.NewTool("multi_edit_diff",
		mcp.WithDescription("Compute the diff for an ordered sequence of string replacements"),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path of the edited file")),
		mcp.WithString("original", mcp.Required(), mcp.Description("Full file content before the first edit")),
		mcp.WithArray("edits", mcp.Required(), mcp.Description("Edits applied in order; each has old_string, new_string, replace_all")),
	), s.handle("multi_edit_diff", s.handleMultiEdit))

	s.mcp.AddTool(mcp.NewTool("bash_diff",
		mcp.WithDescription("Describe a shell command's output and reported file side effects"),
		mcp.WithString("command", mcp.Required(), mcp.Description("Command text as executed")),
		mcp.WithString("stdout", mcp.Description("Captured standard output")),
		mcp.WithString("stderr", mcp.Description("Captured standard error")),
		mcp.WithNumber("exit_code", mcp.Required(), mcp.Description("Process exit code, 0-255")),
		mcp.WithArray("side_effects", mcp.Description("Observed file changes: file_path, change_type, before_content, after_content")),
	), s.handle("bash_diff", s.handleBash))

	s.mcp.AddTool(mcp.NewTool("read_diff",
		mcp.WithDescription("Describe a read-only file access"),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path of the read file")),
		mcp.WithString("content", mcp.Description("Content returned to the agent; null is treated as empty")),
		mcp.WithNumber("offset", mcp.Description("0-based line offset the read started at")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of lines read")),
		mcp.WithNumber("lines_read", mcp.Description("Caller-counted lines, overriding the derived count")),
	), s.handle("read_diff", s.handleRead))

	s.mcp.AddTool(mcp.NewTool("list_operations",
		mcp.WithDescription("List the recorded operations of a session"),
		mcp.WithString("work_dir", mcp.Required(), mcp.Description("Project working directory the session ran in")),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
	), s.handle("list_operations", s.handleListOperations))
}
