package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kvit-s/tracediff/internal/diff"
	"github.com/kvit-s/tracediff/internal/session"
)

// handler computes one tool's result from already-bound arguments.
type handler func(ctx context.Context, args map[string]any) (any, error)

// handle wraps a handler with argument extraction, error envelope rendering
// and per-call logging.
func (s *Server) handle(tool string, h handler) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		args, _ := request.Params.Arguments.(map[string]any)
		result, err := h(ctx, args)
		s.logger.ToolCall(tool, time.Since(start), err)

		if err != nil {
			return errorResult(err), nil
		}
		data, merr := json.MarshalIndent(result, "", "  ")
		if merr != nil {
			return errorResult(diff.WrapTool(tool, "", merr)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// errorResult renders one error envelope per failed call.
func errorResult(err error) *mcp.CallToolResult {
	var env map[string]any
	if ee, ok := err.(diff.EngineError); ok {
		env = ee.Envelope()
	} else {
		env = map[string]any{
			"error":   string(diff.KindTool),
			"message": err.Error(),
		}
	}
	data, merr := json.Marshal(env)
	if merr != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(string(data))
}

// bind re-marshals loosely-typed MCP arguments into a typed parameter struct.
func bind(args map[string]any, v any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return &diff.ValidationError{Message: fmt.Sprintf("invalid arguments: %v", err)}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &diff.ValidationError{Message: fmt.Sprintf("invalid arguments: %v", err)}
	}
	return nil
}

func (s *Server) handleEdit(ctx context.Context, args map[string]any) (any, error) {
	var params struct {
		FilePath   string `json:"file_path"`
		Original   string `json:"original"`
		OldString  string `json:"old_string"`
		NewString  string `json:"new_string"`
		ReplaceAll bool   `json:"replace_all"`
	}
	if err := bind(args, &params); err != nil {
		return nil, err
	}
	return s.engine.Edit(params.FilePath, params.Original, params.OldString, params.NewString, params.ReplaceAll)
}

func (s *Server) handleWrite(ctx context.Context, args map[string]any) (any, error) {
	var params struct {
		FilePath        string  `json:"file_path"`
		NewContent      string  `json:"new_content"`
		PreviousContent *string `json:"previous_content"`
	}
	if err := bind(args, &params); err != nil {
		return nil, err
	}
	return s.engine.Write(params.FilePath, params.PreviousContent, params.NewContent)
}

func (s *Server) handleMultiEdit(ctx context.Context, args map[string]any) (any, error) {
	var params struct {
		FilePath string      `json:"file_path"`
		Original string      `json:"original"`
		Edits    []diff.Edit `json:"edits"`
	}
	if err := bind(args, &params); err != nil {
		return nil, err
	}
	return s.engine.MultiEdit(params.FilePath, params.Original, params.Edits)
}

func (s *Server) handleBash(ctx context.Context, args map[string]any) (any, error) {
	var params struct {
		Command     string            `json:"command"`
		Stdout      string            `json:"stdout"`
		Stderr      string            `json:"stderr"`
		ExitCode    *int              `json:"exit_code"`
		SideEffects []diff.SideEffect `json:"side_effects"`
	}
	if err := bind(args, &params); err != nil {
		return nil, err
	}
	if params.ExitCode == nil {
		return nil, &diff.ValidationError{Field: "exit_code", Message: "exit_code is required"}
	}
	return s.engine.Bash(params.Command, params.Stdout, params.Stderr, *params.ExitCode, params.SideEffects)
}

func (s *Server) handleRead(ctx context.Context, args map[string]any) (any, error) {
	var params struct {
		FilePath  string  `json:"file_path"`
		Content   *string `json:"content"`
		Offset    *int    `json:"offset"`
		Limit     *int    `json:"limit"`
		LinesRead *int    `json:"lines_read"`
	}
	if err := bind(args, &params); err != nil {
		return nil, err
	}
	content := ""
	if params.Content != nil {
		content = *params.Content
	}
	return s.engine.Read(params.FilePath, content, diff.ReadOptions{
		Offset:    params.Offset,
		Limit:     params.Limit,
		LinesRead: params.LinesRead,
	})
}

func (s *Server) handleListOperations(ctx context.Context, args map[string]any) (any, error) {
	var params struct {
		WorkDir   string `json:"work_dir"`
		SessionID string `json:"session_id"`
	}
	if err := bind(args, &params); err != nil {
		return nil, err
	}

	logPath, err := s.locator.Resolve(params.WorkDir, params.SessionID)
	if err != nil {
		return nil, err
	}
	records, err := session.ParseFile(logPath)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"session_id": params.SessionID,
		"log_path":   logPath,
		"operations": records,
	}, nil
}
