package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"textsaver/internal/tools"
	"textsaver/internal/utils"
)

// defaultMaxLineBytes bounds a single request line. The save_text
// payload may be 10 MiB of arbitrary text, and JSON escaping can expand
// it several-fold, so the bound is generous.
const defaultMaxLineBytes = 64 * 1024 * 1024

// Server dispatches newline-delimited JSON-RPC requests read from in to
// the tool registry, writing one response per line to out.
type Server struct {
	info         ServerInfo
	registry     *tools.Registry
	logger       *utils.Logger
	maxLineBytes int
}

// NewServer creates a stdio MCP server around a tool registry.
func NewServer(name, version string, registry *tools.Registry) *Server {
	return &Server{
		info:         ServerInfo{Name: name, Version: version},
		registry:     registry,
		logger:       utils.NewComponentLogger("MCPServer"),
		maxLineBytes: defaultMaxLineBytes,
	}
}

// Serve runs the request loop until in reaches EOF or ctx is cancelled.
// Requests are processed strictly in order; the loop never returns
// early with a response still pending.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), s.maxLineBytes)
	encoder := json.NewEncoder(out)

	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		for scanner.Scan() {
			line := make([]byte, len(scanner.Bytes()))
			copy(line, scanner.Bytes())
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	s.logger.Info("server %s v%s listening on stdio", s.info.Name, s.info.Version)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down: %v", ctx.Err())
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("reading requests: %w", err)
				}
				s.logger.Info("stdin closed, shutting down")
				return nil
			}
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			resp := s.dispatch(ctx, line)
			if resp == nil {
				continue
			}
			if err := encoder.Encode(resp); err != nil {
				return fmt.Errorf("writing response: %w", err)
			}
		}
	}
}

// dispatch parses one request line and returns the response to send,
// or nil for notifications.
func (s *Server) dispatch(ctx context.Context, line []byte) *Response {
	req, err := UnmarshalRequest(line)
	if err != nil {
		s.logger.Warn("rejecting malformed request: %v", err)
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			return NewErrorResponse(nil, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		}
		return NewErrorResponse(nil, ParseError, err.Error(), nil)
	}

	if req.IsNotification() {
		s.logger.Debug("notification: %s", req.Method)
		return nil
	}

	return s.handleRequest(ctx, req)
}

func (s *Server) handleRequest(ctx context.Context, req *Request) *Response {
	switch req.Method {
	case MethodInitialize:
		if info, ok := req.Params["clientInfo"].(map[string]any); ok {
			s.logger.Info("initialize from client %v", info["name"])
		}
		return NewResponse(req.ID, InitializeResult{
			ProtocolVersion: MCPProtocolVersion,
			Capabilities: ServerCapabilities{
				Tools: &ToolsCapability{ListChanged: false},
			},
			ServerInfo: s.info,
		})

	case MethodPing:
		return NewResponse(req.ID, map[string]any{})

	case MethodToolsList:
		return NewResponse(req.ID, map[string]any{
			"tools": s.registry.List(),
		})

	case MethodToolsCall:
		return s.handleToolsCall(ctx, req)

	default:
		return NewErrorResponse(req.ID, MethodNotFound, fmt.Sprintf("unknown method: %s", req.Method), nil)
	}
}

// handleToolsCall runs one tool invocation. A failing tool yields an
// isError tool result, not a JSON-RPC error: the caller always gets the
// structured payload.
func (s *Server) handleToolsCall(ctx context.Context, req *Request) *Response {
	name, _ := req.Params["name"].(string)
	tool, err := s.registry.Get(name)
	if err != nil {
		return NewErrorResponse(req.ID, InvalidParams, fmt.Sprintf("unknown tool: %s", name), nil)
	}

	args, _ := req.Params["arguments"].(map[string]any)
	if args == nil {
		args = map[string]any{}
	}

	call := tools.ToolCall{
		ID:        fmt.Sprintf("%v", req.ID),
		Name:      name,
		Arguments: args,
	}

	s.logger.Debug("tools/call %s (id=%s)", name, call.ID)

	result, err := tool.Execute(ctx, call)
	if err != nil {
		s.logger.Error("tool %s failed internally: %v", name, err)
		return NewErrorResponse(req.ID, InternalError, err.Error(), nil)
	}

	return NewResponse(req.ID, ToolsCallResult{
		Content: []Content{{Type: "text", Text: result.Content}},
		IsError: result.Error != nil,
	})
}
