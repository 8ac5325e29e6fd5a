// Package mcp exposes template rendering as MCP tools so agent hosts can
// resolve templates and inspect their layout over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dathuynh1108/rule-table-render"
	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

// Server wraps a loaded template and exposes it as an MCP server.
type Server struct {
	renderer  *tablerender.Renderer
	template  *domain.Template
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server bound to one loaded template.
func NewServer(renderer *tablerender.Renderer, template *domain.Template) *Server {
	s := &Server{
		renderer:  renderer,
		template:  template,
		mcpServer: server.NewMCPServer("rule-table-render", strings.TrimSpace(tablerender.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	renderTool := mcp.NewTool("render_template",
		mcp.WithDescription("Resolve the loaded template into a payload. Overrides replace user field defaults before resolution."),
		mcp.WithString("overrides", mcp.Description("JSON object of field id to value (optional)")),
		mcp.WithString("tables", mcp.Description("JSON array of table ids to include (optional, defaults to all)")),
	)
	s.mcpServer.AddTool(renderTool, s.handleRender)

	listTool := mcp.NewTool("list_fields",
		mcp.WithDescription("List the template's fields with their source, type and formula."),
	)
	s.mcpServer.AddTool(listTool, s.handleListFields)

	tablesTool := mcp.NewTool("list_tables",
		mcp.WithDescription("List the template's table ids and titles."),
	)
	s.mcpServer.AddTool(tablesTool, s.handleListTables)
}

func (s *Server) handleRender(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	var overrides map[string]any
	if raw, ok := args["overrides"].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid overrides JSON: %v", err)), nil
		}
	}

	var tables []string
	if raw, ok := args["tables"].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &tables); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid tables JSON: %v", err)), nil
		}
	}

	renderer := s.renderer
	if len(tables) > 0 {
		renderer = tablerender.New(tablerender.WithTableFilter(tables...))
	}
	payload, err := renderer.BuildPayload(s.template, overrides)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleListFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type fieldInfo struct {
		ID      string `json:"id"`
		Label   string `json:"label,omitempty"`
		Source  string `json:"source"`
		Type    string `json:"type,omitempty"`
		Formula string `json:"formula,omitempty"`
	}
	fields := make([]fieldInfo, 0, len(s.template.Fields))
	for _, f := range s.template.Fields {
		fields = append(fields, fieldInfo{
			ID:      f.ID,
			Label:   f.Label,
			Source:  string(f.Source),
			Type:    string(f.Type),
			Formula: f.Formula,
		})
	}
	data, _ := json.Marshal(fields)
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleListTables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type tableInfo struct {
		ID    string `json:"id"`
		Title string `json:"title,omitempty"`
	}
	tables := make([]tableInfo, 0, len(s.template.Layout.Tables))
	for _, t := range s.template.Layout.Tables {
		tables = append(tables, tableInfo{ID: t.ID, Title: t.Title})
	}
	data, _ := json.Marshal(tables)
	return mcp.NewToolResultText(string(data)), nil
}
