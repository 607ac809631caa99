package source

import (
	"context"
	"encoding/json"
	"fmt"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hellenic-development/figma-tokens/pkg/figma"
)

// Tool names the MCP server is expected to expose. The data shapes behind
// them match the REST API payloads; the protocol itself is the SDK's concern.
const (
	toolGetDocument        = "get_document"
	toolGetPublishedStyles = "get_published_styles"
	toolGetVariables       = "get_variables"
)

// MCP reads design data from a local Model Context Protocol server spawned
// over stdio, the alternate source for editors that expose the current
// selection without a REST round trip.
type MCP struct {
	client  *mcpclient.Client
	command string
}

// NewMCP spawns the MCP server command, performs the initialize handshake,
// and returns a ready source. Close must be called when done.
func NewMCP(ctx context.Context, command string, args ...string) (*MCP, error) {
	c, err := mcpclient.NewStdioMCPClient(command, nil, args...)
	if err != nil {
		return nil, fmt.Errorf("start MCP server %q: %w", command, err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "figma-tokens", Version: "0.3.0"}

	if _, err := c.Initialize(ctx, initReq); err != nil {
		c.Close()
		return nil, fmt.Errorf("initialize MCP server %q: %w", command, err)
	}

	return &MCP{client: c, command: command}, nil
}

// Close shuts down the spawned server.
func (m *MCP) Close() error {
	return m.client.Close()
}

func (m *MCP) Describe() string {
	return "mcp:" + m.command
}

func (m *MCP) Document(ctx context.Context) (*figma.Node, error) {
	var payload struct {
		Document figma.Node `json:"document"`
	}
	if err := m.callTool(ctx, toolGetDocument, &payload); err != nil {
		return nil, err
	}
	if err := figma.ValidateDocument(&payload.Document); err != nil {
		return nil, err
	}
	return &payload.Document, nil
}

func (m *MCP) PublishedColors(ctx context.Context) (map[string]figma.Paint, error) {
	out := make(map[string]figma.Paint)
	if err := m.callTool(ctx, toolGetPublishedStyles, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MCP) Variables(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string)
	if err := m.callTool(ctx, toolGetVariables, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// callTool invokes a tool and decodes its first text content block as JSON.
func (m *MCP) callTool(ctx context.Context, name string, out any) error {
	req := mcp.CallToolRequest{}
	req.Params.Name = name

	res, err := m.client.CallTool(ctx, req)
	if err != nil {
		return fmt.Errorf("MCP tool %s: %w", name, err)
	}
	if res.IsError {
		return fmt.Errorf("MCP tool %s reported an error: %s", name, firstText(res))
	}

	text := firstText(res)
	if text == "" {
		return fmt.Errorf("MCP tool %s returned no text content", name)
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("MCP tool %s returned invalid JSON: %w", name, err)
	}

	return nil
}

func firstText(res *mcp.CallToolResult) string {
	for _, content := range res.Content {
		if tc, ok := mcp.AsTextContent(content); ok {
			return tc.Text
		}
	}
	return ""
}
