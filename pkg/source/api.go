package source

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hellenic-development/figma-tokens/pkg/figma"
)

// API reads design data from the Figma REST API.
type API struct {
	client  *figma.Client
	fileKey string
}

// NewAPI wraps a Figma client for one file.
func NewAPI(client *figma.Client, fileKey string) *API {
	return &API{client: client, fileKey: fileKey}
}

func (a *API) Describe() string {
	return "figma-api:" + a.fileKey
}

// Document fetches the file and validates the tree at the boundary.
func (a *API) Document(ctx context.Context) (*figma.Node, error) {
	resp, err := a.client.GetFile(ctx, a.fileKey)
	if err != nil {
		return nil, fmt.Errorf("fetch file: %w", err)
	}
	if err := figma.ValidateDocument(&resp.Document); err != nil {
		return nil, err
	}
	return &resp.Document, nil
}

// PublishedColors resolves published FILL styles to their solid paints. The
// style index only carries metadata, so the defining nodes are fetched in a
// second call and their first visible solid fill is taken as the style value.
func (a *API) PublishedColors(ctx context.Context) (map[string]figma.Paint, error) {
	styles, err := a.client.GetFileStyles(ctx, a.fileKey)
	if err != nil {
		return nil, fmt.Errorf("fetch styles: %w", err)
	}

	byNode := make(map[string]figma.StyleMetadata)
	nodeIDs := make([]string, 0, len(styles.Meta.Styles))
	for _, sm := range styles.Meta.Styles {
		if sm.StyleType != "FILL" || sm.NodeID == "" {
			continue
		}
		byNode[sm.NodeID] = sm
		nodeIDs = append(nodeIDs, sm.NodeID)
	}
	if len(nodeIDs) == 0 {
		return map[string]figma.Paint{}, nil
	}
	sort.Strings(nodeIDs)

	nodes, err := a.client.GetFileNodes(ctx, a.fileKey, nodeIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch style nodes: %w", err)
	}

	out := make(map[string]figma.Paint)
	for nodeID, sm := range byNode {
		nd, ok := nodes.Nodes[nodeID]
		if !ok {
			continue
		}
		for _, fill := range nd.Document.Fills {
			if fill.Type == "SOLID" && fill.Color != nil && fill.IsVisible() {
				out[sm.Name] = fill
				break
			}
		}
	}

	return out, nil
}

// Variables converts the file's local FLOAT and STRING variables to literal
// dimension strings. Only the variable's first mode (in sorted mode-ID order)
// is read; multi-mode theming is out of scope.
func (a *API) Variables(ctx context.Context) (map[string]string, error) {
	resp, err := a.client.GetLocalVariables(ctx, a.fileKey)
	if err != nil {
		return nil, fmt.Errorf("fetch variables: %w", err)
	}

	out := make(map[string]string)
	for _, v := range resp.Meta.Variables {
		if v.HiddenFromPub {
			continue
		}

		value, ok := firstModeValue(v.ValuesByMode)
		if !ok {
			continue
		}

		name := variableName(v.Name)
		if name == "" {
			continue
		}

		switch typed := value.(type) {
		case float64:
			out[name] = strconv.FormatFloat(typed, 'f', -1, 64) + "px"
		case string:
			out[name] = typed
		}
	}

	return out, nil
}

func firstModeValue(values map[string]any) (any, bool) {
	if len(values) == 0 {
		return nil, false
	}
	modes := make([]string, 0, len(values))
	for mode := range values {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	return values[modes[0]], true
}

// variableName reduces a grouped variable name ("spacing/sm") to its leaf.
func variableName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSpace(name)
}
