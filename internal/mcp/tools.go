package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/arcanaland/cardpool/internal/card"
	"github.com/arcanaland/cardpool/internal/deck"
	"github.com/arcanaland/cardpool/internal/pool"
	"github.com/arcanaland/cardpool/internal/repository"
	"github.com/arcanaland/cardpool/internal/set"
)

// maxPoolSize bounds the pools a tool call may ask for.
const maxPoolSize = 1000

// Tools serves pool generation and set lookups to MCP clients.
type Tools struct {
	Sets   *set.SetRegistry
	Lookup repository.Lookup
}

// Register adds all tools to the MCP server.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(generatePoolTool(), t.handleGeneratePool)
	s.AddTool(findSetTool(), t.handleFindSet)
	s.AddTool(listSetsTool(), t.handleListSets)
}

// --- Tool definitions ---

func generatePoolTool() mcp.Tool {
	return mcp.NewTool("generate_pool",
		mcp.WithDescription("Draw a random pool of cards. Cards are drawn uniformly with replacement, "+
			"so the same card can appear several times. Returns the pool grouped by card with counts."),
		mcp.WithNumber("size", mcp.Required(), mcp.Description("Number of cards to draw")),
		mcp.WithString("colors", mcp.Description("Allowed colors as symbols, e.g. 'WU'. Omit to allow every color; "+
			"an empty string allows only colorless cards. A card passes only if all of its colors are allowed.")),
		mcp.WithBoolean("only_basic_lands", mcp.Description("Exclude lands that are not basic")),
		mcp.WithString("sets", mcp.Description("Comma separated set codes to draw from, e.g. 'M10,ZEN'. Omit for all sets")),
		mcp.WithString("seed", mcp.Description("Seed for a reproducible pool, as the decimal string a previous "+
			"call reported. Omit or \"0\" for a random seed")),
	)
}

func findSetTool() mcp.Tool {
	return mcp.NewTool("find_set",
		mcp.WithDescription("Look up a card set by its code."),
		mcp.WithString("code", mcp.Required(), mcp.Description("Set code, e.g. 'M10'")),
	)
}

func listSetsTool() mcp.Tool {
	return mcp.NewTool("list_sets",
		mcp.WithDescription("List the registered card sets ordered by release date."),
		mcp.WithBoolean("custom_only", mcp.Description("Only list custom (non-canonical) sets")),
	)
}

// --- Responses ---

// SetResponse describes one set.
type SetResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	ReleaseDate string `json:"release_date,omitempty"`
	Block       string `json:"block,omitempty"`
	Custom      bool   `json:"custom"`
}

// PoolResponse is the result of generate_pool.
type PoolResponse struct {
	Seed   string           `json:"seed"`
	Size   int              `json:"size"`
	Colors string           `json:"colors"`
	Cards  []deck.CardEntry `json:"cards"`
}

func newSetResponse(d set.Descriptor) SetResponse {
	resp := SetResponse{
		Code:   d.Code,
		Name:   d.Name,
		Type:   string(d.Type),
		Block:  d.BlockName,
		Custom: d.IsCustom(),
	}
	if !d.ReleaseDate.IsZero() {
		resp.ReleaseDate = d.ReleaseDate.Format(set.ReleaseDateLayout)
	}
	return resp
}

// maxExactSeed is the largest integer a JSON number carries without loss
const maxExactSeed = 1 << 53

// parseSeed reads the seed argument. Seeds are 64-bit, so they travel as
// decimal strings; plain numbers are accepted while they are exact.
func parseSeed(raw any) (uint64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, nil
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return 0, nil
		}
		return strconv.ParseUint(v, 10, 64)
	case float64:
		if v < 0 || v > maxExactSeed || v != math.Trunc(v) {
			return 0, fmt.Errorf("%v is not exact, pass the seed as a string", v)
		}
		return uint64(v), nil
	default:
		return 0, fmt.Errorf("unsupported type %T", raw)
	}
}

// respondJSON marshals v to a JSON string.
func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}

// --- Tool handlers ---

func (t *Tools) handleGeneratePool(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	size := request.GetInt("size", -1)
	if size < 0 || size > maxPoolSize {
		return mcp.NewToolResultErrorf("size must be between 0 and %d", maxPoolSize), nil
	}

	req := pool.Request{
		Size:           size,
		OnlyBasicLands: request.GetBool("only_basic_lands", false),
	}

	if raw, ok := request.GetArguments()["colors"]; ok && raw != nil {
		symbols, err := card.ParseColorSymbols(request.GetString("colors", ""))
		if err != nil {
			return mcp.NewToolResultErrorf("Invalid colors: %v", err), nil
		}
		req.Colors = pool.AllowColors(symbols...)
	}

	for _, code := range strings.Split(request.GetString("sets", ""), ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		if _, ok := t.Sets.Lookup(code); !ok {
			return mcp.NewToolResultErrorf("Unknown set code %q", code), nil
		}
		req.SetCodes = append(req.SetCodes, code)
	}

	seed, err := parseSeed(request.GetArguments()["seed"])
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid seed: %v", err), nil
	}
	if seed == 0 {
		if seed, err = pool.NewSeed(); err != nil {
			return mcp.NewToolResultErrorf("Failed to seed pool: %v", err), nil
		}
	}

	cards, err := pool.New(t.Lookup, pool.WithSeed(seed)).Generate(ctx, req)
	if errors.Is(err, pool.ErrEmptyCandidatePool) {
		return mcp.NewToolResultError("No cards match these constraints. Allow more colors or sets and try again."), nil
	}
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to generate pool: %v", err), nil
	}

	resp := PoolResponse{
		Seed:   strconv.FormatUint(seed, 10),
		Size:   len(cards),
		Colors: req.Colors.String(),
		Cards:  deck.FromPool("pool", cards).Cards,
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleFindSet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code := strings.ToUpper(strings.TrimSpace(request.GetString("code", "")))
	if code == "" {
		return mcp.NewToolResultError("code is required"), nil
	}

	d, ok := t.Sets.Lookup(code)
	if !ok {
		return mcp.NewToolResultErrorf("Set %s not found", code), nil
	}
	return mcp.NewToolResultText(respondJSON(newSetResponse(d))), nil
}

func (t *Tools) handleListSets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	customOnly := request.GetBool("custom_only", false)

	sets := []SetResponse{}
	for _, d := range t.Sets.Descriptors() {
		if customOnly && !t.Sets.IsCustom(d.Code) {
			continue
		}
		sets = append(sets, newSetResponse(d))
	}
	return mcp.NewToolResultText(respondJSON(sets)), nil
}
