package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	chipsnet "github.com/peterkuimelis/chipsmult/internal/net"
)

// RegisterTools adds all scoring tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startSessionTool(), handleStartSession)
	s.AddTool(evaluateHandTool(), handleEvaluateHand)
	s.AddTool(discardCardsTool(), handleDiscardCards)
	s.AddTool(upgradeCategoryTool(), handleUpgradeCategory)
	s.AddTool(addAgentTool(), handleAddAgent)
	s.AddTool(removeAgentTool(), handleRemoveAgent)
	s.AddTool(setBossTool(), handleSetBoss)
	s.AddTool(setStateTool(), handleSetState)
	s.AddTool(endRoundTool(), handleEndRound)
	s.AddTool(getStateTool(), handleGetState)
	s.AddTool(listAgentsTool(), handleListAgents)
	s.AddTool(listBossesTool(), handleListBosses)
}

// --- Tool definitions ---

func startSessionTool() mcp.Tool {
	return mcp.NewTool("start_session",
		mcp.WithDescription("Start a fresh scoring session, replacing the current one. "+
			"Optionally load a numbered loadout (agents, boss, levels) from the loadouts file."),
		mcp.WithNumber("loadout", mcp.Description("Loadout number (1-indexed from loadouts.yaml); 0 or omitted for an empty table")),
		mcp.WithNumber("seed", mcp.Description("Seed for the random source (lucky cards, glass, bosses)")),
	)
}

func evaluateHandTool() mcp.Tool {
	return mcp.NewTool("evaluate_hand",
		mcp.WithDescription("Classify and score a played hand of up to 5 cards. Cards use compact notation: "+
			"rank (2-9 T J Q K A) + suit (s c h d), then optional ':'-separated modifiers "+
			"(bonus mult wild glass steel stone gold lucky, foil holo poly negative, goldseal red blue purple, down). "+
			"Example: '7h 7s:glass Kd:red'. Returns the score breakdown, the logged events and the updated state."),
		mcp.WithString("cards", mcp.Required(), mcp.Description("Space-separated cards in compact notation")),
	)
}

func discardCardsTool() mcp.Tool {
	return mcp.NewTool("discard_cards",
		mcp.WithDescription("Discard cards from the held hand. Uses one discard."),
		mcp.WithString("indices", mcp.Required(), mcp.Description("Space-separated 0-based positions in the held hand (e.g. '0 2')")),
	)
}

func upgradeCategoryTool() mcp.Tool {
	return mcp.NewTool("upgrade_category",
		mcp.WithDescription("Raise the level of a hand category, e.g. 'Flush' or 'two pair'."),
		mcp.WithString("category", mcp.Required(), mcp.Description("Hand category name")),
		mcp.WithNumber("levels", mcp.Description("Number of levels to add (default 1)")),
	)
}

func addAgentTool() mcp.Tool {
	return mcp.NewTool("add_agent",
		mcp.WithDescription("Acquire an agent from the catalog into the rightmost slot. Use list_agents for names."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Catalog agent name, e.g. 'Green Joker'")),
	)
}

func removeAgentTool() mcp.Tool {
	return mcp.NewTool("remove_agent",
		mcp.WithDescription("Remove an acquired agent. Its counters are lost."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent id, or its 1-based slot number")),
	)
}

func setBossTool() mcp.Tool {
	return mcp.NewTool("set_boss",
		mcp.WithDescription("Start a new blind under a boss constraint. Use 'none' to clear it. Resets hands and discards."),
		mcp.WithString("boss", mcp.Required(), mcp.Description("Boss name, e.g. 'The Flint' or 'flint'")),
	)
}

func setStateTool() mcp.Tool {
	return mcp.NewTool("set_state",
		mcp.WithDescription("Overwrite parts of the game state that agents and bosses read. Omitted fields are unchanged."),
		mcp.WithNumber("money", mcp.Description("Money held")),
		mcp.WithNumber("hands", mcp.Description("Hands remaining this round")),
		mcp.WithNumber("discards", mcp.Description("Discards remaining this round")),
		mcp.WithString("held", mcp.Description("Cards held in hand, compact notation")),
		mcp.WithNumber("seed", mcp.Description("Reseed the random source")),
	)
}

func endRoundTool() mcp.Tool {
	return mcp.NewTool("end_round",
		mcp.WithDescription("End the current round and start the next one. Round-scaling agents update and may expire."),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current state: money, hands, discards, held cards, agents with counters, and the level table. Read-only."),
	)
}

func listAgentsTool() mcp.Tool {
	return mcp.NewTool("list_agents",
		mcp.WithDescription("List every agent in the catalog with rarity, cost and ability. Read-only."),
	)
}

func listBossesTool() mcp.Tool {
	return mcp.NewTool("list_bosses",
		mcp.WithDescription("List every boss constraint. Read-only."),
	)
}

// --- Tool handlers ---

func handleStartSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n := request.GetInt("loadout", 0)
	if n < 0 {
		return mcp.NewToolResultError("loadout must be >= 0"), nil
	}
	seed := defaultSeed
	if s := request.GetInt("seed", -1); s >= 0 {
		seed = uint64(s)
	}
	sess, err := NewSession(n, seed)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start session: %v", err), nil
	}
	replace(sess)
	return handle(chipsnet.ClientMessage{Type: chipsnet.MsgState})
}

func handleEvaluateHand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cards := request.GetString("cards", "")
	return handle(chipsnet.ClientMessage{Type: chipsnet.MsgEvaluate, Cards: cards})
}

func handleDiscardCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	indices, err := chipsnet.ParseIndices(request.GetString("indices", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid indices: %v", err), nil
	}
	return handle(chipsnet.ClientMessage{Type: chipsnet.MsgDiscard, Indices: indices})
}

func handleUpgradeCategory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	levels := request.GetInt("levels", 1)
	if levels < 1 {
		return mcp.NewToolResultErrorf("levels must be >= 1, got %d", levels), nil
	}
	return handle(chipsnet.ClientMessage{
		Type:     chipsnet.MsgUpgrade,
		Category: request.GetString("category", ""),
		Levels:   levels,
	})
}

func handleAddAgent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return handle(chipsnet.ClientMessage{Type: chipsnet.MsgAddAgent, Agent: request.GetString("name", "")})
}

func handleRemoveAgent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return handle(chipsnet.ClientMessage{Type: chipsnet.MsgRemoveAgent, Agent: request.GetString("agent", "")})
}

func handleSetBoss(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return handle(chipsnet.ClientMessage{Type: chipsnet.MsgSetBoss, Boss: request.GetString("boss", "")})
}

func handleSetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	msg := chipsnet.ClientMessage{Type: chipsnet.MsgSetState}
	intArg := func(name string) *int {
		if _, ok := args[name]; !ok {
			return nil
		}
		v := request.GetInt(name, 0)
		return &v
	}
	msg.Money = intArg("money")
	msg.Hands = intArg("hands")
	msg.Discards = intArg("discards")
	if _, ok := args["held"]; ok {
		held := request.GetString("held", "")
		msg.Held = &held
	}
	if s := intArg("seed"); s != nil {
		if *s < 0 {
			return mcp.NewToolResultError("seed must be >= 0"), nil
		}
		seed := uint64(*s)
		msg.Seed = &seed
	}
	return handle(msg)
}

func handleEndRound(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return handle(chipsnet.ClientMessage{Type: chipsnet.MsgEndRound})
}

func handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return handle(chipsnet.ClientMessage{Type: chipsnet.MsgState})
}

func handleListAgents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(respondJSON(chipsnet.CatalogAgents())), nil
}

func handleListBosses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(respondJSON(chipsnet.BossViews())), nil
}

// handle runs msg against the active session and wraps the reply.
func handle(msg chipsnet.ClientMessage) (*mcp.CallToolResult, error) {
	sess, err := current()
	if err != nil {
		return mcp.NewToolResultErrorf("No session: %v", err), nil
	}
	resp := sess.table.Handle(msg)
	if resp.Type == chipsnet.MsgError {
		return mcp.NewToolResultErrorf("%s (%s)", resp.Error, resp.Code), nil
	}
	return mcp.NewToolResultText(respondJSON(ToolResponse{Loadout: sess.loadout, ServerMessage: resp})), nil
}
