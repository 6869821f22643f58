package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"scriptorium/internal/app"
	"scriptorium/internal/application/commands"
	"scriptorium/internal/application/progress"
)

// RegisterWriteTools adds the tools that change highlights, progress and preferences.
func RegisterWriteTools(s *server.MCPServer, rt *app.Runtime) {
	s.AddTool(toggleHighlightTool(), toggleHighlightHandler(rt))
	s.AddTool(togglePlanDayTool(), togglePlanDayHandler(rt))
	s.AddTool(togglePlanReadingTool(), togglePlanReadingHandler(rt))
	s.AddTool(toggleFavoritePlanTool(), toggleFavoritePlanHandler(rt))
	s.AddTool(toggleChapterTool(), toggleChapterHandler(rt))
	s.AddTool(setPreferenceTool(), setPreferenceHandler(rt))
}

// --- toggle_highlight ---

func toggleHighlightTool() mcp.Tool {
	return mcp.NewTool("toggle_highlight",
		mcp.WithDescription("Highlight a verse, or remove its highlight."),
		mcp.WithString("verse_id",
			mcp.Description("Verse ID in book-chapter-verse form (e.g. jhn-3-16)"),
			mcp.Required(),
		),
	)
}

func toggleHighlightHandler(rt *app.Runtime) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewToggleHighlightCommand(rt.Stores.Highlights, req.GetString("verse_id", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return withPersistWarning(result.Message, result.Persist), nil
	}
}

// --- toggle_plan_day ---

func togglePlanDayTool() mcp.Tool {
	return mcp.NewTool("toggle_plan_day",
		mcp.WithDescription("Mark every reading of a plan day done, or clear the day when it is already complete."),
		mcp.WithString("plan_id",
			mcp.Description("Plan ID"),
			mcp.Required(),
		),
		mcp.WithNumber("day",
			mcp.Description("Day number"),
			mcp.Required(),
		),
	)
}

func togglePlanDayHandler(rt *app.Runtime) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewTogglePlanDayCommand(rt.Plans, rt.Library, req.GetString("plan_id", ""), req.GetInt("day", 0))
		out, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return outcomeResult(out), nil
	}
}

// --- toggle_plan_reading ---

func togglePlanReadingTool() mcp.Tool {
	return mcp.NewTool("toggle_plan_reading",
		mcp.WithDescription("Mark one reading of a plan day done or not done. The day completes when all its readings are done."),
		mcp.WithString("plan_id",
			mcp.Description("Plan ID"),
			mcp.Required(),
		),
		mcp.WithNumber("day",
			mcp.Description("Day number"),
			mcp.Required(),
		),
		mcp.WithString("reading_key",
			mcp.Description("Reading key as listed by plan_day (e.g. gen-5, egw-PP 1)"),
			mcp.Required(),
		),
	)
}

func togglePlanReadingHandler(rt *app.Runtime) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewTogglePlanReadingCommand(rt.Plans, rt.Library,
			req.GetString("plan_id", ""), req.GetInt("day", 0), req.GetString("reading_key", ""))
		out, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return outcomeResult(out), nil
	}
}

func outcomeResult(out *progress.Outcome) *mcp.CallToolResult {
	if !out.Changed {
		return mcp.NewToolResultText("Nothing changed.")
	}
	return withPersistWarning(out.Message, out.Persist)
}

// --- toggle_favorite_plan ---

func toggleFavoritePlanTool() mcp.Tool {
	return mcp.NewTool("toggle_favorite_plan",
		mcp.WithDescription("Add a plan to the favorites, or remove it."),
		mcp.WithString("plan_id",
			mcp.Description("Plan ID"),
			mcp.Required(),
		),
	)
}

func toggleFavoritePlanHandler(rt *app.Runtime) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewTogglePlanFlagCommand(rt.Stores.FavoritePlans, rt.Library, "favorites", req.GetString("plan_id", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return withPersistWarning(result.Message, result.Persist), nil
	}
}

// --- toggle_chapter ---

func toggleChapterTool() mcp.Tool {
	return mcp.NewTool("toggle_chapter",
		mcp.WithDescription("Mark a chapter read or unread in the Bible tracker."),
		mcp.WithString("book",
			mcp.Description("Book code"),
			mcp.Required(),
		),
		mcp.WithNumber("chapter",
			mcp.Description("Chapter number"),
			mcp.Required(),
		),
	)
}

func toggleChapterHandler(rt *app.Runtime) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewToggleChapterCommand(rt.Tracker, req.GetString("book", ""), req.GetInt("chapter", 0))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return withPersistWarning(result.Message, result.Persist), nil
	}
}

// --- set_preference ---

func setPreferenceTool() mcp.Tool {
	return mcp.NewTool("set_preference",
		mcp.WithDescription(fmt.Sprintf("Change one reader preference. Names: %v. Out-of-range numbers are clamped.", commands.PreferenceNames)),
		mcp.WithString("name",
			mcp.Description("Preference name"),
			mcp.Required(),
		),
		mcp.WithString("value",
			mcp.Description("New value"),
			mcp.Required(),
		),
	)
}

func setPreferenceHandler(rt *app.Runtime) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSetPreferenceCommand(rt.Stores.Preferences, req.GetString("name", ""), req.GetString("value", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return withPersistWarning(result.Message, result.Persist), nil
	}
}
