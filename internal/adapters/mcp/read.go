package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"scriptorium/internal/app"
	"scriptorium/internal/application/commands"
	"scriptorium/internal/application/state"
	"scriptorium/internal/domain"
)

// RegisterReadTools adds the reading and progress lookup tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, rt *app.Runtime) {
	s.AddTool(readChapterTool(), readChapterHandler(rt))
	s.AddTool(searchBooksTool(), searchBooksHandler())
	s.AddTool(lookupStrongTool(), lookupStrongHandler(rt))
	s.AddTool(listPlansTool(), listPlansHandler(rt))
	s.AddTool(planDayTool(), planDayHandler(rt))
	s.AddTool(planProgressTool(), planProgressHandler(rt))
	s.AddTool(trackerProgressTool(), trackerProgressHandler(rt))
	s.AddTool(highlightsTool(), highlightsHandler(rt))
	s.AddTool(preferencesTool(), preferencesHandler(rt))
}

// --- read_chapter ---

func readChapterTool() mcp.Tool {
	return mcp.NewTool("read_chapter",
		mcp.WithDescription("Read a chapter. Missing arguments fall back to the last position read in the mode, then Genesis 1. The position is remembered."),
		mcp.WithString("mode",
			mcp.Description("Reading mode: bible, commentary or interlinear"),
			mcp.Enum("bible", "commentary", "interlinear"),
		),
		mcp.WithString("book",
			mcp.Description("Book code (e.g. gen, mat, 1co)"),
		),
		mcp.WithNumber("chapter",
			mcp.Description("Chapter number"),
		),
		mcp.WithString("verses",
			mcp.Description("Verse selection (e.g. 3, 1-5, 1,4,7-9)"),
		),
	)
}

func readChapterHandler(rt *app.Runtime) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mode, err := domain.ParseMode(req.GetString("mode", domain.ModeBible.String()))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewReadChapterCommand(rt.Library, rt.Stores, mode,
			req.GetString("book", ""), req.GetInt("chapter", 0), req.GetString("verses", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s %d (%s)\n\n", result.BookName, result.Position.Chapter, mode)
		highlighted := make(map[int]bool, len(result.Highlighted))
		for _, v := range result.Highlighted {
			highlighted[v] = true
		}
		switch mode {
		case domain.ModeCommentary:
			if result.Commentary.Intro != "" {
				fmt.Fprintf(&sb, "%s\n\n", result.Commentary.Intro)
			}
			for _, n := range result.Commentary.Notes {
				fmt.Fprintf(&sb, "%d  %s\n", n.Verse, n.Text)
			}
		case domain.ModeInterlinear:
			for _, v := range result.Interlinear {
				fmt.Fprintf(&sb, "%d ", v.Number)
				for _, w := range v.Words {
					fmt.Fprintf(&sb, " %s [%s %s]", w.Text, w.Strong, w.Gloss)
				}
				sb.WriteByte('\n')
			}
		default:
			for _, v := range result.Verses {
				mark := ""
				if highlighted[v.Number] {
					mark = " *"
				}
				fmt.Fprintf(&sb, "%d%s  %s\n", v.Number, mark, v.Text)
			}
		}
		return withPersistWarning(sb.String(), result.Persist), nil
	}
}

// --- search_books ---

func searchBooksTool() mcp.Tool {
	return mcp.NewTool("search_books",
		mcp.WithDescription("Find Bible books by code or name with fuzzy matching."),
		mcp.WithString("query",
			mcp.Description("Search query, at least two characters"),
			mcp.Required(),
		),
	)
}

func searchBooksHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}
		matches, err := commands.NewSearchBooksCommand(query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(matches, func(m commands.BookMatch) string {
			return fmt.Sprintf("%s  %s  %d chapters", m.Code, m.Name, m.Chapters)
		})
	}
}

// --- lookup_strong ---

func lookupStrongTool() mcp.Tool {
	return mcp.NewTool("lookup_strong",
		mcp.WithDescription("Look up a Strong's dictionary entry by number, or search the dictionary."),
		mcp.WithString("number",
			mcp.Description("Strong's number (e.g. H7225, G3056)"),
		),
		mcp.WithString("query",
			mcp.Description("Search the lemma, transliteration and definition instead"),
		),
	)
}

func lookupStrongHandler(rt *app.Runtime) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if number := req.GetString("number", ""); number != "" {
			entry, err := rt.Library.StrongEntry(ctx, number)
			if err != nil {
				return toolError(err)
			}
			return mcp.NewToolResultText(formatStrong(entry)), nil
		}

		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("number or query is required"))
		}
		dict, err := rt.Library.Strong(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(dict.Search(query, 20), func(e domain.StrongEntry) string {
			return fmt.Sprintf("%s  %s  %s", e.Number, e.Lemma, e.Definition)
		})
	}
}

func formatStrong(e domain.StrongEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s", e.Number, e.Lemma)
	if e.Translit != "" {
		fmt.Fprintf(&sb, " (%s)", e.Translit)
	}
	fmt.Fprintf(&sb, "\n%s\n", e.Definition)
	if e.KJV != "" {
		fmt.Fprintf(&sb, "KJV: %s\n", e.KJV)
	}
	return sb.String()
}

// --- list_plans ---

func listPlansTool() mcp.Tool {
	return mcp.NewTool("list_plans",
		mcp.WithDescription("List reading plans with their progress. Favorite plans are marked with *."),
		mcp.WithString("search",
			mcp.Description("Filter by title, description or ID"),
		),
		mcp.WithString("type",
			mcp.Description("Filter by plan type"),
		),
	)
}

func listPlansHandler(rt *app.Runtime) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		plans, err := rt.Library.SearchPlans(ctx, req.GetString("search", ""), req.GetString("type", ""))
		if err != nil {
			return toolError(err)
		}
		return formatEntities(plans, func(p domain.Plan) string {
			mark := ""
			if rt.Stores.FavoritePlans.Has(p.ID) {
				mark = " *"
			}
			pct := rt.Plans.Progress(p.ID).Percent(p.Days)
			return fmt.Sprintf("%s%s  %s  %d days  %d%%", p.ID, mark, p.Title, p.Days, pct)
		})
	}
}

// --- plan_day ---

func planDayTool() mcp.Tool {
	return mcp.NewTool("plan_day",
		mcp.WithDescription("Show the readings of a plan day with their completion state and reading keys."),
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

func planDayHandler(rt *app.Runtime) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		planID := req.GetString("plan_id", "")
		dayNum := req.GetInt("day", 0)
		day, err := rt.Library.PlanDay(ctx, planID, dayNum)
		if err != nil {
			return toolError(err)
		}

		p := rt.Plans.Progress(planID)
		var sb strings.Builder
		fmt.Fprintf(&sb, "Day %d", day.Day)
		if day.Title != "" {
			fmt.Fprintf(&sb, ": %s", day.Title)
		}
		if p.IsDayComplete(day.Day) {
			sb.WriteString(" (complete)")
		}
		sb.WriteByte('\n')
		for _, r := range day.Bible {
			fmt.Fprintf(&sb, "%s %s  %s\n", checkbox(p.IsReadingComplete(day.Day, r.Key())), r.Key(), r.Label())
		}
		for _, r := range day.Egw {
			fmt.Fprintf(&sb, "%s %s  %s\n", checkbox(p.IsReadingComplete(day.Day, r.Key())), r.Key(), r.Title)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// --- plan_progress ---

func planProgressTool() mcp.Tool {
	return mcp.NewTool("plan_progress",
		mcp.WithDescription("Show the completed days of a reading plan."),
		mcp.WithString("plan_id",
			mcp.Description("Plan ID"),
			mcp.Required(),
		),
	)
}

func planProgressHandler(rt *app.Runtime) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		plan, err := rt.Library.Plan(ctx, req.GetString("plan_id", ""))
		if err != nil {
			return toolError(err)
		}
		p := rt.Plans.Progress(plan.ID)
		text := fmt.Sprintf("%s: %d of %d days complete (%d%%)\nCompleted days: %v\n",
			plan.Title, p.CompletedCount(), plan.Days, p.Percent(plan.Days), p.CompletedDays)
		return mcp.NewToolResultText(text), nil
	}
}

// --- tracker_progress ---

func trackerProgressTool() mcp.Tool {
	return mcp.NewTool("tracker_progress",
		mcp.WithDescription("Show Bible tracker progress. With a book, lists its read chapters."),
		mcp.WithString("book",
			mcp.Description("Book code"),
		),
	)
}

func trackerProgressHandler(rt *app.Runtime) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		progress := rt.Tracker.Progress()
		if code := req.GetString("book", ""); code != "" {
			book, ok := domain.LookupBook(code)
			if !ok {
				return toolError(fmt.Errorf("unknown book: %s", code))
			}
			text := fmt.Sprintf("%s: %d%% (%d of %d chapters)\nRead: %v\n",
				book.Name, progress.BookProgress(book.Code), progress.ReadCount(book), book.Chapters, progress[book.Code])
			return mcp.NewToolResultText(text), nil
		}

		text := fmt.Sprintf("Bible: %d%% (%d chapters read)\nOld Testament: %.1f%%\nNew Testament: %.1f%%\n",
			progress.TotalProgress(), progress.ReadChapters(),
			progress.SectionProgress(domain.OldTestament), progress.SectionProgress(domain.NewTestament))
		return mcp.NewToolResultText(text), nil
	}
}

// --- highlights ---

func highlightsTool() mcp.Tool {
	return mcp.NewTool("highlights",
		mcp.WithDescription("List highlighted verse IDs, optionally limited to a book."),
		mcp.WithString("book",
			mcp.Description("Book code"),
		),
	)
}

func highlightsHandler(rt *app.Runtime) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		prefix := ""
		if code := req.GetString("book", ""); code != "" {
			book, ok := domain.LookupBook(code)
			if !ok {
				return toolError(fmt.Errorf("unknown book: %s", code))
			}
			prefix = book.Code + "-"
		}
		var ids []string
		for _, id := range rt.Stores.Highlights.IDs() {
			if strings.HasPrefix(id, prefix) {
				ids = append(ids, id)
			}
		}
		return formatEntities(ids, func(id string) string { return id })
	}
}

// --- preferences ---

func preferencesTool() mcp.Tool {
	return mcp.NewTool("preferences",
		mcp.WithDescription("Show the reader preferences."),
	)
}

func preferencesHandler(rt *app.Runtime) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p := rt.Stores.Preferences.Get()
		text := fmt.Sprintf("theme: %s\nfontSize: %d\nlineHeight: %.2f\nletterSpacing: %.2f\nwordSpacing: %.2f\nfontFamily: %s\nrulerEnabled: %t\nspeechRate: %.2f\nskipVerses: %t\nskipFootnotes: %t\n",
			p.Theme, p.FontSize, p.LineHeight, p.LetterSpacing, p.WordSpacing, p.FontFamily,
			p.RulerEnabled, p.SpeechRate, p.SkipVerses, p.SkipFootnotes)
		return mcp.NewToolResultText(text), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// withPersistWarning reports a change that is kept for the session only
func withPersistWarning(message string, res state.PersistResult) *mcp.CallToolResult {
	if !res.OK() {
		message += fmt.Sprintf("\nwarning: not saved: %v", res.Err)
	}
	return mcp.NewToolResultText(message)
}
