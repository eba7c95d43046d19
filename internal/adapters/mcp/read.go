package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"docsorter/internal/application"
	"docsorter/internal/application/commands"
	"docsorter/internal/domain"
	"docsorter/internal/ports"
)

const defaultPreviewChars = 2000

// RegisterReadTools adds the read-only sorter tools to the MCP server. None
// of them moves files or changes the rule file.
func RegisterReadTools(s *server.MCPServer, store ports.RuleStore, extractor ports.ContentExtractor) {
	s.AddTool(listRulesTool(), listRulesHandler(store))
	s.AddTool(classifyFileTool(), classifyFileHandler(store, extractor))
	s.AddTool(previewTextTool(), previewTextHandler(extractor))
}

// --- list_rules ---

func listRulesTool() mcp.Tool {
	return mcp.NewTool("list_rules",
		mcp.WithDescription("List the search rules in registry order, one per line in rule-file syntax (KEY | FOLDER | MODE)."),
		mcp.WithString("mode",
			mcp.Description("Only list rules of this mode: content or filename. Omit to list all."),
		),
	)
}

func listRulesHandler(store ports.RuleStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewListRulesCommand(store)
		if raw := req.GetString("mode", ""); raw != "" {
			mode, err := domain.ParseSearchMode(raw)
			if err != nil {
				return toolError(err)
			}
			cmd.Mode = &mode
		}

		rules, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(rules, domain.FormatRuleLine)
	}
}

// --- classify_file ---

func classifyFileTool() mcp.Tool {
	return mcp.NewTool("classify_file",
		mcp.WithDescription("Report which folder a document would be sorted into. Filename rules are tried first, then content rules. Nothing is moved."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path of the document (.xlsx, .xls, .pdf, .docx, .doc)"),
		),
	)
}

func classifyFileHandler(store ports.RuleStore, extractor ports.ContentExtractor) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		results, err := commands.NewCheckFilesCommand(store, extractor, nil, []string{path}).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(results, formatCheck)
	}
}

// --- preview_text ---

func previewTextTool() mcp.Tool {
	return mcp.NewTool("preview_text",
		mcp.WithDescription("Return the searchable text of a spreadsheet or PDF, as the content rules see it."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path of the document"),
		),
		mcp.WithNumber("max_chars",
			mcp.Description(fmt.Sprintf("Maximum characters returned (default %d)", defaultPreviewChars)),
		),
	)
}

func previewTextHandler(extractor ports.ContentExtractor) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}
		maxChars := req.GetInt("max_chars", defaultPreviewChars)
		if maxChars <= 0 {
			maxChars = defaultPreviewChars
		}

		text, err := application.NewPreviewer(extractor).Text(ctx, path, maxChars)
		if err != nil {
			return toolError(err)
		}
		if text == "" {
			return mcp.NewToolResultText("No text found."), nil
		}
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

func formatCheck(r commands.CheckResult) string {
	if !r.Matched {
		return fmt.Sprintf("%s  no match (%s)", r.Path, r.Format)
	}
	return fmt.Sprintf("%s  -> %s  (key %q, %s rule)", r.Path, r.Match.Folder, r.Match.Key, r.Match.Mode)
}
