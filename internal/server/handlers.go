package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"codescope/internal/analyzer"
	"codescope/internal/chunk"
	"codescope/internal/conversation"
	"codescope/internal/walker"
)

func (s *Server) handleAnalyzeFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}
	force := req.GetBool("force", false)

	rec, err := s.mgr.Analyze(path, force)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analyze failed: %v", err)), nil
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding record: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleAnalyzeProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := req.GetString("root", "")
	if root == "" {
		return mcp.NewToolResultError("root is required"), nil
	}

	files, err := walker.Walk(root, walker.Options{
		Exclude:     s.cfg.Analysis.Exclude,
		MaxFileSize: s.cfg.Analysis.MaxFileSize,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scanning project: %v", err)), nil
	}

	analyzed := 0
	var failures []string
	for _, f := range files {
		if _, err := s.mgr.Analyze(f, false); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", f, err))
			continue
		}
		analyzed++
	}

	var sb strings.Builder
	stats := s.mgr.Stats()
	fmt.Fprintf(&sb, "Analyzed %d of %d files under %s.\n", analyzed, len(files), root)
	fmt.Fprintf(&sb, "Index now holds %d symbols and %d relationships.\n", stats.TotalSymbols, stats.TotalRelationships)
	for _, f := range failures {
		fmt.Fprintf(&sb, "failed: %s\n", f)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleFileRelationships(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	edges := s.mgr.RelationshipsOf(path)
	if len(edges) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No relationships recorded for %s. Analyze it first with analyze_file.", path)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Relationships of %s (%d)\n\n", path, len(edges))
	for _, e := range edges {
		fmt.Fprintf(&sb, "- %s %s %s", e.From, e.Kind, e.To)
		if e.Detail != "" {
			fmt.Fprintf(&sb, " (%s)", e.Detail)
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleFileDependents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	deps := s.mgr.DependentsOf(path)
	if len(deps) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No analyzed file imports %s.", path)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Files importing %s (%d)\n\n", path, len(deps))
	for _, d := range deps {
		fmt.Fprintf(&sb, "- %s\n", d)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleFindSymbol(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	syms := s.mgr.FindSymbol(name)
	if len(syms) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No symbol matching %q in the analyzed files.", name)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Symbols matching %q (%d)\n\n", name, len(syms))
	for _, sym := range syms {
		fmt.Fprintf(&sb, "- `%s` — %s (line %d)\n", sym.Key, sym.Entity.EntityName(), sym.Entity.DeclLine())
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleCallsTo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}
	return mcp.NewToolResultText(formatCallSites(fmt.Sprintf("Calls to %q", name), s.mgr.CallsTo(name))), nil
}

func (s *Server) handleCallsFrom(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	method := req.GetString("method", "")
	if method == "" {
		return mcp.NewToolResultError("method is required"), nil
	}
	class := req.GetString("class", "")

	label := method
	if class != "" {
		label = class + "::" + method
	}
	return mcp.NewToolResultText(formatCallSites(fmt.Sprintf("Calls from %s", label), s.mgr.CallsFrom(class, method))), nil
}

func (s *Server) handleCompareSignatures(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	callingFile := req.GetString("calling_file", "")
	method := req.GetString("method", "")
	if callingFile == "" || method == "" {
		return mcp.NewToolResultError("calling_file and method are required"), nil
	}
	class := req.GetString("class", "")

	report := s.mgr.CompareSignatures(callingFile, class, method)

	var sb strings.Builder
	if report.Match {
		sb.WriteString("Signatures match.\n")
	} else {
		sb.WriteString("Signature mismatch.\n")
	}
	if report.ExpectedSignature != "" {
		fmt.Fprintf(&sb, "Expected: %s\n", report.ExpectedSignature)
	}
	for _, issue := range report.Issues {
		fmt.Fprintf(&sb, "- %s\n", issue)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleCacheStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats := s.mgr.Stats()
	out, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding stats: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleEvictCache(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		s.mgr.EvictAll()
		return mcp.NewToolResultText("Evicted all cached analysis."), nil
	}
	s.mgr.Evict(path)
	return mcp.NewToolResultText(fmt.Sprintf("Evicted %s.", path)), nil
}

func (s *Server) handleAskModel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	question := req.GetString("question", "")
	if path == "" || question == "" {
		return mcp.NewToolResultError("path and question are required"), nil
	}
	model := req.GetString("model", s.cfg.Ollama.Model)

	rec, err := s.mgr.Analyze(path, false)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analyze failed: %v", err)), nil
	}

	chunks := chunk.Split(rec.Content, s.cfg.Context.ChunkTokens)
	conv := conversation.Build(conversation.Stages{
		Context: fmt.Sprintf(
			"You are a code analysis assistant. The user will send you the content of %s, a %s file with %d lines. Answer questions about it precisely, citing line numbers where possible.",
			rec.Path, rec.Language, len(rec.Lines)),
		Instruction: question,
	}, chunks)

	reqID := uuid.NewString()
	s.log.Info("asking model",
		zap.String("request_id", reqID),
		zap.String("model", model),
		zap.String("path", rec.Path),
		zap.Int("chunks", len(chunks)))

	reply, err := s.chat.Chat(ctx, model, conv.Messages())
	if err != nil {
		s.log.Warn("model request failed", zap.String("request_id", reqID), zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("model request failed: %v", err)), nil
	}
	return mcp.NewToolResultText(reply), nil
}

func (s *Server) handleListModels(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	models, err := s.chat.ListModels(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing models failed: %v", err)), nil
	}
	if len(models) == 0 {
		return mcp.NewToolResultText("No models installed. Pull one with 'ollama pull <name>'."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Available models (%d)\n\n", len(models))
	for _, m := range models {
		fmt.Fprintf(&sb, "- **%s** (%d bytes, digest %s)\n", m.Name, m.Size, m.Digest)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatCallSites(title string, calls []analyzer.CallSite) string {
	if len(calls) == 0 {
		return title + ": none recorded."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s (%d)\n\n", title, len(calls))
	for _, c := range calls {
		fmt.Fprintf(&sb, "- line %d: %s -> %s", c.Line, c.From, c.To)
		if c.Args != "" {
			fmt.Fprintf(&sb, " with args (%s)", c.Args)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
