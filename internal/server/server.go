// Package server exposes the analysis cache over MCP stdio so editor
// agents can query structural facts and offload questions to the local
// model.
package server

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"codescope/internal/config"
	"codescope/internal/index"
	"codescope/internal/provider"
)

// ChatProvider is the slice of the model client the server needs.
type ChatProvider interface {
	provider.ChatClient
	provider.ModelLister
}

// Server wires the index manager and the model client into MCP tools.
type Server struct {
	mgr  *index.Manager
	cfg  *config.Config
	chat ChatProvider
	log  *zap.Logger
}

// New creates a Server. A nil logger is replaced with a no-op one.
func New(mgr *index.Manager, cfg *config.Config, chat ChatProvider, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{mgr: mgr, cfg: cfg, chat: chat, log: log}
}

// Serve registers all tools and blocks serving MCP over stdio.
func (s *Server) Serve() error {
	m := s.buildMCPServer()
	s.log.Info("serving MCP over stdio")
	return mcpserver.ServeStdio(m)
}

func (s *Server) buildMCPServer() *mcpserver.MCPServer {
	m := mcpserver.NewMCPServer("codescope", "1.0.0", mcpserver.WithToolCapabilities(false))

	m.AddTool(analyzeFileTool(), s.handleAnalyzeFile)
	m.AddTool(analyzeProjectTool(), s.handleAnalyzeProject)
	m.AddTool(fileRelationshipsTool(), s.handleFileRelationships)
	m.AddTool(fileDependentsTool(), s.handleFileDependents)
	m.AddTool(findSymbolTool(), s.handleFindSymbol)
	m.AddTool(callsToTool(), s.handleCallsTo)
	m.AddTool(callsFromTool(), s.handleCallsFrom)
	m.AddTool(compareSignaturesTool(), s.handleCompareSignatures)
	m.AddTool(cacheStatsTool(), s.handleCacheStats)
	m.AddTool(evictCacheTool(), s.handleEvictCache)
	m.AddTool(askModelTool(), s.handleAskModel)
	m.AddTool(listModelsTool(), s.handleListModels)

	return m
}

var readOnlyAnnotation = mcp.ToolAnnotation{
	ReadOnlyHint:    mcp.ToBoolPtr(true),
	DestructiveHint: mcp.ToBoolPtr(false),
	IdempotentHint:  mcp.ToBoolPtr(true),
	OpenWorldHint:   mcp.ToBoolPtr(false),
}

func analyzeFileTool() mcp.Tool {
	return mcp.NewTool("analyze_file",
		mcp.WithDescription("Analyze a source file and return its structural facts: imports, exports, classes, functions, methods, variables, and call sites. Results are cached by modification time."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute or relative path of the file to analyze"),
		),
		mcp.WithBoolean("force",
			mcp.Description("Reparse even if the cached record is still fresh"),
		),
	)
}

func analyzeProjectTool() mcp.Tool {
	return mcp.NewTool("analyze_project",
		mcp.WithDescription("Discover and analyze every recognized source file under a directory, populating the symbol, relationship, and call indices."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("root",
			mcp.Required(),
			mcp.Description("Project root directory to scan"),
		),
	)
}

func fileRelationshipsTool() mcp.Tool {
	return mcp.NewTool("file_relationships",
		mcp.WithDescription("List the import, extends, and implements edges originating from an analyzed file."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the analyzed file"),
		),
	)
}

func fileDependentsTool() mcp.Tool {
	return mcp.NewTool("file_dependents",
		mcp.WithDescription("List the analyzed files that import a given file. Only files already analyzed are considered."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the imported file, without extension for resolved relative imports"),
		),
	)
}

func findSymbolTool() mcp.Tool {
	return mcp.NewTool("find_symbol",
		mcp.WithDescription("Find classes, functions, and methods whose name contains a substring, across all analyzed files."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Substring to match against symbol names"),
		),
	)
}

func callsToTool() mcp.Tool {
	return mcp.NewTool("calls_to",
		mcp.WithDescription("List every recorded call site whose callee contains a substring."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Substring to match against callee names"),
		),
	)
}

func callsFromTool() mcp.Tool {
	return mcp.NewTool("calls_from",
		mcp.WithDescription("List the call sites made from inside a specific method or top-level function, attributed by declaration-line ranges."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("method",
			mcp.Required(),
			mcp.Description("Method or function name"),
		),
		mcp.WithString("class",
			mcp.Description("Class name when the target is a method; omit for a top-level function"),
		),
	)
}

func compareSignaturesTool() mcp.Tool {
	return mcp.NewTool("compare_signatures",
		mcp.WithDescription("Compare the call sites in a file against the declared signature of a method, reporting arity mismatches."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("calling_file",
			mcp.Required(),
			mcp.Description("Path of the file whose call sites are checked"),
		),
		mcp.WithString("class",
			mcp.Description("Class declaring the method; omit for a top-level function"),
		),
		mcp.WithString("method",
			mcp.Required(),
			mcp.Description("Method or function name"),
		),
	)
}

func cacheStatsTool() mcp.Tool {
	return mcp.NewTool("cache_stats",
		mcp.WithDescription("Report the number of analyzed files, total symbols and relationships, and the approximate cache size in bytes."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
	)
}

func evictCacheTool() mcp.Tool {
	return mcp.NewTool("evict_cache",
		mcp.WithDescription("Evict one file from the cache, or everything when no path is given. The next analysis rereads from disk."),
		mcp.WithString("path",
			mcp.Description("Path to evict; omit to clear the whole cache"),
		),
	)
}

func askModelTool() mcp.Tool {
	return mcp.NewTool("ask_model",
		mcp.WithDescription("Send a file's content to the locally hosted model with a question, chunking the content to fit the context budget."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the file to send"),
		),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("Question for the model about the file"),
		),
		mcp.WithString("model",
			mcp.Description("Override the configured model name"),
		),
	)
}

func listModelsTool() mcp.Tool {
	return mcp.NewTool("list_models",
		mcp.WithDescription("List the models available on the configured Ollama server."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
	)
}
