// Package mcpserver exposes the narrative analyzers as MCP tools over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"storylens/internal/config"
	"storylens/internal/engine"
	"storylens/internal/thinking"
)

const (
	serverName    = "storylens"
	serverVersion = "0.1.0"
)

// Server owns the analysis engine and the live thinking sessions. Analysis
// results are computed fresh per call; only thinking sessions carry state
// between calls, and they vanish on restart.
type Server struct {
	cfg      config.Config
	engine   *engine.Engine
	sessions *thinking.Registry
}

func New(cfg config.Config) *Server {
	return &Server{
		cfg:      cfg,
		engine:   engine.New(cfg),
		sessions: thinking.NewRegistry(),
	}
}

// Run serves the tool set over stdio until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	return s.build().Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) build() *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(srv, analyzeStoryTool(), s.analyzeStoryHandler())
	mcp.AddTool(srv, analyzeCharactersTool(), s.analyzeCharactersHandler())
	mcp.AddTool(srv, analyzeEventsTool(), s.analyzeEventsHandler())
	mcp.AddTool(srv, analyzeEmotionsTool(), s.analyzeEmotionsHandler())
	mcp.AddTool(srv, analyzeDialogueTool(), s.analyzeDialogueHandler())
	mcp.AddTool(srv, analyzeRepetitionsTool(), s.analyzeRepetitionsHandler())
	mcp.AddTool(srv, findSynonymsTool(), s.findSynonymsHandler())
	mcp.AddTool(srv, simulateReadingTool(), s.simulateReadingHandler())
	mcp.AddTool(srv, thinkThroughStoryTool(), s.thinkThroughStoryHandler())

	return srv
}
