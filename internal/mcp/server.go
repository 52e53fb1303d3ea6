// ABOUTME: MCP server exposing the mood log to AI assistants.
// ABOUTME: Wraps the MCP SDK server with storage, weather, and calendar settings.
package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/harperreed/mood/internal/logging"
	"github.com/harperreed/mood/internal/models"
	"github.com/harperreed/mood/internal/storage"
)

// WeatherProvider returns current weather for a city without failing.
type WeatherProvider interface {
	Current(ctx context.Context, city string) models.Weather
}

// Options configures the MCP server.
type Options struct {
	Weather  WeatherProvider
	Location *time.Location
	UserID   int64
	Logger   *zap.SugaredLogger
	Now      func() time.Time
}

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	weather   WeatherProvider
	loc       *time.Location
	userID    int64
	log       *zap.SugaredLogger
	now       func() time.Time
}

// NewServer creates a new MCP server with the given storage.
func NewServer(repo storage.Repository, opts Options) (*Server, error) {
	if repo == nil {
		return nil, errors.New("mcp: repository is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "mood",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		weather:   opts.Weather,
		loc:       opts.Location,
		userID:    opts.UserID,
		log:       opts.Logger,
		now:       opts.Now,
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.userID <= 0 {
		s.userID = models.GuestUserID
	}
	if s.log == nil {
		s.log = logging.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Infow("mcp server starting", "transport", "stdio", "user", s.userID)
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) today() time.Time {
	return s.now().In(s.loc)
}
