// Package gateway is the websocket front door: it upgrades connections,
// resolves identity and translates wire commands into session and room
// calls.
package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/keyforge-games/keyforge/internal/config"
	"github.com/keyforge-games/keyforge/internal/dictionary"
	"github.com/keyforge-games/keyforge/internal/identity"
	"github.com/keyforge-games/keyforge/internal/logging"
	"github.com/keyforge-games/keyforge/internal/persist"
	"github.com/keyforge-games/keyforge/internal/room"
	"github.com/keyforge-games/keyforge/internal/textsource"
)

type Gateway struct {
	source    *textsource.Source
	dict      *dictionary.Service
	rooms     *room.Coordinator
	persister *persist.Persister
	ids       identity.Provider

	timeBudget       time.Duration
	streamWordCount  int
	freeformTokenCap int
	snapshotInterval time.Duration
	defaultRoomMode  textsource.Mode

	upgrader websocket.Upgrader
}

func New(
	cfg *config.Config,
	source *textsource.Source,
	dict *dictionary.Service,
	rooms *room.Coordinator,
	persister *persist.Persister,
	ids identity.Provider,
) *Gateway {
	return &Gateway{
		source:           source,
		dict:             dict,
		rooms:            rooms,
		persister:        persister,
		ids:              ids,
		timeBudget:       cfg.TimeBudget,
		streamWordCount:  cfg.StreamWordCount,
		freeformTokenCap: cfg.FreeformTokenCap,
		snapshotInterval: cfg.SnapshotInterval,
		defaultRoomMode:  textsource.ModeFixed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Browser clients connect from the app origin; policy is the
			// deployment proxy's job.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Router builds the HTTP surface: a health probe and the websocket
// endpoint everything else rides on.
func (g *Gateway) Router(ctx context.Context) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/ws", func(c *gin.Context) {
		g.serve(ctx, c)
	})

	return router
}

func (g *Gateway) serve(ctx context.Context, c *gin.Context) {
	logger := logging.FromContext(ctx).Named("gateway")

	id, err := g.ids.Resolve(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("upgrade: %v", err)
		return
	}

	client := newClient(ctx, g, conn, id, c.Query("name"))
	logger.Infof("client connected: %s", client.playerID)
	client.run(ctx)
}
