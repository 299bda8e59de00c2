package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/HerbHall/energyguard/pkg/plugin"
	"github.com/HerbHall/energyguard/pkg/roles"
	"github.com/coder/websocket"
	"go.uber.org/zap"
)

// Routes implements plugin.HTTPProvider. The empty path mounts the
// stream at /api/v1/ws itself.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "", Handler: m.handleStream},
	}
}

// handleStream upgrades the connection and streams session events.
//
//	@Summary		Live evaluation stream
//	@Description	Upgrades to WebSocket and streams welcome, evaluation, alert, session_reset and ping envelopes.
//	@Tags			ws
//	@Security		BearerAuth
//	@Success		101
//	@Router			/ws [get]
func (m *Module) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// Any origin is fine: the auth middleware in front of /api/v1/*
		// has already vetted the request.
		InsecureSkipVerify: true,
	})
	if err != nil {
		m.logger.Error("websocket accept failed", zap.Error(err))
		return
	}

	client := &Client{
		conn:   conn,
		addr:   r.RemoteAddr,
		send:   make(chan Message, m.cfg.SendBuffer),
		logger: m.logger,
	}

	// Queue the welcome before the pumps start so it is the first frame
	// the client sees.
	client.send <- m.welcomeMessage(r.Context())

	m.hub.Register(client)

	ctx := r.Context()
	done := make(chan struct{})
	go func() {
		client.writePump(ctx)
		// Unblocks readPump when the hub dropped the client.
		conn.Close(websocket.StatusNormalClosure, "")
		close(done)
	}()

	// readPump blocks until client disconnects.
	client.readPump(ctx)

	m.hub.Unregister(client)
	conn.Close(websocket.StatusNormalClosure, "")
	<-done
}

// welcomeMessage builds the greeting sent to a client on connect.
func (m *Module) welcomeMessage(ctx context.Context) Message {
	return Message{
		Type:      MessageWelcome,
		Timestamp: time.Now().UTC(),
		Data:      WelcomeData{Snapshot: m.sessionSnapshot(ctx)},
	}
}

// sessionSnapshot resolves the advisor role for the current session
// state. Returns nil when no advisor is available.
func (m *Module) sessionSnapshot(ctx context.Context) *roles.SessionSnapshot {
	if m.plugins == nil {
		return nil
	}
	for _, p := range m.plugins.ResolveByRole(roles.RoleAdvisor) {
		if advisor, ok := p.(roles.AdvisorProvider); ok {
			snap, err := advisor.Snapshot(ctx)
			if err != nil {
				continue
			}
			return &snap
		}
	}
	return nil
}
