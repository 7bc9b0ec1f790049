// Package layoutserver serves layout generation over WebSocket. Clients on
// /generate request layouts by rank preset or inline params; watchers on
// /watch receive every generated layout as it happens.
package layoutserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/dungeondredge/layoutd/internal/dungeon/gen"
	"github.com/dungeondredge/layoutd/internal/dungeon/rank"
	"github.com/dungeondredge/layoutd/internal/storage/postgres"
)

// healthTimeout bounds the database ping on /healthz.
const healthTimeout = 2 * time.Second

// LayoutStore persists generated layouts. Nil disables persistence.
type LayoutStore interface {
	Save(ctx context.Context, rank string, layout *gen.Layout) (postgres.StoredLayout, error)
}

// Pinger reports backend storage health. Nil means no storage is wired.
type Pinger interface {
	Health(ctx context.Context, timeout time.Duration) error
}

// Service handles the layout generation endpoints.
type Service struct {
	registry    *rank.Registry
	defaultRank string
	store       LayoutStore
	pinger      Pinger
	hub         *Hub
	logger      *zap.Logger
}

// NewService creates a Service.
//
// Precondition: registry and logger must be non-nil; defaultRank must name
// a preset in registry. store and pinger may be nil.
func NewService(registry *rank.Registry, defaultRank string, store LayoutStore, pinger Pinger, logger *zap.Logger) (*Service, error) {
	if _, ok := registry.Get(defaultRank); !ok {
		return nil, fmt.Errorf("default rank %q is not a loaded preset", defaultRank)
	}
	return &Service{
		registry:    registry,
		defaultRank: defaultRank,
		store:       store,
		pinger:      pinger,
		hub:         NewHub(logger),
		logger:      logger,
	}, nil
}

// Hub exposes the watcher hub, mainly for tests.
func (s *Service) Hub() *Hub {
	return s.hub
}

// RegisterRoutes attaches the service endpoints to mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/generate", s.handleGenerate)
	mux.HandleFunc("/watch", s.handleWatch)
	mux.HandleFunc("/healthz", s.handleHealthz)
}

// handleGenerate upgrades to WebSocket and serves generate requests until
// the client closes. A malformed or invalid request gets an error frame,
// not a dropped connection.
func (s *Service) handleGenerate(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket accept failed", zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusInternalError, "server error")

	ctx := r.Context()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				conn.Close(websocket.StatusNormalClosure, "")
			} else {
				s.logger.Debug("generate connection closed", zap.Error(err))
			}
			return
		}

		var req GenerateRequest
		if err := json.Unmarshal(data, &req); err != nil {
			s.writeError(ctx, conn, fmt.Sprintf("malformed request: %v", err))
			continue
		}

		snapshot, err := s.generate(ctx, req)
		if err != nil {
			s.writeError(ctx, conn, err.Error())
			continue
		}

		frame, err := json.Marshal(ServerMessage{Type: MessageLayout, Layout: snapshot})
		if err != nil {
			s.writeError(ctx, conn, "encoding layout failed")
			continue
		}
		if err := conn.Write(ctx, websocket.MessageText, frame); err != nil {
			s.logger.Debug("writing layout failed", zap.Error(err))
			return
		}
		s.hub.Broadcast(frame)
	}
}

// generate resolves the request to params, runs the generator, and persists
// the result when a store is wired.
func (s *Service) generate(ctx context.Context, req GenerateRequest) (*LayoutSnapshot, error) {
	var (
		params   gen.Params
		rankName = req.Rank
	)
	switch {
	case req.Params != nil:
		params = *req.Params
		if req.Seed != 0 {
			params.Seed = req.Seed
		}
	default:
		if rankName == "" {
			rankName = s.defaultRank
		}
		var err error
		params, err = s.registry.ParamsFor(rankName, req.Seed)
		if err != nil {
			return nil, err
		}
	}

	generator, err := gen.NewGenerator(params, s.logger)
	if err != nil {
		return nil, err
	}
	layout, err := generator.Generate()
	if err != nil {
		return nil, err
	}

	snapshot := SnapshotLayout(rankName, layout)
	if s.store != nil {
		stored, err := s.store.Save(ctx, rankName, layout)
		if err != nil {
			// Persistence failure degrades to an unpersisted snapshot.
			s.logger.Error("persisting layout failed", zap.Error(err))
		} else {
			snapshot.ID = stored.ID.String()
		}
	}
	return snapshot, nil
}

// handleWatch upgrades to WebSocket, registers the watcher, and holds the
// connection open until the client goes away.
func (s *Service) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket accept failed", zap.Error(err))
		return
	}

	ctx := r.Context()
	s.hub.Add(conn)
	defer s.hub.Remove(conn)

	// The hello frame tells the client it is registered for broadcasts.
	hello, _ := json.Marshal(ServerMessage{Type: MessageHello})
	if err := conn.Write(ctx, websocket.MessageText, hello); err != nil {
		conn.Close(websocket.StatusInternalError, "hello failed")
		return
	}
	s.logger.Debug("watcher connected", zap.Int("watchers", s.hub.Count()))

	// Watchers never send frames; the read only detects the close.
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			conn.Close(websocket.StatusNormalClosure, "")
			return
		}
	}
}

// handleHealthz reports service and storage health.
func (s *Service) handleHealthz(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]string{"status": "ok"}

	if s.pinger != nil {
		if err := s.pinger.Health(r.Context(), healthTimeout); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["database"] = err.Error()
		} else {
			body["database"] = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Service) writeError(ctx context.Context, conn *websocket.Conn, message string) {
	frame, err := json.Marshal(ServerMessage{Type: MessageError, Error: message})
	if err != nil {
		return
	}
	if err := conn.Write(ctx, websocket.MessageText, frame); err != nil {
		s.logger.Debug("writing error frame failed", zap.Error(err))
	}
}
