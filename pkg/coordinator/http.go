package coordinator

import (
	"errors"
	"net/http"

	"github.com/cocode-dev/cocode/pkg/config"
	"github.com/cocode-dev/cocode/pkg/logger"
	"github.com/cocode-dev/cocode/pkg/network/httpx"
	"github.com/cocode-dev/cocode/pkg/room"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"
)

func NewHTTPServer(conf config.CoordinatorConfig, log *logger.Logger, hub *Hub) (*httpx.Server, error) {
	return httpx.NewServer(
		conf.Coordinator.Server.GetAddr(),
		func(*httpx.Server) http.Handler { return Router(hub, log, conf.Coordinator.Origins()) },
		httpx.WithServerConfig(conf.Coordinator.Server),
		httpx.WithLogger(log),
	)
}

// Router returns all the HTTP routes of the coordinator.
func Router(hub *Hub, log *logger.Logger, origins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP, middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Get("/ws", hub.handleNewWebsocketUserConnection)

	r.Route("/api", func(r chi.Router) {
		if len(origins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: origins,
				AllowedMethods: []string{http.MethodGet, http.MethodOptions},
				MaxAge:         300,
			}))
		}
		r.Get("/rooms/{roomId}", roomInfo(hub.rooms, log))
	})
	return r
}

// roomInfo lets a join page check a room before opening the socket.
func roomInfo(rooms *room.Store, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := rooms.Info(chi.URLParam(r, "roomId"))
		if errors.Is(err, room.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("room info")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(info); err != nil {
			log.Warn().Err(err).Msg("room info write")
		}
	}
}
