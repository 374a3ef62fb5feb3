package coordinator

import (
	"context"
	"errors"
	"net/http"

	"github.com/cocode-dev/cocode/pkg/api"
	"github.com/cocode-dev/cocode/pkg/config"
	"github.com/cocode-dev/cocode/pkg/logger"
	"github.com/cocode-dev/cocode/pkg/network/websocket"
	"github.com/cocode-dev/cocode/pkg/room"
	"go.opentelemetry.io/otel/trace"
)

// Hub routes packets of all the connected users
// into their rooms.
type Hub struct {
	conf     config.CoordinatorConfig
	log      *logger.Logger
	rooms    *room.Store
	crowd    Crowd
	upgrader *websocket.Upgrader
	wsOpts   websocket.Options
	ice      []api.IceServer
	tracer   trace.Tracer
}

func NewHub(conf config.CoordinatorConfig, rooms *room.Store, log *logger.Logger) *Hub {
	ws := conf.Coordinator.Websocket
	var ice []api.IceServer
	for _, s := range conf.Webrtc.GetIceServers() {
		ice = append(ice, api.IceServer{Urls: s.Urls, Username: s.Username, Credential: s.Credential})
	}
	return &Hub{
		conf:     conf,
		log:      log,
		rooms:    rooms,
		crowd:    NewCrowd(),
		upgrader: websocket.NewUpgrader(conf.Coordinator.Origins()...),
		wsOpts: websocket.Options{
			MaxMessageSize: ws.MaxMessageSize,
			SendQueue:      ws.SendQueue,
			PingInterval:   ws.PingInterval,
		},
		ice:    ice,
		tracer: newTracer(),
	}
}

// handleNewWebsocketUserConnection handles all connections from user/frontend.
// Blocks until the connection is gone.
func (h *Hub) handleNewWebsocketUserConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.NewServer(w, r, h.wsOpts, h.log)
	if err != nil {
		h.log.Error().Err(err).Msg("couldn't start user handler")
		return
	}
	usr := NewUser(conn, h.log)
	h.crowd.add(usr)
	usr.log.Info().Str("addr", r.RemoteAddr).Msg("Connect")

	conn.SetMessageHandler(func(message []byte, _ error) { h.onMessage(usr, message) })
	<-conn.Listen()
	h.disconnect(usr)
}

// onMessage handles one raw inbound message.
// A handler panic drops only the offending connection.
func (h *Hub) onMessage(u *User, message []byte) {
	defer func() {
		if r := recover(); r != nil {
			u.log.Error().Msgf("recovered from a handler panic: %v", r)
			u.Disconnect()
		}
	}()
	p, err := api.Decode(message)
	if err != nil {
		packetsTotal.WithLabelValues("unknown", resultMalformed).Inc()
		u.log.Warn().Err(err).Msg("bad packet")
		u.Notify(api.Error, api.ErrorResponse{Message: err.Error()})
		return
	}
	h.dispatch(u, p)
}

// dispatch runs the packet handler and reports the outcome.
func (h *Hub) dispatch(u *User, p api.In) {
	u.log.Debug().Str(logger.DirectionField, "←").Msg(p.T.String())
	_, span := startPacketSpan(h.tracer, u, p.T)
	err := h.route(u, p)
	result := h.report(u, p.T, err)
	endPacketSpan(span, result, err)
}

func (h *Hub) report(u *User, t api.PT, err error) (result string) {
	switch {
	case err == nil:
		result = resultOk
	case errors.Is(err, room.ErrStale), errors.Is(err, room.ErrNotFound):
		// expected under churn
		result = resultStale
		u.log.Debug().Err(err).Str("t", t.String()).Msg("dropped")
	case errors.Is(err, api.ErrMalformed), errors.Is(err, room.ErrBadObject):
		result = resultMalformed
		u.log.Warn().Err(err).Str("t", t.String()).Msg("malformed")
		u.Notify(api.Error, api.ErrorResponse{Message: err.Error()})
	default:
		result = resultError
		u.log.Error().Err(err).Str("t", t.String()).Send()
	}
	packetsTotal.WithLabelValues(t.String(), result).Inc()
	return
}

// route binds a packet to its handler.
func (h *Hub) route(u *User, p api.In) error {
	switch p.T {
	case api.CreateRoom:
		return handle(p, func(rq *api.CreateRoomRequest) error { return h.handleCreateRoom(u, *rq) })
	case api.JoinRoom:
		return handle(p, func(rq *api.JoinRoomRequest) error { return h.handleJoinRoom(u, *rq) })
	case api.LeaveRoom:
		return handle(p, func(rq *api.LeaveRoomRequest) error { return h.handleLeaveRoom(u, *rq) })
	case api.EditorReady:
		return handle(p, func(rq *api.EditorReadyRequest) error { return h.handleEditorReady(u, *rq) })
	case api.CodeChange:
		return handle(p, func(rq *api.CodeChangeRequest) error { return h.handleCodeChange(u, *rq) })
	case api.LanguageChange:
		return handle(p, func(rq *api.LanguageChangeRequest) error { return h.handleLanguageChange(u, *rq) })
	case api.InputChange:
		return handle(p, func(rq *api.InputChangeRequest) error { return h.handleInputChange(u, *rq) })
	case api.OutputChange:
		return handle(p, func(rq *api.OutputChangeRequest) error { return h.handleOutputChange(u, *rq) })
	case api.CursorChange:
		return handle(p, func(rq *api.CursorChangeRequest) error { return h.handleCursorChange(u, *rq) })
	case api.RemoveCursor:
		return handle(p, func(rq *api.RemoveCursorRequest) error { return h.handleRemoveCursor(u, *rq) })
	case api.CanvasReady:
		return handle(p, func(rq *api.CanvasReadyRequest) error { return h.handleCanvasReady(u, *rq) })
	case api.ObjectAdded:
		return handle(p, func(rq *api.ObjectRequest) error { return h.handleObjectAdded(u, *rq) })
	case api.ObjectModified:
		return handle(p, func(rq *api.ObjectRequest) error { return h.handleObjectModified(u, *rq) })
	case api.ObjectRemoved:
		return handle(p, func(rq *api.ObjectRequest) error { return h.handleObjectRemoved(u, *rq) })
	case api.CanvasCleared:
		return handle(p, func(rq *api.CanvasClearedRequest) error { return h.handleCanvasCleared(u, *rq) })
	case api.MediaReady:
		return handle(p, func(rq *api.MediaReadyRequest) error { return h.handleMediaReady(u, *rq) })
	case api.MediaToggle:
		return handle(p, func(rq *api.MediaToggleRequest) error { return h.handleMediaToggle(u, *rq) })
	}
	return api.ErrUnknown
}

func handle[T any](p api.In, fn func(rq *T) error) error {
	rq, err := api.UnwrapChecked[T](p.Payload)
	if err != nil {
		return err
	}
	return fn(rq)
}

// inRoom runs fn with the state of the room of the user.
// Events for a room the connection is not in are stale.
func (h *Hub) inRoom(u *User, rid string, fn func(s *room.State) error) error {
	if !u.Session().Owns(rid) {
		return room.ErrStale
	}
	var err error
	if uErr := h.rooms.Update(rid, func(s *room.State) { err = fn(s) }); uErr != nil {
		return uErr
	}
	return err
}

// broadcast sends the packet to everyone in the room except the author.
// Must be called under the room lock.
func (h *Hub) broadcast(s *room.State, from *User, t api.PT, payload any) error {
	n, err := s.Group.Broadcast(from.Id(), t, payload)
	if err != nil {
		return err
	}
	broadcastsTotal.WithLabelValues(t.String()).Add(float64(n))
	return nil
}

// disconnect cleans up after the transport is gone.
func (h *Hub) disconnect(u *User) {
	if prev := u.terminate(); prev.Active() {
		h.release(u, prev)
	}
	h.crowd.finish(u)
	u.log.Info().Int("users", h.crowd.Len()).Msg("Disconnect")
}

// release takes the user out of the room of the session:
// the participant leaves the store along with its cursor,
// the others get the departure, the empty room is deleted.
func (h *Hub) release(u *User, s Session) {
	deleted, err := h.rooms.Leave(s.Rid, s.Pid, func(st *room.State, left bool) {
		st.Group.Unsubscribe(u.Id())
		if left {
			h.departed(st, u, s.Pid)
		}
	})
	if err != nil {
		u.log.Debug().Err(err).Str(logger.RoomField, s.Rid).Msg("leave from a gone room")
		return
	}
	if deleted {
		u.log.Info().Str(logger.RoomField, s.Rid).Msg("Room closed")
		roomsActive.Set(float64(h.rooms.Len()))
	}
}

// departed tells the rest of the room that the participant is gone.
// Must be called under the room lock.
func (h *Hub) departed(s *room.State, u *User, pid string) {
	if err := h.broadcast(s, u, api.PeerLeft, api.PeerLeftResponse{Pid: pid}); err != nil {
		u.log.Error().Err(err).Str(logger.ParticipantField, pid).Msg("peer-left broadcast")
	}
	if err := h.broadcast(s, u, api.UserLeft, api.UserLeftResponse{Pid: pid}); err != nil {
		u.log.Error().Err(err).Str(logger.ParticipantField, pid).Msg("user-left broadcast")
	}
}

// Shutdown drops all the connections.
func (h *Hub) Shutdown(context.Context) error {
	h.crowd.each(func(u *User) { u.Disconnect() })
	return nil
}

func (h *Hub) String() string { return "hub" }
