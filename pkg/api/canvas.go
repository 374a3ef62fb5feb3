package api

import "github.com/goccy/go-json"

type (
	CanvasReadyRequest = RoomParticipant
	SyncCanvasResponse struct {
		AllObjects []json.RawMessage `json:"allObjects"`
	}
	ObjectRequest struct {
		Room
		Object json.RawMessage `json:"object"`
	}
	ObjectResponse struct {
		ObjectData json.RawMessage `json:"objectData"`
	}
	CanvasClearedRequest = Room
)
