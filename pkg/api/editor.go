package api

import "github.com/goccy/go-json"

type Position struct {
	LineNumber int `json:"lineNumber"`
	Column     int `json:"column"`
}

type Cursor struct {
	Name     string   `json:"name"`
	Position Position `json:"position"`
}

type (
	EditorReadyRequest = RoomParticipant
	SyncEditorResponse struct {
		Code     *string           `json:"code"`
		Language string            `json:"language"`
		Cursors  map[string]Cursor `json:"cursors"`
		Input    string            `json:"input"`
		Output   string            `json:"output"`
	}
	CodeChangeRequest struct {
		Room
		Code    string          `json:"code"`
		Changes json.RawMessage `json:"changes"`
	}
	UpdateCodeResponse struct {
		Changes json.RawMessage `json:"changes"`
	}
	LanguageChangeRequest struct {
		Room
		Language string `json:"language"`
	}
	UpdateLanguageResponse struct {
		Language string `json:"language"`
	}
	InputChangeRequest struct {
		Room
		Input string `json:"input"`
	}
	UpdateInputResponse struct {
		Input string `json:"input"`
	}
	OutputChangeRequest struct {
		Room
		Output string `json:"output"`
	}
	UpdateOutputResponse struct {
		Output string `json:"output"`
	}
	CursorChangeRequest struct {
		RoomParticipant
		Name     string   `json:"name"`
		Position Position `json:"position"`
	}
	UpdateCursorResponse struct {
		Pid      string   `json:"participantId"`
		Name     string   `json:"name"`
		Position Position `json:"position"`
	}
	RemoveCursorRequest = RoomParticipant
	UserLeftResponse    struct {
		Pid string `json:"participantId"`
	}
)
