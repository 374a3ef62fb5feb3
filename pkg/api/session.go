package api

type (
	CreateRoomRequest struct {
		Pid  string `json:"participantId,omitempty"`
		Name string `json:"name,omitempty"`
	}
	RoomCreatedResponse struct {
		Room
	}
	JoinRoomRequest struct {
		RoomParticipant
		Name string `json:"name,omitempty"`
	}
	RoomJoinedResponse struct {
		Room
		Ice []IceServer `json:"ice,omitempty"`
	}
	LeaveRoomRequest = RoomParticipant
	ErrorResponse    struct {
		Message string `json:"message"`
	}
)

type IceServer struct {
	Urls       string `json:"urls,omitempty"`
	Username   string `json:"username,omitempty"`
	Credential string `json:"credential,omitempty"`
}
