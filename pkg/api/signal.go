package api

type MediaKind string

const (
	Video MediaKind = "video"
	Audio MediaKind = "audio"
)

func (k MediaKind) IsValid() bool { return k == Video || k == Audio }

type (
	MediaReadyRequest struct {
		RoomParticipant
		Name         string `json:"name"`
		VideoEnabled bool   `json:"videoEnabled"`
		AudioEnabled bool   `json:"audioEnabled"`
	}
	PeerJoinedResponse struct {
		Pid          string `json:"participantId"`
		Name         string `json:"name"`
		VideoEnabled bool   `json:"videoEnabled"`
		AudioEnabled bool   `json:"audioEnabled"`
	}
	MediaToggleRequest struct {
		RoomParticipant
		Kind    MediaKind `json:"kind"`
		Enabled bool      `json:"enabled"`
	}
	UpdateMediaResponse struct {
		Pid     string    `json:"participantId"`
		Kind    MediaKind `json:"kind"`
		Enabled bool      `json:"enabled"`
	}
	PeerLeftResponse struct {
		Pid string `json:"participantId"`
	}
)
