package fakertc

// IceCandidate is a remote or local ICE candidate, as exchanged over
// signaling. Fields are carried verbatim and never interpreted.
type IceCandidate struct {
	Candidate     string `json:"candidate"`
	SDPMid        string `json:"sdpMid"`
	SDPMLineIndex uint16 `json:"sdpMLineIndex"`
}

func NewIceCandidate(candidate, sdpMid string, sdpMLineIndex uint16) *IceCandidate {
	return &IceCandidate{
		Candidate:     candidate,
		SDPMid:        sdpMid,
		SDPMLineIndex: sdpMLineIndex,
	}
}

// MediaStream identifies a stream. No streams are ever modeled; the type exists
// so stream accessors have something to return.
type MediaStream struct {
	ID string
}
