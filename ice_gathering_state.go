package fakertc

// IceGatheringState describes local candidate gathering.
type IceGatheringState int

const (
	IceGatheringStateNew IceGatheringState = iota + 1
	IceGatheringStateGathering
	IceGatheringStateComplete
)

const (
	iceGatheringStateNewStr       = "new"
	iceGatheringStateGatheringStr = "gathering"
	iceGatheringStateCompleteStr  = "complete"
)

func NewIceGatheringState(raw string) IceGatheringState {
	switch raw {
	case iceGatheringStateNewStr:
		return IceGatheringStateNew
	case iceGatheringStateGatheringStr:
		return IceGatheringStateGathering
	case iceGatheringStateCompleteStr:
		return IceGatheringStateComplete
	default:
		return 0
	}
}

func (s IceGatheringState) valid() bool {
	return s >= IceGatheringStateNew && s <= IceGatheringStateComplete
}

func (s IceGatheringState) String() string {
	switch s {
	case IceGatheringStateNew:
		return iceGatheringStateNewStr
	case IceGatheringStateGathering:
		return iceGatheringStateGatheringStr
	case IceGatheringStateComplete:
		return iceGatheringStateCompleteStr
	default:
		return "unknown"
	}
}
