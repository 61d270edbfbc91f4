package command

type Mode int

const (
	ModeInfo            Mode = 1
	ModeListChannels    Mode = 2
	ModeListLivestreams Mode = 3
	ModeListVideos      Mode = 5
)

func (m Mode) String() string {
	switch m {
	case ModeInfo:
		return "info"
	case ModeListChannels:
		return "list_channels"
	case ModeListLivestreams:
		return "list_livestreams"
	case ModeListVideos:
		return "list_videos"
	default:
		return "unknown"
	}
}

type TimeMode int

const (
	TimeModeNormal TimeMode = 1
	TimeModeFuture TimeMode = 2
)

// Envelope is the outer command object posted by clients
type Envelope struct {
	Software string
	VMajor   int
	VMinor   int
	IsBeta   bool
	VBeta    int
	Mode     Mode
	Data     map[string]any
}

// ListVideosCommand selects a page of videos of one channel.
//
// Epoch is the lookback in days: 0 means one day, a negative value disables
// the date window entirely. RefTime is a unix timestamp, 0 means now
type ListVideosCommand struct {
	Channel  string
	TimeMode TimeMode
	Epoch    int
	Duration int
	Limit    int
	Start    int
	RefTime  int64
}
