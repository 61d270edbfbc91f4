package response

const DefaultErrorMessage = "API Error"

// Envelope is the shape of every API answer. Error is 0 on success and 1
// otherwise; on error Entry carries the message
type Envelope struct {
	Error int `json:"error"`
	Head  any `json:"head"`
	Entry any `json:"entry"`
}

// ResultPage is the head of a video list
type ResultPage struct {
	Start   int   `json:"start"`
	End     int   `json:"end"`
	Rows    int   `json:"rows"`
	Total   int   `json:"total"`
	RefTime int64 `json:"refTime"`
}

type RowsHead struct {
	Rows int `json:"rows"`
}

type VideoEntry struct {
	Channel     string `json:"channel"`
	Theme       string `json:"theme"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Subtitle    string `json:"subtitle"`
	URL         string `json:"url"`
	URLSmall    string `json:"url_small"`
	URLHD       string `json:"url_hd"`
	DateUnix    int64  `json:"date_unix"`
	Duration    int    `json:"duration"`
	Geo         string `json:"geo"`
	ParseM3U8   int    `json:"parse_m3u8"`
}

type ChannelEntry struct {
	Channel string `json:"channel"`
	Count   int    `json:"count"`
	Latest  int64  `json:"latest"`
	Oldest  int64  `json:"oldest"`
}

type LivestreamEntry struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	ParseM3U8 int    `json:"parse_m3u8"`
}

type ProgInfoEntry struct {
	Version     string `json:"version"`
	VDate       int64  `json:"vdate"`
	MVVersion   string `json:"mvversion"`
	MVDate      int64  `json:"mvdate"`
	MVEntries   int    `json:"mventrys"`
	ProgName    string `json:"progname"`
	ProgVersion string `json:"progversion"`
	API         string `json:"api"`
	APIVersion  string `json:"apiversion"`
}
