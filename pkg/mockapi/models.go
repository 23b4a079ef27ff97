package mockapi

// Track is a catalog entry served by the fake API.
type Track struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Artist     string            `json:"artist"`
	DurationMs int               `json:"durationMs,omitempty"`
	URLs       map[string]string `json:"-"` // source name -> page URL
	Streams    map[string]string `json:"-"` // source name -> stream URL
}

// StreamResponse is the /get-stream payload.
type StreamResponse struct {
	Track
	Source    string `json:"source"`
	StreamURL string `json:"streamUrl"`
	Fallback  bool   `json:"fallback"`
}

// StatusResponse is the /status payload.
type StatusResponse struct {
	Status  string   `json:"status"`
	Service string   `json:"service"`
	Uptime  int64    `json:"uptimeSeconds"`
	Sources []string `json:"sources"`
}

// Source names, in the order streams are tried.
const (
	SourceYouTube    = "youtube"
	SourceSoundCloud = "soundcloud"
	SourceSpotify    = "spotify"
)

var sources = []string{SourceYouTube, SourceSoundCloud, SourceSpotify}

// DefaultCatalog returns the tracks served when none are configured.
func DefaultCatalog() []Track {
	return []Track{
		{
			ID:         "dQw4w9WgXcQ",
			Title:      "Never Gonna Give You Up",
			Artist:     "Rick Astley",
			DurationMs: 213000,
			URLs: map[string]string{
				SourceYouTube: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
				SourceSpotify: "https://open.spotify.com/track/4PTG3Z6ehGkBFwjybzWkR8",
			},
			Streams: map[string]string{
				SourceYouTube: "https://stream.example/youtube/dQw4w9WgXcQ.m4a",
			},
		},
		{
			ID:         "sc-lofi-001",
			Title:      "Lofi Study Session",
			Artist:     "Kojioka Records",
			DurationMs: 3600000,
			URLs: map[string]string{
				SourceSoundCloud: "https://soundcloud.com/kojioka/lofi-study-session",
			},
			Streams: map[string]string{
				SourceSoundCloud: "https://stream.example/soundcloud/sc-lofi-001.mp3",
			},
		},
	}
}
