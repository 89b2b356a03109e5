package types

// Collection names, matching the JSON field names of the snapshot document.
const (
	CollectionVideos      = "videos"
	CollectionScreenshots = "screenshots"
	CollectionPosts       = "posts"
	CollectionStreams     = "streams"
)

// Snapshot is the full aggregate of all four content collections. It is the
// unit of persistence: every mutation rewrites the whole snapshot, and the
// seed file and remote mirror both carry this exact JSON shape.
type Snapshot struct {
	Videos      []Entry `json:"videos"`
	Screenshots []Entry `json:"screenshots"`
	Posts       []Entry `json:"posts"`
	Streams     []Entry `json:"streams"`
}

// NewSnapshot returns an empty snapshot with all four collections allocated.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Videos:      []Entry{},
		Screenshots: []Entry{},
		Posts:       []Entry{},
		Streams:     []Entry{},
	}
}

// Normalize coerces nil collections to empty slices. Partial documents from
// the seed file or mirror are accepted, never rejected.
func (s *Snapshot) Normalize() {
	if s.Videos == nil {
		s.Videos = []Entry{}
	}
	if s.Screenshots == nil {
		s.Screenshots = []Entry{}
	}
	if s.Posts == nil {
		s.Posts = []Entry{}
	}
	if s.Streams == nil {
		s.Streams = []Entry{}
	}
}

// Collection returns a pointer to the collection holding entries of the
// given kind, or nil for an unrecognized kind.
func (s *Snapshot) Collection(kind string) *[]Entry {
	switch kind {
	case KindVideo:
		return &s.Videos
	case KindScreenshot:
		return &s.Screenshots
	case KindPost:
		return &s.Posts
	case KindStream:
		return &s.Streams
	}
	return nil
}

// Each calls fn for every collection in a fixed order.
func (s *Snapshot) Each(fn func(kind string, entries *[]Entry)) {
	fn(KindVideo, &s.Videos)
	fn(KindScreenshot, &s.Screenshots)
	fn(KindPost, &s.Posts)
	fn(KindStream, &s.Streams)
}

// Clone returns a deep copy of the snapshot. Entries hold only value fields,
// so copying the backing slices is sufficient.
func (s *Snapshot) Clone() *Snapshot {
	cp := &Snapshot{
		Videos:      make([]Entry, len(s.Videos)),
		Screenshots: make([]Entry, len(s.Screenshots)),
		Posts:       make([]Entry, len(s.Posts)),
		Streams:     make([]Entry, len(s.Streams)),
	}
	copy(cp.Videos, s.Videos)
	copy(cp.Screenshots, s.Screenshots)
	copy(cp.Posts, s.Posts)
	copy(cp.Streams, s.Streams)
	return cp
}

// Stats holds the four collection lengths.
type Stats struct {
	Videos      int `json:"videos"`
	Screenshots int `json:"screenshots"`
	Posts       int `json:"posts"`
	Streams     int `json:"streams"`
}
