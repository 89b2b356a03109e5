package types

import "strings"

// Entry kinds. Each entry belongs to exactly one collection, keyed by kind.
const (
	KindVideo      = "video"
	KindScreenshot = "screenshot"
	KindPost       = "post"
	KindStream     = "stream"
)

// validKinds is the set of recognized entry kinds.
var validKinds = map[string]bool{
	KindVideo:      true,
	KindScreenshot: true,
	KindPost:       true,
	KindStream:     true,
}

// ValidKind reports whether kind names one of the four collections.
func ValidKind(kind string) bool {
	return validKinds[kind]
}

// Entry is a single content item. Kind selects the collection and which of
// the variant fields are meaningful: video and screenshot carry URL and
// Thumbnail, post carries Content and Excerpt, stream carries URL and IsLive.
// Kind is fixed at creation; Update never moves an entry between collections.
type Entry struct {
	ID       string `json:"id"`
	Kind     string `json:"type"`
	Title    string `json:"title"`
	Date     string `json:"date"` // YYYY-MM-DD
	GameTag  string `json:"gameTag,omitempty"`
	Category string `json:"category,omitempty"`

	// Video, screenshot and stream variants.
	URL       string `json:"url,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`

	// Post variant.
	Content string `json:"content,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`

	// Stream variant.
	IsLive bool `json:"isLive,omitempty"`
}

// Validate checks the per-kind required fields.
// Returns ErrInvalidKind for an unrecognized kind and ErrMissingField when a
// variant field required by the kind is empty. Title and Date are filled in
// by the store on Add, so Validate does not require them.
func (e *Entry) Validate() error {
	if !validKinds[e.Kind] {
		return ErrInvalidKind
	}
	switch e.Kind {
	case KindVideo, KindScreenshot, KindStream:
		if strings.TrimSpace(e.URL) == "" {
			return ErrMissingField
		}
	case KindPost:
		if strings.TrimSpace(e.Content) == "" {
			return ErrMissingField
		}
	}
	return nil
}

// Fields is a partial entry used by Update. Only non-nil pointers are
// applied; each applied field replaces the prior value wholesale.
type Fields struct {
	Title     *string `json:"title,omitempty"`
	Date      *string `json:"date,omitempty"`
	GameTag   *string `json:"gameTag,omitempty"`
	Category  *string `json:"category,omitempty"`
	URL       *string `json:"url,omitempty"`
	Thumbnail *string `json:"thumbnail,omitempty"`
	Content   *string `json:"content,omitempty"`
	Excerpt   *string `json:"excerpt,omitempty"`
	IsLive    *bool   `json:"isLive,omitempty"`
}

// Apply merges the set fields into e. Kind and ID are never touched.
func (f Fields) Apply(e *Entry) {
	if f.Title != nil {
		e.Title = *f.Title
	}
	if f.Date != nil {
		e.Date = *f.Date
	}
	if f.GameTag != nil {
		e.GameTag = *f.GameTag
	}
	if f.Category != nil {
		e.Category = *f.Category
	}
	if f.URL != nil {
		e.URL = *f.URL
	}
	if f.Thumbnail != nil {
		e.Thumbnail = *f.Thumbnail
	}
	if f.Content != nil {
		e.Content = *f.Content
	}
	if f.Excerpt != nil {
		e.Excerpt = *f.Excerpt
	}
	if f.IsLive != nil {
		e.IsLive = *f.IsLive
	}
}
