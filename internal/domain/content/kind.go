package content

import "fmt"

// Type is the content format.
type Type string

// Content type constants.
const (
	Movie   Type = "Movie"
	Series  Type = "Series"
	Cartoon Type = "Cartoon"
)

// IsValid checks if the type is one of the supported values.
func (t Type) IsValid() bool {
	return t == Movie || t == Series || t == Cartoon
}

// ParseType validates a raw type value.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid content type: %q", s)
	}
	return t, nil
}

// Industry is the production industry of a title.
type Industry string

// Industry constants. SouthIndian is stored with a space, as clients send it.
const (
	Hollywood   Industry = "Hollywood"
	Bollywood   Industry = "Bollywood"
	SouthIndian Industry = "South Indian"
	Anime       Industry = "Anime"
	Other       Industry = "Other"
)

// Industries lists every industry in display order.
var Industries = []Industry{Hollywood, Bollywood, SouthIndian, Anime, Other}

// IsValid checks if the industry is one of the supported values.
func (i Industry) IsValid() bool {
	switch i {
	case Hollywood, Bollywood, SouthIndian, Anime, Other:
		return true
	}
	return false
}

// ParseIndustry validates a raw industry value.
func ParseIndustry(s string) (Industry, error) {
	i := Industry(s)
	if !i.IsValid() {
		return "", fmt.Errorf("invalid industry: %q", s)
	}
	return i, nil
}

// Quality is a download link video quality.
type Quality string

// Video quality constants.
const (
	Q480p  Quality = "480p"
	Q720p  Quality = "720p"
	Q1080p Quality = "1080p"
	Q2K    Quality = "2K"
	Q4K    Quality = "4K"
)

// IsValid checks if the quality is one of the supported values.
func (q Quality) IsValid() bool {
	switch q {
	case Q480p, Q720p, Q1080p, Q2K, Q4K:
		return true
	}
	return false
}
