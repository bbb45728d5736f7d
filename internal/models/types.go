package models

// MediaType represents the kind of catalog entry (movie or tv show)
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// ParseMediaType maps request input to a MediaType, defaulting to movie
func ParseMediaType(s string) MediaType {
	if s == string(MediaTypeTV) {
		return MediaTypeTV
	}
	return MediaTypeMovie
}

// Fallback values shared by the search and bulk ingestion paths
const (
	UnknownTitle       = "Unknown Title"
	UnknownYear        = "Unknown"
	PlaceholderPoster  = "/placeholder.svg"
	DefaultDescription = "No description available"
	DefaultLanguage    = "en"
)
