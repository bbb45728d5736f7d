// Package sources resolves playable stream sources for catalog entries.
// The shipped implementation is a fixture generator; a real resolution
// backend can be swapped in behind the Generator interface without
// touching the ingestion pipeline.
package sources

import (
	"fmt"

	"github.com/amaumene/streamarr/internal/models"
)

// Generator produces the stream sources for one catalog entry,
// identified by its TMDB id.
type Generator interface {
	Generate(tmdbID int) []models.StreamSource
}

// sampleVideos is the fixed pool the sample generator picks from
var sampleVideos = []string{
	"https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
	"https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4",
	"https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4",
	"https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/SubaruOutbackOnStreetAndDirt.mp4",
	"https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/TearsOfSteel.mp4",
}

var qualities = []string{"1080p", "720p", "480p"}

// SampleGenerator deterministically attaches sample videos:
// the TMDB id picks one video from the pool, emitted once per quality
// label under a distinct synthetic provider.
type SampleGenerator struct {
	pool []string
}

// NewSampleGenerator creates a generator over the default sample pool
func NewSampleGenerator() *SampleGenerator {
	return &SampleGenerator{pool: sampleVideos}
}

// Generate returns one source per quality label for the given TMDB id
func (g *SampleGenerator) Generate(tmdbID int) []models.StreamSource {
	index := tmdbID % len(g.pool)
	if index < 0 {
		index += len(g.pool)
	}
	video := g.pool[index]

	result := make([]models.StreamSource, 0, len(qualities))
	for i, quality := range qualities {
		result = append(result, models.StreamSource{
			URL:      video,
			Quality:  quality,
			Provider: fmt.Sprintf("server%d", i+1),
			Language: models.DefaultLanguage,
		})
	}
	return result
}

var _ Generator = (*SampleGenerator)(nil)
