package tmdb

import (
	"fmt"

	"github.com/amaumene/streamarr/internal/models"
	"github.com/amaumene/streamarr/internal/utils"
)

const posterBaseURL = "https://image.tmdb.org/t/p/w500"

// NormalizeSearchItem maps a raw search result into a catalog record.
// Missing release dates yield the "Unknown" year sentinel.
func NormalizeSearchItem(item Item, mediaType models.MediaType) models.Movie {
	return normalize(item, mediaType, models.UnknownYear, "Unknown")
}

// NormalizeBulkItem maps a raw category-listing result into a catalog
// record. The bulk path fills the extended fields with defaults and uses
// the fallbacks the category listings historically used.
func NormalizeBulkItem(item Item, mediaType models.MediaType) models.Movie {
	movie := normalize(item, mediaType, "2024", "Drama")

	movie.Director = "Various"
	movie.Cast = []string{"Actor 1", "Actor 2", "Actor 3"}
	if mediaType == models.MediaTypeTV {
		movie.Duration = "45 min/episode"
	} else {
		movie.Duration = "120 min"
	}

	return movie
}

func normalize(item Item, mediaType models.MediaType, yearFallback, genreFallback string) models.Movie {
	title := item.Title
	if title == "" {
		title = item.Name
	}
	if title == "" {
		title = models.UnknownTitle
	}

	date := item.ReleaseDate
	if date == "" {
		date = item.FirstAirDate
	}
	year := yearFallback
	if len(date) >= 4 {
		year = date[:4]
	}

	genre := utils.GenreNames(item.GenreIDs)
	if genre == "" {
		genre = genreFallback
	}

	poster := models.PlaceholderPoster
	if item.PosterPath != "" {
		poster = fmt.Sprintf("%s%s", posterBaseURL, item.PosterPath)
	}

	description := item.Overview
	if description == "" {
		description = models.DefaultDescription
	}

	return models.Movie{
		TMDBID:      item.ID,
		MediaType:   mediaType,
		Title:       title,
		Year:        year,
		Rating:      item.VoteAverage,
		Genre:       genre,
		Poster:      poster,
		Description: description,
	}
}
