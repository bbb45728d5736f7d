package utils

import "strings"

// tmdbGenres maps TMDB genre ids to display names.
// Covers the movie list plus the TV-only ids TMDB shares with it.
var tmdbGenres = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// GenreNames joins the display names for a list of TMDB genre ids.
// Unrecognized ids are dropped. Returns "" when nothing matched.
func GenreNames(genreIDs []int) string {
	var names []string
	for _, id := range genreIDs {
		if name, ok := tmdbGenres[id]; ok {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}
