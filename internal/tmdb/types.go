package tmdb

// Movie is the subset of TMDb movie data the app displays.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

// Year returns the release year, empty when the release date is absent.
func (m *Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

type Video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
	Name string `json:"name"`
}

type castMember struct {
	Name string `json:"name"`
}

type creditsResponse struct {
	Cast []castMember `json:"cast"`
}

type videosResponse struct {
	Results []Video `json:"results"`
}

type searchResponse struct {
	Results []Movie `json:"results"`
}
