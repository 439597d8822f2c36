package response

type MovieResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	PosterURL   string   `json:"poster_url,omitempty"`
	Description string   `json:"description,omitempty"`
	Year        string   `json:"year,omitempty"`
	Rating      float64  `json:"rating"`
	TopCast     []string `json:"top_cast,omitempty"`
}

// SpotlightResponse is the per-film detail view: metadata plus reviews.
type SpotlightResponse struct {
	Movie   MovieResponse    `json:"movie"`
	Reviews []ReviewResponse `json:"reviews"`
}

type TrailerResponse struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Name string `json:"name"`
}
