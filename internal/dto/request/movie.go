package request

// BrowseMoviesRequest mirrors the catalog sidebar: free-text query,
// optional release-year and minimum-rating filters, and a sort order.
type BrowseMoviesRequest struct {
	Query     string  `json:"query"`
	Year      string  `json:"year" validate:"omitempty,len=4"`
	MinRating float64 `json:"min_rating" validate:"omitempty,min=0,max=10"`
	Sort      string  `json:"sort" validate:"omitempty,oneof=newest highest_rated a-z"`
}
