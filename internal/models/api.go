// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

// RecommendRequest is the body of POST /api/recommend.
type RecommendRequest struct {
	MovieTitle         string `json:"movie_title"`
	NumRecommendations int    `json:"num_recommendations"`
}

// RecommendResponse is the body returned by POST /api/recommend.
type RecommendResponse struct {
	Success         bool    `json:"success"`
	InputMovie      string  `json:"input_movie,omitempty"`
	Recommendations []Movie `json:"recommendations,omitempty"`
	Error           string  `json:"error,omitempty"`
}

// AutocompleteResponse is the body returned by GET /api/autocomplete.
type AutocompleteResponse struct {
	Suggestions []string `json:"suggestions"`
	Error       string   `json:"error,omitempty"`
}

// FilterRequest is the body of POST /api/filter. Nil fields are sent as null.
type FilterRequest struct {
	Language  *string  `json:"language"`
	Genre     *string  `json:"genre"`
	MinRating *float64 `json:"min_rating"`
}

// FilterResponse is the body returned by POST /api/filter.
type FilterResponse struct {
	Success bool    `json:"success"`
	Movies  []Movie `json:"movies,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// StatsResponse is the body returned by GET /api/stats.
type StatsResponse struct {
	Success bool   `json:"success"`
	Stats   *Stats `json:"stats,omitempty"`
	Error   string `json:"error,omitempty"`
}
