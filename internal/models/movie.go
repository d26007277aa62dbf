// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import (
	"math"
	"strings"
)

// PosterUnavailable is the sentinel the poster lookup returns when it has no
// image for a title.
const PosterUnavailable = "N/A"

// Movie is a single title as returned by the recommend and filter endpoints.
// SimilarityScore and Reason are only populated for recommendations.
type Movie struct {
	Title           string `json:"title"`
	Year            Scalar `json:"year"`
	Rating          Scalar `json:"rating"`
	Language        Scalar `json:"language"`
	Genres          Scalar `json:"genres"`
	Director        Scalar `json:"director"`
	MainActors      Scalar `json:"main_actors"`
	PosterURL       string `json:"poster_url,omitempty"`
	SimilarityScore Scalar `json:"similarity_score"`
	Reason          string `json:"reason,omitempty"`
}

// HasPoster reports whether PosterURL points at a real image.
func (m *Movie) HasPoster() bool {
	return m.PosterURL != "" && m.PosterURL != PosterUnavailable
}

// MatchPercent returns the similarity score as a whole percentage, rounding
// halves up. The boolean is false when the movie carries no score.
func (m *Movie) MatchPercent() (int, bool) {
	if !m.SimilarityScore.Present() {
		return 0, false
	}
	score, ok := m.SimilarityScore.Float()
	if !ok {
		return 0, false
	}
	return int(math.Floor(score*100 + 0.5)), true
}

// Filters narrows the movie list returned by the filter endpoint. Empty
// strings and a nil or non-positive MinRating mean "not set".
type Filters struct {
	Language  string   `json:"language,omitempty"`
	Genre     string   `json:"genre,omitempty"`
	MinRating *float64 `json:"min_rating,omitempty"`
}

// HasMinRating reports whether a usable minimum rating is set.
func (f Filters) HasMinRating() bool {
	return f.MinRating != nil && *f.MinRating > 0 && !math.IsNaN(*f.MinRating)
}

// Empty reports whether no filter is set at all.
func (f Filters) Empty() bool {
	return f.Language == "" && f.Genre == "" && !f.HasMinRating()
}

// Request converts the filters to the wire request, with nulls for unset
// fields.
func (f Filters) Request() FilterRequest {
	req := FilterRequest{}
	if f.Language != "" {
		lang := f.Language
		req.Language = &lang
	}
	if f.Genre != "" {
		genre := f.Genre
		req.Genre = &genre
	}
	if f.HasMinRating() {
		rating := *f.MinRating
		req.MinRating = &rating
	}
	return req
}

// Summary renders the active filters as "Language: X | Genre: Y | Rating: Z+",
// omitting unset parts.
func (f Filters) Summary() string {
	parts := make([]string, 0, 3)
	if f.Language != "" {
		parts = append(parts, "Language: "+f.Language)
	}
	if f.Genre != "" {
		parts = append(parts, "Genre: "+f.Genre)
	}
	if f.HasMinRating() {
		parts = append(parts, "Rating: "+FormatNumber(*f.MinRating)+"+")
	}
	return strings.Join(parts, " | ")
}

// Stats is the dataset summary shown in the header strip.
type Stats struct {
	TotalMovies   Scalar            `json:"total_movies"`
	Languages     map[string]Scalar `json:"languages"`
	TopDirectors  map[string]Scalar `json:"top_directors,omitempty"`
	AverageRating Scalar            `json:"average_rating"`
	YearRange     Scalar            `json:"year_range"`
}

// LanguageCount is the number of distinct languages in the dataset.
func (s *Stats) LanguageCount() int {
	if s == nil {
		return 0
	}
	return len(s.Languages)
}
