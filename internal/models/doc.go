// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package models defines the data structures exchanged with the upstream
recommendation API.

The upstream engine owns the dataset and the similarity model; CineMatch only
reads what it returns. The types here mirror its four endpoints:

  - RecommendRequest / RecommendResponse: POST /api/recommend
  - AutocompleteResponse: GET /api/autocomplete
  - FilterRequest / FilterResponse: POST /api/filter
  - StatsResponse: GET /api/stats

Movie fields come from a CSV-backed dataset, so numbers sometimes arrive as
strings and strings sometimes arrive empty. Scalar keeps the raw value and
answers the two questions the UI asks of it: is it present, and how does it
print.

Application failures are data, not errors: a response with Success=false is
decoded normally and carries the server's message in Error.
*/
package models
