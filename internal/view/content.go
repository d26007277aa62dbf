// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package view

import (
	"github.com/tomtom215/cinematch/internal/controller"
)

// Item is a list entry or a labelled line. Label is rendered in bold.
type Item struct {
	Label string
	Text  string
}

// Block is one piece of static panel content. Exactly one of its fields is
// normally set.
type Block struct {
	Heading   string
	Paragraph string
	List      []Item
	Ordered   bool
	// Lines are labelled paragraphs grouped together, e.g. contact details.
	Lines []Item
}

// InfoPanel is the static content of one modal panel.
type InfoPanel struct {
	Title  string
	Blocks []Block
}

// Panel returns the content for p. appTitle names the application in the
// About panel.
func Panel(p controller.ModalPanel, appTitle string) (InfoPanel, bool) {
	switch p {
	case controller.ModalAbout:
		return aboutPanel(appTitle), true
	case controller.ModalHelp:
		return helpPanel(), true
	case controller.ModalContact:
		return contactPanel(), true
	}
	return InfoPanel{}, false
}

func aboutPanel(appTitle string) InfoPanel {
	return InfoPanel{
		Title: "About " + appTitle,
		Blocks: []Block{
			{Paragraph: appTitle + " is an intelligent system that helps you discover your next favorite film from Bollywood and regional cinema."},
			{Heading: "🎯 How it works:"},
			{List: []Item{
				{Label: "TF-IDF Vectorization", Text: "Converts movie features into numerical vectors"},
				{Label: "Cosine Similarity", Text: "Measures similarity between movies based on genres, cast, director, and themes"},
				{Label: "Smart Matching", Text: "Handles partial titles and misspellings using fuzzy string matching"},
				{Label: "OMDb Integration", Text: "Fetches high-quality movie posters and additional metadata"},
			}},
			{Heading: "🎬 Features:"},
			{List: []Item{
				{Text: "Support for multiple Indian languages (Hindi, Tamil, Telugu, Kannada, Malayalam, Bengali, Marathi)"},
				{Text: "Autocomplete suggestions as you type"},
				{Text: "Advanced filtering by language, genre, and rating"},
				{Text: "Detailed recommendation explanations"},
				{Text: "Responsive design for all devices"},
			}},
		},
	}
}

func helpPanel() InfoPanel {
	return InfoPanel{
		Title: "Help & Usage Guide",
		Blocks: []Block{
			{Heading: "🔍 How to use:"},
			{Ordered: true, List: []Item{
				{Label: "Search by Movie", Text: `Enter any movie title (e.g., "Dangal", "Baahubali", "3 Idiots")`},
				{Label: "Use Autocomplete", Text: "Start typing and select from suggestions"},
				{Label: "Apply Filters", Text: "Use advanced filters to discover movies by language, genre, or rating"},
				{Label: "View Results", Text: "Browse recommendations with posters, details, and explanations"},
			}},
			{Heading: "💡 Tips:"},
			{List: []Item{
				{Text: "Try movie titles in English or Indian languages"},
				{Text: "Use partial titles - the system handles misspellings"},
				{Text: "Explore different languages and genres using filters"},
				{Text: "Check the recommendation reasons to understand why movies are suggested"},
			}},
			{Heading: "🎭 Supported Languages:"},
			{Paragraph: "Hindi, Tamil, Telugu, Kannada, Malayalam, Bengali, Marathi, and more!"},
		},
	}
}

func contactPanel() InfoPanel {
	return InfoPanel{
		Title: "Contact & Contributing",
		Blocks: []Block{
			{Heading: "📧 Get in Touch:"},
			{Paragraph: "We'd love to hear from you! Whether you have feedback, suggestions, or need help, feel free to reach out."},
			{Lines: []Item{
				{Label: "📧 Email", Text: "support@movierecommender.com"},
				{Label: "🐛 Report Issues", Text: "github.com/movierecommender/issues"},
				{Label: "💡 Feature Requests", Text: "github.com/movierecommender/discussions"},
			}},
			{Heading: "🤝 Contributing:"},
			{Paragraph: "This is an open-source project! Contributions are welcome:"},
			{List: []Item{
				{Text: "Add more movies to the dataset"},
				{Text: "Improve recommendation algorithms"},
				{Text: "Enhance the user interface"},
				{Text: "Add support for more languages"},
			}},
			{Lines: []Item{{Label: "GitHub", Text: "github.com/movierecommender"}}},
		},
	}
}
