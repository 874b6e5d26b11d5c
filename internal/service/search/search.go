package search

import (
	"strings"

	"github.com/tegaidogun/pastedump/internal/repository/paste"
)

const (
	MessagePrompt    = "Enter a search term."
	MessageNoMatches = "No matching pastes found."

	searchLimit   = 20
	displayFormat = "02-01-2006 @ 15:04:05"
)

// Entry is one search hit with its creation time already formatted
// for display.
type Entry struct {
	ID        string
	Title     string
	CreatedAt string
}

type Result struct {
	Query   string
	Message string
	Pastes  []Entry
}

type Service interface {
	Search(query string) (Result, error)
}

type concreteService struct {
	pasteRepository paste.Repository
}

func New(pasteRepository paste.Repository) Service {
	return &concreteService{pasteRepository}
}

// Search matches query as a substring of paste ids, newest first,
// capped at twenty hits. Expired pastes are not filtered out here;
// only the view path enforces expiry.
func (c *concreteService) Search(query string) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{Message: MessagePrompt}, nil
	}

	pastes, err := c.pasteRepository.SearchByID(query, searchLimit)
	if err != nil {
		return Result{}, err
	}

	result := Result{Query: query}
	if len(pastes) == 0 {
		result.Message = MessageNoMatches
	}

	for _, p := range pastes {
		result.Pastes = append(result.Pastes, Entry{
			ID:        p.ID,
			Title:     p.Title,
			CreatedAt: p.CreatedAt.Format(displayFormat),
		})
	}

	return result, nil
}
