package paste

import (
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/tegaidogun/pastedump/internal/models"
	"github.com/tegaidogun/pastedump/internal/repository/paste"
	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrMissingContent = errors.New("missing content")
)

const (
	defaultTitle = "Untitled"
	recentLimit  = 10
	idLength     = 8
)

type Service interface {
	Create(title, content, expiresInRaw string) (models.Paste, error)

	GetForView(id string) (models.Paste, error)
	GetRaw(id string) (string, error)

	ListRecent() ([]models.Paste, error)
}

type concreteService struct {
	pasteRepository paste.Repository
}

func New(pasteRepository paste.Repository) Service {
	return &concreteService{pasteRepository}
}

// Create stores a new paste and returns it with its generated id.
// Empty titles fall back to "Untitled", and expiresInRaw values that
// are empty or fail to parse mean the paste never expires.
func (c *concreteService) Create(title, content, expiresInRaw string) (models.Paste, error) {
	if content == "" {
		return models.Paste{}, ErrMissingContent
	}

	if title == "" {
		title = defaultTitle
	}

	var expiresIn *int
	if expiresInRaw != "" {
		if minutes, err := strconv.Atoi(expiresInRaw); err == nil {
			expiresIn = &minutes
		}
	}

	paste := models.Paste{
		ID:        uuid.NewString()[:idLength],
		Title:     title,
		Content:   content,
		ExpiresIn: expiresIn,
	}

	paste, err := c.pasteRepository.Create(paste)
	if err != nil {
		return models.Paste{}, err
	}

	return paste, nil
}

// GetForView returns a live paste with its view counter already
// incremented. A paste past its expiry instant is deleted on this read
// and reported as not found; the expiry check always precedes the
// increment, so an expired paste is never counted.
func (c *concreteService) GetForView(id string) (models.Paste, error) {
	var (
		viewed   models.Paste
		notFound bool
	)

	err := c.pasteRepository.WithTx(func(tx paste.Repository) error {
		found, err := tx.GetByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				notFound = true
				return nil
			}

			return err
		}

		if expiresAt, ok := found.ExpiresAt(); ok && time.Now().UTC().After(expiresAt) {
			notFound = true
			return tx.Delete(id)
		}

		if err := tx.IncrementViews(id); err != nil {
			return err
		}

		viewed, err = tx.GetByID(id)
		return err
	})
	if err != nil {
		return models.Paste{}, err
	}

	if notFound {
		return models.Paste{}, ErrNotFound
	}

	return viewed, nil
}

// GetRaw returns the paste body only. Expiry is not enforced and the
// view counter is untouched.
func (c *concreteService) GetRaw(id string) (string, error) {
	content, err := c.pasteRepository.GetContent(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}

		return "", err
	}

	return content, nil
}

// ListRecent returns up to ten non-expired pastes, newest first.
// Expired rows are skipped but left in place for the view path to
// collect.
func (c *concreteService) ListRecent() ([]models.Paste, error) {
	return c.pasteRepository.ListRecent(recentLimit)
}
