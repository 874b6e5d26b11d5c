package paste

import (
	"github.com/tegaidogun/pastedump/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Create(paste models.Paste) (models.Paste, error)

	GetByID(id string) (models.Paste, error)
	GetContent(id string) (string, error)

	IncrementViews(id string) error
	Delete(id string) error

	ListRecent(limit int) ([]models.Paste, error)
	SearchByID(query string, limit int) ([]models.Paste, error)

	WithTx(fn func(tx Repository) error) error
}

type concreteRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) (Repository, error) {
	if err := db.AutoMigrate(&models.Paste{}); err != nil {
		return nil, err
	}

	return &concreteRepository{db}, nil
}

func (c *concreteRepository) Create(paste models.Paste) (models.Paste, error) {
	if result := c.db.Create(&paste); result.Error != nil {
		return models.Paste{}, result.Error
	}

	// created_at is assigned by the database, reload to pick it up
	return c.GetByID(paste.ID)
}

func (c *concreteRepository) GetByID(id string) (models.Paste, error) {
	var paste models.Paste

	result := c.db.Where("id = ?", id).First(&paste)

	return paste, result.Error
}

func (c *concreteRepository) GetContent(id string) (string, error) {
	var paste models.Paste

	result := c.db.Select("content").Where("id = ?", id).First(&paste)

	return paste.Content, result.Error
}

func (c *concreteRepository) IncrementViews(id string) error {
	result := c.db.Model(&models.Paste{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("COALESCE(views, 0) + 1"))
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return result.Error
}

func (c *concreteRepository) Delete(id string) error {
	result := c.db.Where("id = ?", id).Delete(&models.Paste{})
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return result.Error
}

func (c *concreteRepository) ListRecent(limit int) ([]models.Paste, error) {
	var pastes []models.Paste

	result := c.db.
		Where("expires_in IS NULL OR " + c.notExpired()).
		Order("created_at DESC").
		Limit(limit).
		Find(&pastes)

	return pastes, result.Error
}

func (c *concreteRepository) SearchByID(query string, limit int) ([]models.Paste, error) {
	var pastes []models.Paste

	result := c.db.
		Where("id LIKE ?", "%"+query+"%").
		Order("created_at DESC").
		Limit(limit).
		Find(&pastes)

	return pastes, result.Error
}

func (c *concreteRepository) WithTx(fn func(tx Repository) error) error {
	return c.db.Transaction(func(tx *gorm.DB) error {
		return fn(&concreteRepository{tx})
	})
}

// notExpired computes created_at + expires_in minutes inside the query
// so listing stays consistent with the store clock.
func (c *concreteRepository) notExpired() string {
	if c.db.Dialector.Name() == "postgres" {
		return "created_at + expires_in * interval '1 minute' > now()"
	}

	return "datetime(created_at, '+' || expires_in || ' minutes') > CURRENT_TIMESTAMP"
}
