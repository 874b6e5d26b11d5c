package paste

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tegaidogun/pastedump/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) (Repository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo, err := New(db)
	require.NoError(t, err)

	return repo, db
}

func backdate(t *testing.T, db *gorm.DB, id string, age time.Duration) {
	t.Helper()

	stamp := time.Now().UTC().Add(-age).Format(time.DateTime)
	require.NoError(t, db.Exec("UPDATE pastes SET created_at = ? WHERE id = ?", stamp, id).Error)
}

func TestCreateAssignsCreatedAt(t *testing.T) {
	repo, _ := newTestRepository(t)

	paste, err := repo.Create(models.Paste{ID: "abcd1234", Title: "t", Content: "c"})
	require.NoError(t, err)

	assert.Equal(t, "abcd1234", paste.ID)
	assert.False(t, paste.CreatedAt.IsZero())
	assert.Nil(t, paste.Views)
}

func TestGetByIDMissing(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.GetByID("nope")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestIncrementViews(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.Create(models.Paste{ID: "abcd1234", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, repo.IncrementViews("abcd1234"))
	require.NoError(t, repo.IncrementViews("abcd1234"))

	paste, err := repo.GetByID("abcd1234")
	require.NoError(t, err)
	assert.Equal(t, 2, paste.ViewCount())
}

func TestIncrementViewsMissing(t *testing.T) {
	repo, _ := newTestRepository(t)

	assert.ErrorIs(t, repo.IncrementViews("nope"), gorm.ErrRecordNotFound)
}

func TestDelete(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.Create(models.Paste{ID: "abcd1234", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete("abcd1234"))

	_, err = repo.GetByID("abcd1234")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.Delete("abcd1234"), gorm.ErrRecordNotFound)
}

func TestGetContent(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.Create(models.Paste{ID: "abcd1234", Content: "hello"})
	require.NoError(t, err)

	content, err := repo.GetContent("abcd1234")
	require.NoError(t, err)
	assert.Equal(t, "hello", content)

	_, err = repo.GetContent("nope")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListRecentSkipsExpired(t *testing.T) {
	repo, db := newTestRepository(t)

	minutes := 1

	_, err := repo.Create(models.Paste{ID: "live-one", Content: "c"})
	require.NoError(t, err)

	_, err = repo.Create(models.Paste{ID: "longlive", Content: "c", ExpiresIn: &minutes})
	require.NoError(t, err)

	_, err = repo.Create(models.Paste{ID: "expired1", Content: "c", ExpiresIn: &minutes})
	require.NoError(t, err)
	backdate(t, db, "expired1", 2*time.Minute)

	pastes, err := repo.ListRecent(10)
	require.NoError(t, err)

	ids := make([]string, 0, len(pastes))
	for _, p := range pastes {
		ids = append(ids, p.ID)
	}

	assert.ElementsMatch(t, []string{"live-one", "longlive"}, ids)
}

func TestListRecentOrderAndLimit(t *testing.T) {
	repo, db := newTestRepository(t)

	for i := 0; i < 12; i++ {
		id := string(rune('a'+i)) + "0000000"

		_, err := repo.Create(models.Paste{ID: id, Content: "c"})
		require.NoError(t, err)

		// distinct timestamps, oldest first
		backdate(t, db, id, time.Duration(12-i)*time.Minute)
	}

	pastes, err := repo.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, pastes, 10)

	// newest first: l, k, j, ...
	assert.Equal(t, "l0000000", pastes[0].ID)
	assert.Equal(t, "c0000000", pastes[9].ID)
}

func TestSearchByID(t *testing.T) {
	repo, db := newTestRepository(t)

	for _, id := range []string{"aaaa1111", "aabb2222", "cccc3333"} {
		_, err := repo.Create(models.Paste{ID: id, Content: "c"})
		require.NoError(t, err)
	}
	backdate(t, db, "aaaa1111", time.Minute)

	pastes, err := repo.SearchByID("aa", 20)
	require.NoError(t, err)
	require.Len(t, pastes, 2)

	// newest first
	assert.Equal(t, "aabb2222", pastes[0].ID)
	assert.Equal(t, "aaaa1111", pastes[1].ID)

	pastes, err = repo.SearchByID("zz", 20)
	require.NoError(t, err)
	assert.Empty(t, pastes)
}

func TestSearchByIDIncludesExpired(t *testing.T) {
	repo, db := newTestRepository(t)

	minutes := 1

	_, err := repo.Create(models.Paste{ID: "expired1", Content: "c", ExpiresIn: &minutes})
	require.NoError(t, err)
	backdate(t, db, "expired1", 2*time.Minute)

	pastes, err := repo.SearchByID("expired", 20)
	require.NoError(t, err)
	require.Len(t, pastes, 1)
	assert.Equal(t, "expired1", pastes[0].ID)
}
