package like_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"social-api/internal/like"
	"social-api/internal/migrate"
	"social-api/internal/post"
	"social-api/internal/shared/apperr"
	"social-api/internal/user"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const testTimeout = 5 * time.Second

func setup(t *testing.T) (*gorm.DB, like.Service, *post.Post, *user.User) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, migrate.AutoMigrateAll(db))

	svc := like.NewService(like.NewRepository(db, nil), post.NewRepository(db), nil, testTimeout)

	u := &user.User{Name: "Ann", Email: "ann@x.com", Password: "h"}
	require.NoError(t, db.Create(u).Error)
	p := &post.Post{UserID: u.ID, Caption: "hello"}
	require.NoError(t, db.Create(p).Error)
	return db, svc, p, u
}

func TestToggleFlips(t *testing.T) {
	db, svc, p, u := setup(t)
	ctx := context.Background()

	liked, err := svc.Toggle(ctx, p.ID, u.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.Toggle(ctx, p.ID, u.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	liked, err = svc.Toggle(ctx, p.ID, u.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	var rows int64
	db.Model(&like.Like{}).Count(&rows)
	assert.Equal(t, int64(1), rows, "an odd number of toggles leaves one row")
}

func TestCountMatchesRows(t *testing.T) {
	db, svc, p, ann := setup(t)
	ctx := context.Background()

	bob := &user.User{Name: "Bob", Email: "bob@x.com", Password: "h"}
	require.NoError(t, db.Create(bob).Error)

	_, err := svc.Toggle(ctx, p.ID, ann.ID)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, p.ID, bob.ID)
	require.NoError(t, err)

	n, err := svc.Count(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = svc.Toggle(ctx, p.ID, bob.ID)
	require.NoError(t, err)
	n, err = svc.Count(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestIsLiked(t *testing.T) {
	db, svc, p, ann := setup(t)
	ctx := context.Background()

	bob := &user.User{Name: "Bob", Email: "bob@x.com", Password: "h"}
	require.NoError(t, db.Create(bob).Error)

	_, err := svc.Toggle(ctx, p.ID, ann.ID)
	require.NoError(t, err)

	got, err := svc.IsLiked(ctx, p.ID, ann.ID)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = svc.IsLiked(ctx, p.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestDuplicateLikeRowRejected(t *testing.T) {
	db, _, p, u := setup(t)

	require.NoError(t, db.Create(&like.Like{PostID: p.ID, UserID: u.ID}).Error)

	// The migrated (user_id, post_id) key must hold even for writes that
	// bypass Toggle.
	err := db.Create(&like.Like{PostID: p.ID, UserID: u.ID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestLikeInsertLosingRaceIsNoOp(t *testing.T) {
	db, _, p, u := setup(t)

	require.NoError(t, db.Create(&like.Like{PostID: p.ID, UserID: u.ID}).Error)

	res := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like.Like{PostID: p.ID, UserID: u.ID})
	require.NoError(t, res.Error)
	assert.Equal(t, int64(0), res.RowsAffected)

	var rows int64
	db.Model(&like.Like{}).Count(&rows)
	assert.Equal(t, int64(1), rows)
}

func TestConcurrentTogglesNeverDuplicate(t *testing.T) {
	db, svc, p, u := setup(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	liked := make([]bool, 2)
	errs := make([]error, 2)
	for i := range liked {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			liked[i], errs[i] = svc.Toggle(ctx, p.ID, u.ID)
		}(i)
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	var rows int64
	db.Model(&like.Like{}).Count(&rows)
	if liked[0] && liked[1] {
		// Overlapping toggles: the loser's insert hit the conflict clause.
		assert.Equal(t, int64(1), rows)
	} else {
		// Serialized toggles: the second one removed the first one's row.
		assert.Equal(t, int64(0), rows)
	}
}

func TestMissingPost(t *testing.T) {
	_, svc, _, u := setup(t)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, 999, u.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Count(ctx, 999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.IsLiked(ctx, 999, u.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
