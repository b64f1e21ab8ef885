package model_test

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"campus-activity/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func openDB(t *testing.T) *gorm.DB {
	dsn := filepath.Join(t.TempDir(), "seat.db") + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{NamingStrategy: schema.NamingStrategy{SingularTable: true}})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Activity{}))
	return db
}

func TestTakeAndReleaseSeat(t *testing.T) {
	db := openDB(t)
	now := time.Now()
	a := model.Activity{OrganizerID: 1, Title: "t", StartTime: now, EndTime: now.Add(time.Hour), Capacity: 1, Status: model.ActivityPublished}
	require.NoError(t, db.Create(&a).Error)

	require.NoError(t, model.TakeSeat(db, a.ID))
	require.ErrorIs(t, model.TakeSeat(db, a.ID), model.ErrNoSeat)

	require.NoError(t, model.ReleaseSeat(db, a.ID))
	require.NoError(t, model.ReleaseSeat(db, a.ID))
	var got model.Activity
	require.NoError(t, db.First(&got, a.ID).Error)
	require.Equal(t, 0, got.Enrolled)

	require.ErrorIs(t, model.TakeSeat(db, 999), model.ErrActivityMissing)

	draft := model.Activity{OrganizerID: 1, Title: "d", StartTime: now, EndTime: now.Add(time.Hour), Capacity: 5, Status: model.ActivityDraft}
	require.NoError(t, db.Create(&draft).Error)
	require.ErrorIs(t, model.TakeSeat(db, draft.ID), model.ErrNotPublished)
}

// 多连接并发抢座，条件更新保证不超卖
func TestTakeSeatConcurrent(t *testing.T) {
	db := openDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(8)
	t.Cleanup(func() { _ = sqlDB.Close() })

	now := time.Now()
	a := model.Activity{OrganizerID: 1, Title: "t", StartTime: now, EndTime: now.Add(time.Hour), Capacity: 3, Status: model.ActivityPublished}
	require.NoError(t, db.Create(&a).Error)

	const n = 10
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = model.TakeSeat(db, a.ID)
		}()
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, model.ErrNoSeat)
	}
	require.Equal(t, 3, ok)
	var got model.Activity
	require.NoError(t, db.First(&got, a.ID).Error)
	require.Equal(t, 3, got.Enrolled)
}
