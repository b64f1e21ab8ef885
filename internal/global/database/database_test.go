package database

import (
	"path/filepath"
	"testing"

	"campus-activity/config"
	"campus-activity/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestDialector(t *testing.T) {
	d, err := Dialector(config.Database{Driver: "mysql", Host: "h", Port: "3306"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())
	// 影响行数按匹配行计算，写入相同值时不返回 0
	parsed, err := mysql.ParseDSN(d.(*gormmysql.Dialector).DSN)
	require.NoError(t, err)
	assert.True(t, parsed.ClientFoundRows)

	d, err = Dialector(config.Database{Driver: "postgres", Host: "h", Port: "5432"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialector(config.Database{Driver: "oracle"})
	assert.Error(t, err)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, IsDuplicateKey(nil))
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(errors.Wrap(&mysql.MySQLError{Number: 1062}, "insert")))
	assert.False(t, IsDuplicateKey(&mysql.MySQLError{Number: 1213}))
	assert.True(t, IsDuplicateKey(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsDuplicateKey(errors.New("UNIQUE constraint failed: user.email")))
	assert.False(t, IsDuplicateKey(gorm.ErrRecordNotFound))
}

func TestOpenMigratesAndEnforcesUniqueEmail(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "campus.db") + "?_pragma=busy_timeout(5000)"
	db, err := Open(sqlite.Open(dsn), config.ModeRelease)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Create(&model.User{Email: "a@b.com", Password: "x", Name: "A"}).Error)
	err = db.Create(&model.User{Email: "a@b.com", Password: "y", Name: "B"}).Error
	assert.True(t, IsDuplicateKey(err))
}
