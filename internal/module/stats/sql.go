package stats

import (
	"time"

	"campus-activity/internal/model"

	"gorm.io/gorm"
)

// countBy 按 column 分组计数，db 需已指定 Model
func countBy(db *gorm.DB, column string) (map[string]int64, error) {
	var rows []struct {
		K string
		N int64
	}
	err := db.Select(column + " AS k, COUNT(*) AS n").Group(column).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.K] = r.N
	}
	return out, nil
}

// historyQuery 用户有效报名且在 askTime 前已结束的活动
func historyQuery(db *gorm.DB, userID uint, askTime time.Time) *gorm.DB {
	mine := db.Model(&model.Registration{}).
		Select("activity_id").
		Where("user_id = ? AND status NOT IN ?", userID,
			[]string{model.RegistrationCancelled, model.RegistrationRejected})
	return db.Model(&model.Activity{}).
		Joins("JOIN (?) AS mine ON mine.activity_id = activity.id", mine).
		Where("activity.end_time <= ?", model.NormalizeTime(askTime))
}

type RankItem struct {
	Rank       int    `gorm:"column:ranks" json:"rank"`
	ActivityID uint   `json:"activity_id"`
	Title      string `json:"title"`
	Enrolled   int    `json:"enrolled"`
	Capacity   int    `json:"capacity"`
}

// selectRank 已发布活动按占用名额排名，名额相同并列
func selectRank(db *gorm.DB, limit int) ([]RankItem, error) {
	ranks := []RankItem{}
	err := db.Table("activity").
		Select(`
			id AS activity_id,
			title,
			enrolled,
			capacity,
			RANK() OVER (ORDER BY enrolled DESC) AS ranks
		`).
		Where("status = ? AND deleted_at IS NULL", model.ActivityPublished).
		Order("ranks ASC, id ASC").
		Limit(limit).
		Scan(&ranks).Error
	return ranks, err
}
