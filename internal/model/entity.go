package model

import (
	"time"
)

// User 사용자
type User struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Nickname   string    `gorm:"type:varchar(100);not null" json:"nickname"`
	ProfileImg *string   `gorm:"type:text" json:"profile_img,omitempty"`
	Provider   *string   `gorm:"type:varchar(50)" json:"provider,omitempty"`
	ProviderID *string   `gorm:"type:varchar(255)" json:"provider_id,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Boards []BingoBoard `gorm:"foreignKey:UserID" json:"boards,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// BingoBoard 버킷리스트 빙고 보드
// (user_id, period_type, period_value, grid_size) 조합당 한 행만 존재한다 (upsert 키).
type BingoBoard struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64   `gorm:"not null;uniqueIndex:idx_board_period,priority:1" json:"user_id"`
	Title       string  `gorm:"type:varchar(200);not null" json:"title"`
	GridData    string  `gorm:"type:jsonb;not null" json:"grid_data"`     // JSON array of cell strings
	DrawingData *string `gorm:"type:jsonb" json:"drawing_data,omitempty"` // JSON array of normalized strokes
	PeriodType  string  `gorm:"type:varchar(20);not null;uniqueIndex:idx_board_period,priority:2" json:"period_type"`
	PeriodValue string  `gorm:"type:varchar(10);not null;uniqueIndex:idx_board_period,priority:3" json:"period_value"` // "2026" | "2026-02"
	GridSize    string  `gorm:"type:varchar(5);not null;uniqueIndex:idx_board_period,priority:4" json:"grid_size"`

	// 저장 시점에 항상 재계산되는 통계 컬럼 (클라이언트 값은 신뢰하지 않음)
	FinalFilledCount int  `gorm:"default:0" json:"final_filled_count"`
	IsDecorated      bool `gorm:"default:false" json:"is_decorated"`

	VisitCount    int64 `gorm:"default:0" json:"visit_count"`
	DownloadCount int64 `gorm:"default:0" json:"download_count"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (BingoBoard) TableName() string {
	return "bingo_boards"
}
