package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	// Database connection
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_SSLMODE"),
		os.Getenv("DB_TIMEZONE"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("✅ Connected to database")
	fmt.Println()

	// upsert가 의존하는 복합 유니크 인덱스 존재 확인
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM pg_indexes
			WHERE tablename = 'bingo_boards'
			AND indexname = 'idx_board_period'
		)
	`
	if err := db.Raw(query).Scan(&exists).Error; err != nil {
		log.Fatal("Failed to check unique index:", err)
	}

	fmt.Printf("📊 Unique index idx_board_period exists: %v\n", exists)
	fmt.Println()

	if !exists {
		fmt.Println("❌ Unique index does NOT exist!")
		fmt.Println("⚠️  Board saves will insert duplicate rows until migration runs")
		return
	}

	// 보드 통계
	type BoardStats struct {
		Total     int64
		Yearly    int64
		Monthly   int64
		Decorated int64
	}
	var stats BoardStats
	query = `
		SELECT
			COUNT(*) as total,
			COUNT(CASE WHEN period_type = 'Yearly' THEN 1 END) as yearly,
			COUNT(CASE WHEN period_type = 'Monthly' THEN 1 END) as monthly,
			COUNT(CASE WHEN is_decorated THEN 1 END) as decorated
		FROM bingo_boards
	`
	if err := db.Raw(query).Scan(&stats).Error; err != nil {
		log.Fatal("Failed to get statistics:", err)
	}

	fmt.Println("📈 Board Statistics:")
	fmt.Printf("  - Total boards: %d\n", stats.Total)
	fmt.Printf("  - Yearly: %d\n", stats.Yearly)
	fmt.Printf("  - Monthly: %d\n", stats.Monthly)
	fmt.Printf("  - Decorated: %d\n", stats.Decorated)
	fmt.Println()

	// 중복 행 검사. 유니크 인덱스 도입 전 데이터가 남아 있으면 여기 걸린다.
	type DupRow struct {
		UserID      int64
		PeriodType  string
		PeriodValue string
		GridSize    string
		Cnt         int64
	}
	var dups []DupRow
	query = `
		SELECT user_id, period_type, period_value, grid_size, COUNT(*) as cnt
		FROM bingo_boards
		GROUP BY user_id, period_type, period_value, grid_size
		HAVING COUNT(*) > 1
	`
	if err := db.Raw(query).Scan(&dups).Error; err != nil {
		log.Fatal("Failed to check duplicates:", err)
	}

	if len(dups) == 0 {
		fmt.Println("✅ No duplicate (user, period, grid) rows")
	} else {
		fmt.Printf("❌ Found %d duplicated board keys:\n", len(dups))
		for _, d := range dups {
			fmt.Printf("  - User: %d, %s %s %s (%d rows)\n",
				d.UserID, d.PeriodType, d.PeriodValue, d.GridSize, d.Cnt)
		}
	}
	fmt.Println()

	// 최근 보드
	type BoardInfo struct {
		ID            int64
		UserID        int64
		Title         string
		PeriodValue   string
		GridSize      string
		VisitCount    int64
		DownloadCount int64
	}
	var boards []BoardInfo
	query = `
		SELECT id, user_id, title, period_value, grid_size, visit_count, download_count
		FROM bingo_boards
		ORDER BY updated_at DESC
		LIMIT 10
	`
	if err := db.Raw(query).Scan(&boards).Error; err != nil {
		log.Fatal("Failed to get recent boards:", err)
	}

	fmt.Println("🗂 Recent Boards (last 10):")
	for _, b := range boards {
		fmt.Printf("  - ID: %d, User: %d, %s [%s/%s] visits=%d downloads=%d\n",
			b.ID, b.UserID, b.Title, b.PeriodValue, b.GridSize, b.VisitCount, b.DownloadCount)
	}
}
