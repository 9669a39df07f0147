package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"bingo-backend/internal/analytics"
	"bingo-backend/internal/board"
	"bingo-backend/internal/database"
	"bingo-backend/internal/export"
	"bingo-backend/internal/model"
	"bingo-backend/internal/render"
	"bingo-backend/internal/service"
)

// 보드를 JPEG 카드로 렌더링하는 로컬 도구. 서버를 띄우지 않고
// 렌더링 결과를 눈으로 확인할 때 쓴다. 입력은 JSON 파일 아니면
// DB의 (user, period, grid) 조합이다.
func main() {
	input := flag.String("input", "", "path to board record JSON")
	userID := flag.Int64("user", 0, "user id (DB lookup mode)")
	periodType := flag.String("period-type", "Yearly", "Yearly | Monthly (DB lookup mode)")
	periodValue := flag.String("period-value", "", `"2026" or "2026-02" (DB lookup mode)`)
	gridSize := flag.String("grid", "3x3", "3x3 | 4x4 | 5x5 (DB lookup mode)")
	outDir := flag.String("out", ".", "output directory")
	fontPath := flag.String("font", "", "TTF font path for cell text")
	flag.Parse()

	var rec board.Record
	switch {
	case *input != "":
		rec = loadFromFile(*input)
	case *userID > 0 && *periodValue != "":
		rec = loadFromDB(*userID, model.PeriodType(*periodType), *periodValue, model.GridSize(*gridSize))
	default:
		fmt.Fprintln(os.Stderr, "usage: render_board -input board.json [-out dir] [-font font.ttf]")
		fmt.Fprintln(os.Stderr, "       render_board -user 1 -period-value 2026 [-period-type Yearly] [-grid 3x3]")
		os.Exit(1)
	}

	if err := rec.Validate(); err != nil {
		log.Fatalf("❌ Invalid board record: %v", err)
	}
	rec.Recompute()

	opts := render.DefaultOptions()
	opts.FontPath = *fontPath
	renderer := render.NewCardRenderer(opts)

	pipeline := export.NewPipeline(
		export.DefaultConfig(),
		renderer,
		nil, // 로컬 도구는 공유 시트 없이 파일 저장만 한다
		export.NewFileDownloader(*outDir),
		analytics.NewLogRecorder(),
	)

	result, err := pipeline.Export(context.Background(), rec)
	if err != nil {
		log.Fatalf("❌ Export failed: %v", err)
	}

	log.Printf("✅ Exported via %s: %s/%s", result.Method, *outDir, export.Filename)
}

func loadFromFile(path string) board.Record {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("❌ Failed to read input: %v", err)
	}
	var rec board.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Fatalf("❌ Failed to parse board record: %v", err)
	}
	return rec
}

func loadFromDB(userID int64, periodType model.PeriodType, periodValue string, gridSize model.GridSize) board.Record {
	db, err := database.ConnectDB()
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer database.Close()

	row, err := service.NewBoardService(db).Fetch(userID, periodType, periodValue, gridSize)
	if err != nil {
		log.Fatalf("❌ Board lookup failed: %v", err)
	}
	if row == nil {
		log.Fatalf("❌ No board for user %d %s %s %s", userID, periodType, periodValue, gridSize)
	}
	return service.RowToRecord(row)
}
