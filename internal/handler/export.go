package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"bingo-backend/internal/analytics"
	"bingo-backend/internal/auth"
	"bingo-backend/internal/board"
	"bingo-backend/internal/export"
	"bingo-backend/internal/model"
)

// ExportHandler 보드 이미지 내보내기 핸들러
type ExportHandler struct {
	pipeline *export.Pipeline
	boards   BoardStore
	recorder analytics.Recorder
}

// NewExportHandler ExportHandler 생성
func NewExportHandler(pipeline *export.Pipeline, boards BoardStore, recorder analytics.Recorder) *ExportHandler {
	return &ExportHandler{
		pipeline: pipeline,
		boards:   boards,
		recorder: recorder,
	}
}

// ExportBoard 보드를 JPEG 카드로 렌더링해 내려준다.
// 요청 본문이 곧 렌더링 대상이라 비로그인 상태에서도 동작한다.
// 로그인 상태면 다운로드 카운터를 비동기로 올린다.
func (h *ExportHandler) ExportBoard(c *fiber.Ctx) error {
	var rec board.Record
	if err := c.BodyParser(&rec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := rec.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	rec.Recompute()

	data, err := h.pipeline.Produce(c.Context(), rec)
	if err != nil {
		// 재시도까지 모두 실패한 경우. 실패 이벤트는 파이프라인이 이미 남겼다.
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to render board image",
		})
	}

	if userID, ok := auth.UserID(c); ok {
		go func() {
			if err := h.boards.IncrementCounter(userID, rec.PeriodValue, rec.GridSize, model.CounterDownload); err != nil {
				log.Printf("⚠️ Failed to increment download count for user %d: %v", userID, err)
			}
		}()
	}

	h.recorder.Record(analytics.EventDownload, map[string]any{
		"method":          "download",
		"final_grid_size": rec.GridSize.String(),
		"is_decorated":    rec.IsDecorated,
	})

	c.Set(fiber.HeaderContentType, export.MIMEType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.Filename+`"`)
	return c.Send(data)
}
