package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bingo-backend/internal/analytics"
	"bingo-backend/internal/auth"
	"bingo-backend/internal/board"
	"bingo-backend/internal/canvas"
	"bingo-backend/internal/model"
	"bingo-backend/internal/service"
	"bingo-backend/internal/staging"
)

// BoardStore 핸들러가 쓰는 보드 저장소 연산. *service.BoardService가 구현한다.
type BoardStore interface {
	Save(userID int64, rec *board.Record) error
	Fetch(userID int64, periodType model.PeriodType, periodValue string, gridSize model.GridSize) (*model.BingoBoard, error)
	IncrementCounter(userID int64, periodValue string, gridSize model.GridSize, column model.CounterColumn) error
}

// BoardHandler 빙고 보드 핸들러
type BoardHandler struct {
	boards       BoardStore
	staged       staging.Store
	recorder     analytics.Recorder
	secureCookie bool
}

// NewBoardHandler BoardHandler 생성
func NewBoardHandler(boards BoardStore, staged staging.Store, recorder analytics.Recorder, secureCookie bool) *BoardHandler {
	return &BoardHandler{
		boards:       boards,
		staged:       staged,
		recorder:     recorder,
		secureCookie: secureCookie,
	}
}

// boardQuery 기간/그리드 식별 쿼리 파라미터
type boardQuery struct {
	PeriodType  model.PeriodType
	PeriodValue string
	GridSize    model.GridSize
}

func parseBoardQuery(c *fiber.Ctx) (boardQuery, error) {
	q := boardQuery{
		PeriodType:  model.PeriodType(c.Query("period_type")),
		PeriodValue: c.Query("period_value"),
		GridSize:    model.GridSize(c.Query("grid_size")),
	}
	if !q.PeriodType.Valid() {
		return q, board.ErrInvalidPeriodType
	}
	if !board.ValidPeriodValue(q.PeriodType, q.PeriodValue) {
		return q, board.ErrInvalidPeriodValue
	}
	if !q.GridSize.Valid() {
		return q, board.ErrInvalidGridSize
	}
	return q, nil
}

// GetBoard 기간/그리드 조합으로 보드 조회
func (h *BoardHandler) GetBoard(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "login required",
		})
	}

	q, err := parseBoardQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	row, err := h.boards.Fetch(userID, q.PeriodType, q.PeriodValue, q.GridSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "database error",
		})
	}
	if row == nil {
		// 조합에 해당하는 보드가 없으면 클라이언트가 빈 보드로 시작한다
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "board not found",
		})
	}

	return c.JSON(fiber.Map{
		"board": service.RowToRecord(row),
	})
}

// SaveBoard 보드 저장.
// 로그인 상태면 바로 upsert, 비로그인이면 세션 키로 스테이징해 두고
// 401과 함께 staged 플래그를 돌려준다. 로그인 완료 시 복원된다.
func (h *BoardHandler) SaveBoard(c *fiber.Ctx) error {
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

	userID, ok := auth.UserID(c)
	if !ok {
		return h.stageBoard(c, rec)
	}

	if err := h.boards.Save(userID, &rec); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save board",
		})
	}

	// 저장본에 데코가 있으면 사용된 도구별로 집계 이벤트를 남긴다
	if tools := toolUsage(rec.DrawingData); len(tools) > 0 {
		for tool, count := range tools {
			h.recorder.Record(analytics.EventDrawTool, map[string]any{
				"tool":    tool,
				"strokes": count,
			})
		}
	}

	h.recorder.Record(analytics.EventSaveBoard, map[string]any{
		"period_type":  rec.PeriodType.String(),
		"period_value": rec.PeriodValue,
		"grid_size":    rec.GridSize.String(),
		"filled_count": rec.FinalFilledCount,
		"is_decorated": rec.IsDecorated,
	})

	return c.JSON(fiber.Map{
		"board": rec,
	})
}

// toolUsage 스트로크 시퀀스의 도구별 사용 횟수.
// 도구 표기가 없는 구버전 스트로크는 drawMode로 펜/지우개를 구분한다.
func toolUsage(strokes []canvas.Stroke) map[string]int {
	if len(strokes) == 0 {
		return nil
	}
	out := make(map[string]int)
	for _, s := range strokes {
		tool := s.Tool.String()
		if tool == "" {
			if s.DrawMode {
				tool = canvas.ToolPen.String()
			} else {
				tool = canvas.ToolEraser.String()
			}
		}
		out[tool]++
	}
	return out
}

// stageBoard 비로그인 저장. 세션 쿠키가 없으면 새로 발급한다.
// 같은 세션이 다시 저장하면 이전 스테이징 내용을 덮어쓴다.
func (h *BoardHandler) stageBoard(c *fiber.Ctx, rec board.Record) error {
	sessionKey := c.Cookies("pending_session")
	if sessionKey == "" {
		sessionKey = uuid.New().String()
	}

	if err := h.staged.Stage(c.Context(), sessionKey, rec); err != nil {
		log.Printf("❌ Failed to stage board for session %s: %v", sessionKey, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to stage board",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "pending_session",
		Value:    sessionKey,
		Path:     "/",
		MaxAge:   int(staging.DefaultTTL.Seconds()),
		Secure:   h.secureCookie,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":  "login required",
		"staged": true,
	})
}

// RecordVisit 방문 카운터 증가. 응답을 막지 않도록 비동기로 처리한다.
func (h *BoardHandler) RecordVisit(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "login required",
		})
	}

	q, err := parseBoardQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	go func() {
		if err := h.boards.IncrementCounter(userID, q.PeriodValue, q.GridSize, model.CounterVisit); err != nil {
			log.Printf("⚠️ Failed to increment visit count for user %d: %v", userID, err)
		}
	}()

	h.recorder.Record(analytics.EventVisit, map[string]any{
		"period_value": q.PeriodValue,
		"grid_size":    q.GridSize.String(),
	})

	return c.SendStatus(fiber.StatusAccepted)
}
