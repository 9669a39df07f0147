package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileDownloader 산출물을 디렉터리에 파일로 저장하는 Downloader 구현.
// cmd/render_board 같은 서버 로컬 전달 경로에서 쓴다.
type FileDownloader struct {
	Dir string
}

// NewFileDownloader FileDownloader 생성
func NewFileDownloader(dir string) *FileDownloader {
	if dir == "" {
		dir = "."
	}
	return &FileDownloader{Dir: dir}
}

// Download 고정 파일명으로 저장
func (d *FileDownloader) Download(ctx context.Context, a Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(d.Dir, a.Filename)
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}
