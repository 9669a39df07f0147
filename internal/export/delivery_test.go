package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileDownloader(t *testing.T) {
	t.Run("writes artifact under the configured dir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		d := NewFileDownloader(dir)

		a := Artifact{Filename: Filename, MIMEType: MIMEType, Data: []byte("jpeg-bytes")}
		require.NoError(t, d.Download(context.Background(), a))

		data, err := os.ReadFile(filepath.Join(dir, Filename))
		require.NoError(t, err)
		assert.Equal(t, []byte("jpeg-bytes"), data)
	})

	t.Run("empty dir defaults to current directory", func(t *testing.T) {
		d := NewFileDownloader("")
		assert.Equal(t, ".", d.Dir)
	})

	t.Run("cancelled context aborts before writing", func(t *testing.T) {
		dir := t.TempDir()
		d := NewFileDownloader(dir)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := d.Download(ctx, Artifact{Filename: Filename, Data: []byte("x")})
		require.ErrorIs(t, err, context.Canceled)
		_, statErr := os.Stat(filepath.Join(dir, Filename))
		assert.True(t, os.IsNotExist(statErr))
	})
}
