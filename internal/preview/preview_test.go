package preview

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anas-shakeel/go-bmp/internal/bmp"
)

func TestRender_RowCount(t *testing.T) {
	img, err := bmp.NewImage(4, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, img, 80))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
}

func TestRender_Downsamples(t *testing.T) {
	img, err := bmp.NewImage(40, 20)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, img, 10))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 5)
	for _, line := range lines {
		assert.Equal(t, 10, strings.Count(line, block))
	}
}

func TestRender_ColorsNonTerminalWriters(t *testing.T) {
	img, err := bmp.NewImage(2, 1)
	require.NoError(t, err)
	img.Set(0, 0, bmp.Pack(255, 0, 128, 0xFF))
	img.Set(1, 0, bmp.Pack(1, 2, 3, 0xFF))

	f, err := os.CreateTemp(t.TempDir(), "preview")
	require.NoError(t, err)
	defer f.Close()

	var buf bytes.Buffer
	writers := []struct {
		name string
		w    io.Writer
		read func() string
	}{
		{"buffer", &buf, buf.String},
		{"file", f, func() string {
			data, err := os.ReadFile(f.Name())
			require.NoError(t, err)
			return string(data)
		}},
	}

	for _, tt := range writers {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, Render(tt.w, img, 10))

			out := tt.read()
			assert.Contains(t, out, "\x1b[48;2;255;0;128m")
			assert.Contains(t, out, "\x1b[48;2;1;2;3m")
			assert.Equal(t, 2, strings.Count(out, block))
		})
	}
}

func TestRender_Rejects(t *testing.T) {
	var buf bytes.Buffer

	assert.ErrorIs(t, Render(&buf, &bmp.Image{Width: 2, Height: 2}, 10), bmp.ErrInvalidDimensions)

	img, err := bmp.NewImage(1, 1)
	require.NoError(t, err)
	assert.Error(t, Render(&buf, img, 0))
}

func TestColumns_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "preview")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, 42, Columns(f, 42))
}
