package webui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderConnect(t *testing.T) {
	ui, err := New()
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, ui.RenderConnect(&sb, ConnectData{
		RootName: "Holiday Photos",
		URL:      "http://192.168.1.10:5000",
	}))

	out := sb.String()
	assert.Contains(t, out, "Holiday Photos")
	assert.Contains(t, out, "http://192.168.1.10:5000/files")
	assert.Contains(t, out, `src="/qr.png"`)
}

func TestFilesPage(t *testing.T) {
	ui, err := New()
	require.NoError(t, err)

	page := string(ui.FilesPage())
	assert.Contains(t, page, "/api/files/")
	assert.Contains(t, page, "/api/info")
	assert.Contains(t, page, "/download/")
}

func TestQRPNG(t *testing.T) {
	png, err := QRPNG("http://192.168.1.10:5000/files")
	require.NoError(t, err)

	require.Greater(t, len(png), 8)
	assert.Equal(t, "\x89PNG\r\n\x1a\n", string(png[:8]), "PNG magic header")
}
