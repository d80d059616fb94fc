package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carlosintrieri/AV3/internal/config"
)

func TestLocal_UploadDeleteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	driver := NewLocal(dir)
	ctx := context.Background()

	url, err := driver.Upload(ctx, strings.NewReader("conteudo"), "projects/abc_display.jpg")
	require.NoError(t, err)
	require.Equal(t, "/uploads/projects/abc_display.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "projects", "abc_display.jpg"))
	require.NoError(t, err)
	require.Equal(t, "conteudo", string(data))

	require.NoError(t, driver.Delete(ctx, "projects/abc_display.jpg"))
	_, err = os.Stat(filepath.Join(dir, "projects", "abc_display.jpg"))
	require.True(t, os.IsNotExist(err))

	// Deleting something already gone is not an error.
	require.NoError(t, driver.Delete(ctx, "projects/abc_display.jpg"))
}

func TestNew_SelectsDriver(t *testing.T) {
	driver, err := New(config.StorageConfig{Driver: "local", UploadsPath: t.TempDir()})
	require.NoError(t, err)
	require.IsType(t, &Local{}, driver)

	_, err = New(config.StorageConfig{Driver: "ftp"})
	require.Error(t, err)

	// Cloud drivers refuse to start without credentials.
	_, err = New(config.StorageConfig{Driver: "s3"})
	require.Error(t, err)
	_, err = New(config.StorageConfig{Driver: "r2"})
	require.Error(t, err)
}

func TestContentTypeFor(t *testing.T) {
	require.Equal(t, "image/jpeg", contentTypeFor("a.jpg"))
	require.Equal(t, "image/png", contentTypeFor("b.png"))
	require.Equal(t, "application/octet-stream", contentTypeFor("c.bin"))
}
