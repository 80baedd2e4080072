package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetFor(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         releaseAsset
		wantErr      bool
	}{
		{"darwin", "amd64", releaseAsset{name: "lingiz_Darwin_all.tar.gz", binary: "lingiz"}, false},
		{"darwin", "arm64", releaseAsset{name: "lingiz_Darwin_all.tar.gz", binary: "lingiz"}, false},
		{"linux", "amd64", releaseAsset{name: "lingiz_Linux_x86_64.tar.gz", binary: "lingiz"}, false},
		{"linux", "arm64", releaseAsset{name: "lingiz_Linux_arm64.tar.gz", binary: "lingiz"}, false},
		{"windows", "amd64", releaseAsset{name: "lingiz_Windows_x86_64.zip", binary: "lingiz.exe", zipped: true}, false},
		{"freebsd", "amd64", releaseAsset{}, true},
		{"linux", "386", releaseAsset{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			got, err := assetFor(tt.goos, tt.goarch)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChecksumFor(t *testing.T) {
	sums := []byte("abc123  lingiz_Darwin_all.tar.gz\n" +
		"not a checksum line at all\n" +
		"\n" +
		"def456  lingiz_Linux_x86_64.tar.gz\n")

	got, ok := checksumFor(sums, "lingiz_Linux_x86_64.tar.gz")
	require.True(t, ok)
	assert.Equal(t, "def456", got)

	_, ok = checksumFor(sums, "lingiz_Windows_x86_64.zip")
	assert.False(t, ok)
}

func TestExtract(t *testing.T) {
	content := []byte("#!/bin/sh\necho lingiz")

	t.Run("tar.gz", func(t *testing.T) {
		asset := releaseAsset{name: "lingiz_Linux_x86_64.tar.gz", binary: "lingiz"}
		got, err := asset.extract(tarGzArchive(t, "lingiz", content))
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("zip", func(t *testing.T) {
		asset := releaseAsset{name: "lingiz_Windows_x86_64.zip", binary: "lingiz.exe", zipped: true}
		got, err := asset.extract(zipArchive(t, "lingiz.exe", content))
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("binary missing from archive", func(t *testing.T) {
		asset := releaseAsset{name: "lingiz_Linux_x86_64.tar.gz", binary: "lingiz"}
		_, err := asset.extract(tarGzArchive(t, "README.md", content))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no \"lingiz\" entry")
	})
}

func TestSwapBinary(t *testing.T) {
	target := filepath.Join(t.TempDir(), "lingiz")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0755))

	require.NoError(t, swapBinary(target, []byte("new")))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

// releaseServer serves the latest-release endpoint plus download files.
func releaseServer(t *testing.T, tag string, files map[string][]byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/repos/abhisek/lingiz/releases/latest" {
			_, _ = w.Write([]byte(`{"tag_name":"` + tag + `","html_url":"https://example.com/` + tag + `"}`))
			return
		}
		if body, ok := files[r.URL.Path]; ok {
			_, _ = w.Write(body)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestUpdate(t *testing.T) {
	// The served archive must match the platform the test runs on, since
	// Update resolves the asset from runtime.GOOS/GOARCH.
	asset, err := assetFor(runtime.GOOS, runtime.GOARCH)
	require.NoError(t, err)

	content := []byte("new-lingiz-binary")
	archive := tarGzArchive(t, asset.binary, content)
	if asset.zipped {
		archive = zipArchive(t, asset.binary, content)
	}
	sum := sha256.Sum256(archive)
	sums := []byte(hex.EncodeToString(sum[:]) + "  " + asset.name + "\n")
	download := "/abhisek/lingiz/releases/download/v2.0.0/"

	t.Run("replaces the binary and reports every step", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "lingiz")
		require.NoError(t, os.WriteFile(target, []byte("old"), 0755))

		server := releaseServer(t, "v2.0.0", map[string][]byte{
			download + asset.name:      archive,
			download + "checksums.txt": sums,
		})
		checker := NewChecker(
			WithBaseURL(server.URL),
			WithDownloadBaseURL(server.URL),
			withExecPath(func() (string, error) { return target, nil }),
		)

		var steps []string
		err := checker.Update(context.Background(), "v1.0.0", func(line string) {
			steps = append(steps, line)
		})
		require.NoError(t, err)

		got, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, content, got)
		assert.Len(t, steps, 6)
	})

	t.Run("dev build", func(t *testing.T) {
		err := NewChecker().Update(context.Background(), "(devel)", nil)
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("already latest", func(t *testing.T) {
		server := releaseServer(t, "v1.0.0", nil)
		checker := NewChecker(WithBaseURL(server.URL))
		err := checker.Update(context.Background(), "v1.0.0", nil)
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		bad := []byte("0000000000000000000000000000000000000000000000000000000000000000  " + asset.name + "\n")
		server := releaseServer(t, "v2.0.0", map[string][]byte{
			download + asset.name:      archive,
			download + "checksums.txt": bad,
		})
		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))
		err := checker.Update(context.Background(), "v1.0.0", nil)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("checksums.txt misses the asset", func(t *testing.T) {
		server := releaseServer(t, "v2.0.0", map[string][]byte{
			download + asset.name:      archive,
			download + "checksums.txt": []byte("abc123  something_else.tar.gz\n"),
		})
		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))
		err := checker.Update(context.Background(), "v1.0.0", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no entry for")
	})

	t.Run("archive download fails", func(t *testing.T) {
		server := releaseServer(t, "v2.0.0", nil)
		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))
		err := checker.Update(context.Background(), "v1.0.0", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download archive")
	})
}

func tarGzArchive(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Size: int64(len(content)), Mode: 0755}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func zipArchive(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
