package selfupdate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// Update replaces the running binary with the latest release: check,
// download, checksum, extract, atomic swap. report receives a line per step
// and may be nil.
func (c *Checker) Update(ctx context.Context, currentVersion string, report func(string)) error {
	if report == nil {
		report = func(string) {}
	}
	if currentVersion == "(devel)" {
		return ErrDevBuild
	}

	report("Checking for the latest release...")
	result, err := c.Check(ctx, &CheckInput{Version: currentVersion})
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}
	if !result.UpdateAvailable {
		return ErrAlreadyLatest
	}
	tag := result.LatestVersion

	asset, err := assetFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}

	report(fmt.Sprintf("Downloading %s...", tag))
	archive, err := c.fetch(ctx, c.releaseFileURL(tag, asset.name))
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	report("Verifying checksum...")
	sums, err := c.fetch(ctx, c.releaseFileURL(tag, "checksums.txt"))
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := checksumFor(sums, asset.name)
	if !ok {
		return fmt.Errorf("checksums.txt has no entry for %s", asset.name)
	}
	sum := sha256.Sum256(archive)
	if got := hex.EncodeToString(sum[:]); got != want {
		return fmt.Errorf("%w: want %s, got %s", ErrChecksum, want, got)
	}

	report("Extracting...")
	binary, err := asset.extract(archive)
	if err != nil {
		return fmt.Errorf("extract %s: %w", asset.binary, err)
	}

	report("Installing...")
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := swapBinary(target, binary); err != nil {
		return fmt.Errorf("install update: %w", err)
	}

	report(fmt.Sprintf("Updated to %s", tag))
	return nil
}

func (c *Checker) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// swapBinary writes data next to the installed binary and renames it into
// place, keeping the old file's mode. Staying in one directory keeps the
// rename on one filesystem, so the swap is atomic.
func swapBinary(target string, data []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".lingiz-*")
	if err != nil {
		return fmt.Errorf("create staging file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write staging file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close staging file: %w", err)
	}
	if err := os.Chmod(tmpName, info.Mode()); err != nil {
		return fmt.Errorf("chmod staging file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("replace binary: %w", err)
	}
	return nil
}
