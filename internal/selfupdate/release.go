package selfupdate

import (
	"fmt"
	"strings"
)

// releaseAsset describes the archive published for one platform.
type releaseAsset struct {
	name   string // archive file name as published
	binary string // binary name inside the archive
	zipped bool
}

// releaseArchs maps GOARCH onto the label goreleaser puts in asset names.
// Releases cover 64-bit desktops only; that is where the overlay runs.
var releaseArchs = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
}

// assetFor resolves the release asset for a GOOS/GOARCH pair.
func assetFor(goos, goarch string) (releaseAsset, error) {
	arch, ok := releaseArchs[goarch]
	if !ok {
		return releaseAsset{}, fmt.Errorf("no release asset for architecture %s", goarch)
	}

	switch goos {
	case "darwin":
		// Darwin ships a single universal archive.
		return releaseAsset{name: "lingiz_Darwin_all.tar.gz", binary: "lingiz"}, nil
	case "linux":
		return releaseAsset{name: "lingiz_Linux_" + arch + ".tar.gz", binary: "lingiz"}, nil
	case "windows":
		return releaseAsset{name: "lingiz_Windows_" + arch + ".zip", binary: "lingiz.exe", zipped: true}, nil
	}
	return releaseAsset{}, fmt.Errorf("no release asset for operating system %s", goos)
}

// releaseFileURL builds the download URL for one file of a tagged release.
func (c *Checker) releaseFileURL(tag, file string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag, file)
}

// checksumFor scans a goreleaser checksums.txt for the named file. Lines
// that are not "<hex>  <name>" pairs are ignored.
func checksumFor(checksums []byte, file string) (string, bool) {
	for _, line := range strings.Split(string(checksums), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[1] == file {
			return fields[0], true
		}
	}
	return "", false
}
