// Package archive opens vendor-wrapped BAL symbol packages: a
// proprietary header prefix followed by a standard deflate-based
// archive (zip) holding a single SymbolReference.json manifest entry.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/balsymbols/symbolindex/internal/engineerr"
)

// ManifestEntryName is the fixed name of the manifest entry inside the
// archive, across every BAL package this engine has seen.
const ManifestEntryName = "SymbolReference.json"

// localFileHeaderSignature is the four-byte marker that opens the
// first local file header of a zip archive.
var localFileHeaderSignature = []byte{0x50, 0x4B, 0x03, 0x04}

// maxHeaderScanWindow bounds how far into the file we will look for
// the zip signature before concluding the file is not a recognized
// archive at all. Real vendor headers are small (well under 1KB); this
// window is generous without being unbounded.
const maxHeaderScanWindow = 64 * 1024

// maxManifestSize bounds the decompressed size of the manifest entry
// this reader will accept. A corrupt or adversarial central directory
// entry claiming a far larger size is rejected before any allocation
// happens downstream.
const maxManifestSize = 512 * 1024 * 1024

// OpenManifestStream opens the package file at path, strips the
// vendor header, and returns a stream positioned at the start of the
// SymbolReference.json entry. Callers must Close the returned reader,
// including on error paths taken after a non-nil return.
func OpenManifestStream(path string) (io.ReadCloser, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, engineerr.Wrap(engineerr.IoError, err, "read package file")
	}

	offset := bytes.Index(raw[:min(len(raw), maxHeaderScanWindow)], localFileHeaderSignature)
	if offset < 0 {
		return nil, engineerr.New(engineerr.InvalidArchive, "no zip signature found within header scan window")
	}

	zr, err := zip.NewReader(bytes.NewReader(raw[offset:]), int64(len(raw)-offset))
	if err != nil {
		return nil, engineerr.Wrap(engineerr.InvalidArchive, err, "open archive after vendor header")
	}

	for _, f := range zr.File {
		if f.Name != ManifestEntryName {
			continue
		}
		if f.UncompressedSize64 > maxManifestSize {
			return nil, engineerr.New(engineerr.ResourceLimit,
				fmt.Sprintf("manifest entry %d bytes exceeds limit %d", f.UncompressedSize64, uint64(maxManifestSize)))
		}
		rc, err := f.Open()
		if err != nil {
			return nil, engineerr.Wrap(engineerr.InvalidArchive, err, "open manifest entry")
		}
		return rc, nil
	}

	return nil, engineerr.New(engineerr.ManifestMissing, fmt.Sprintf("%s not found in archive", ManifestEntryName))
}
