package classify

import (
	"bytes"

	"dircmp/internal/apperr"
	"dircmp/internal/vfs"
)

// Kind labels a binary file by its leading magic number.
type Kind struct {
	Ext  string
	Desc string
}

// Unknown is returned when no signature matches.
var Unknown = Kind{Ext: "", Desc: "binary data"}

type signature struct {
	magic []byte
	kind  Kind
}

// Longer signatures sharing a prefix must come first (RAR 5 before RAR 4).
var signatures = []signature{
	{[]byte{0xFF, 0xD8, 0xFF}, Kind{"jpg", "JPEG image"}},
	{[]byte{0x89, 0x50, 0x4E, 0x47}, Kind{"png", "PNG image"}},
	{[]byte("GIF8"), Kind{"gif", "GIF image"}},
	{[]byte("BM"), Kind{"bmp", "BMP image"}},
	{[]byte{0x00, 0x00, 0x01, 0x00}, Kind{"ico", "ICO icon"}},
	{[]byte{0x50, 0x4B, 0x03, 0x04}, Kind{"zip", "ZIP archive"}},
	{[]byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}, Kind{"7z", "7z archive"}},
	{[]byte{0x1F, 0x8B}, Kind{"gz", "GZIP archive"}},
	{[]byte("BZh"), Kind{"bz2", "BZIP2 archive"}},
	{[]byte{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x01, 0x00}, Kind{"rar", "RAR 5 archive"}},
	{[]byte{0x52, 0x61, 0x72, 0x21}, Kind{"rar", "RAR 4 archive"}},
}

// Sniff matches the sample against known image and archive signatures.
// It only labels files; it never changes the text/binary decision.
func Sniff(sample []byte) Kind {
	// WebP shares the RIFF container with WAV and AVI
	if len(sample) >= 12 && bytes.Equal(sample[:4], []byte("RIFF")) && bytes.Equal(sample[8:12], []byte("WEBP")) {
		return Kind{"webp", "WebP image"}
	}
	for _, sig := range signatures {
		if bytes.HasPrefix(sample, sig.magic) {
			return sig.kind
		}
	}
	return Unknown
}

// SniffFile sniffs the first SampleSize bytes of the file at path.
func SniffFile(fsys vfs.FS, path string) (Kind, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return Unknown, apperr.IO("open", path, err)
	}
	defer file.Close()

	sample, err := Sample(file)
	if err != nil {
		return Unknown, apperr.IO("read", path, err)
	}
	return Sniff(sample), nil
}

// String returns the description, suffixed with the extension when known.
func (k Kind) String() string {
	if k.Ext == "" {
		return k.Desc
	}
	return k.Desc + " (." + k.Ext + ")"
}
