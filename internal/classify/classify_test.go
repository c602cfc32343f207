package classify

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dircmp/internal/apperr"
	"dircmp/internal/vfs"
)

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestFile_EmptyIsText(t *testing.T) {
	isText, err := File(vfs.OS{}, writeFile(t, nil))
	require.NoError(t, err)
	assert.True(t, isText)
}

func TestFile_PrintableIsText(t *testing.T) {
	isText, err := File(vfs.OS{}, writeFile(t, []byte("package main\n\nfunc main() {}\n")))
	require.NoError(t, err)
	assert.True(t, isText)
}

func TestFile_NULPositions(t *testing.T) {
	for _, pos := range []int{0, 1, 511, SampleSize - 1} {
		data := bytes.Repeat([]byte("a"), 2048)
		data[pos] = 0
		isText, err := File(vfs.OS{}, writeFile(t, data))
		require.NoError(t, err)
		assert.False(t, isText, "NUL at offset %d should be binary", pos)
	}
}

func TestFile_NULBeyondSampleIsText(t *testing.T) {
	data := bytes.Repeat([]byte("a"), 2048)
	data[SampleSize] = 0

	isText, err := File(vfs.OS{}, writeFile(t, data))
	require.NoError(t, err)
	assert.True(t, isText, "only the first 1024 bytes are inspected")
}

func TestFile_ShortBinary(t *testing.T) {
	isText, err := File(vfs.OS{}, writeFile(t, []byte{'x', 0}))
	require.NoError(t, err)
	assert.False(t, isText)
}

func TestFile_Missing(t *testing.T) {
	_, err := File(vfs.OS{}, "/nonexistent/sample")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrIO))
}

func TestReader_LargeText(t *testing.T) {
	isText, err := Reader(strings.NewReader(strings.Repeat("line\n", 10000)))
	require.NoError(t, err)
	assert.True(t, isText)
}

func TestIsText_TruncatesSample(t *testing.T) {
	data := bytes.Repeat([]byte("z"), SampleSize+10)
	data[SampleSize+5] = 0
	assert.True(t, IsText(data))
}

func TestSniff(t *testing.T) {
	cases := []struct {
		sample []byte
		ext    string
	}{
		{[]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A}, "png"},
		{[]byte{0xFF, 0xD8, 0xFF, 0xE0}, "jpg"},
		{[]byte("GIF89a"), "gif"},
		{[]byte("RIFF\x10\x00\x00\x00WEBPVP8 "), "webp"},
		{[]byte{'P', 'K', 0x03, 0x04, 0x14}, "zip"},
		{[]byte{0x1F, 0x8B, 0x08}, "gz"},
		{[]byte{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x01, 0x00}, "rar"},
		{[]byte{0x00, 0x01, 0x02}, ""},
		{nil, ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ext, Sniff(tc.sample).Ext, "sample % x", tc.sample)
	}

	assert.Equal(t, "RAR 5 archive", Sniff([]byte{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x01, 0x00}).Desc)
	assert.Equal(t, "RAR 4 archive", Sniff([]byte{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x00}).Desc)
	assert.Equal(t, "PNG image (.png)", Sniff([]byte{0x89, 'P', 'N', 'G'}).String())
	assert.Equal(t, "binary data", Unknown.String())
}

func TestSniffFile(t *testing.T) {
	path := writeFile(t, append([]byte{0x1F, 0x8B, 0x08, 0x00}, bytes.Repeat([]byte{0x00}, 2000)...))

	kind, err := SniffFile(vfs.OS{}, path)
	require.NoError(t, err)
	assert.Equal(t, "GZIP archive (.gz)", kind.String())

	_, err = SniffFile(vfs.OS{}, filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.Is(err, apperr.ErrIO))
}
