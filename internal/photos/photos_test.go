package photos

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instafilter/internal/core"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func sample() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: uint8(60 * x), G: uint8(80 * y), B: 90, A: 255})
		}
	}
	return img
}

// saveAndWait runs Save and collects every callback delivered within a short window
func saveAndWait(t *testing.T, lib *Library, img image.Image) []SaveResult {
	t.Helper()
	results := make(chan SaveResult, 4)
	lib.Save(img, func(r SaveResult) { results <- r })

	var got []SaveResult
	select {
	case r := <-results:
		got = append(got, r)
	case <-time.After(5 * time.Second):
		t.Fatal("save callback never fired")
	}
	select {
	case r := <-results:
		got = append(got, r)
	case <-time.After(100 * time.Millisecond):
	}
	return got
}

func TestLibrarySaveWritesPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "library")
	lib := NewLibrary(dir, quietLogger())

	results := saveAndWait(t, lib, sample())
	require.Len(t, results, 1)
	res := results[0]
	require.True(t, res.OK(), res.String())
	assert.Equal(t, dir, filepath.Dir(res.Path))
	assert.True(t, strings.HasPrefix(filepath.Base(res.Path), "instafilter-"))

	f, err := os.Open(res.Path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(4, 3), decoded.Bounds().Size())
}

func TestLibrarySaveUniqueNames(t *testing.T) {
	lib := NewLibrary(t.TempDir(), quietLogger())
	first := saveAndWait(t, lib, sample())[0]
	second := saveAndWait(t, lib, sample())[0]
	require.True(t, first.OK())
	require.True(t, second.OK())
	assert.NotEqual(t, first.Path, second.Path)
}

func TestLibrarySaveFailsWhenDirIsAFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	results := saveAndWait(t, NewLibrary(blocker, quietLogger()), sample())
	require.Len(t, results, 1)
	assert.False(t, results[0].OK())
	assert.Error(t, results[0].Reason)
	assert.Empty(t, results[0].Path)
}

func TestLibrarySaveNilImage(t *testing.T) {
	var got []SaveResult
	NewLibrary(t.TempDir(), quietLogger()).Save(nil, func(r SaveResult) { got = append(got, r) })

	require.Len(t, got, 1, "nil image reports synchronously")
	assert.False(t, got[0].OK())
	assert.ErrorIs(t, got[0].Reason, core.ErrNoImage)
}

func TestSaveResultVariants(t *testing.T) {
	ok := Saved("/tmp/a.png")
	assert.True(t, ok.OK())
	assert.Equal(t, "saved to /tmp/a.png", ok.String())

	bad := Failed(nil)
	assert.False(t, bad.OK())
	assert.Error(t, bad.Reason)
}

func TestLoaderDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, sample()))

	img, err := NewLoader(quietLogger()).Decode(&buf, "photo.PNG")
	require.NoError(t, err)
	assert.Equal(t, image.Pt(4, 3), img.Bounds().Size())

	r, g, b, _ := img.At(3, 2).RGBA()
	assert.Equal(t, [3]uint32{180, 160, 90}, [3]uint32{r >> 8, g >> 8, b >> 8})
}

func TestLoaderLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, sample()))
	require.NoError(t, f.Close())

	img, err := NewLoader(quietLogger()).Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(4, 3), img.Bounds().Size())
}

func TestLoaderRejects(t *testing.T) {
	l := NewLoader(quietLogger())

	_, err := l.Decode(strings.NewReader("GIF89a"), "anim.gif")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = l.Load("notes.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = l.Decode(strings.NewReader(""), "empty.png")
	assert.ErrorIs(t, err, core.ErrNoImage)

	_, err = l.Decode(strings.NewReader("definitely not a png"), "broken.png")
	assert.Error(t, err)
}

func TestIsSupported(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.tif", "e.tiff", "f.bmp"} {
		assert.True(t, IsSupported(name), name)
	}
	for _, name := range []string{"a.gif", "b", "c.png.txt", ""} {
		assert.False(t, IsSupported(name), name)
	}
	assert.Len(t, SupportedExtensions(), 6)
}
