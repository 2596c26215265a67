package imgclean_test

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filedrop/pkg/imgclean"
)

func testImage(t *testing.T) image.Image {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 60), G: uint8(y * 60), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestReencode_StripsTrailingPayload(t *testing.T) {
	t.Parallel()

	src := testImage(t)
	payload := append(encodePNG(t, src), []byte("hidden payload after IEND")...)

	var out bytes.Buffer
	require.NoError(t, imgclean.Reencode(bytes.NewReader(payload), &out, "png"))

	// The smuggled payload must be gone.
	assert.NotEqual(t, len(payload), out.Len())
	assert.NotContains(t, out.String(), "hidden payload")

	// Pixel content must survive the round trip.
	cleaned, err := png.Decode(&out)
	require.NoError(t, err)
	require.Equal(t, src.Bounds(), cleaned.Bounds())
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			wr, wg, wb, wa := src.At(x, y).RGBA()
			gr, gg, gb, ga := cleaned.At(x, y).RGBA()
			require.Equal(t, [4]uint32{wr, wg, wb, wa}, [4]uint32{gr, gg, gb, ga}, "pixel (%d,%d)", x, y)
		}
	}
}

func TestReencode_RejectsCorruptInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := imgclean.Reencode(bytes.NewReader([]byte("not an image at all")), &out, "png")
	assert.ErrorIs(t, err, imgclean.ErrDecodeFailed)
	assert.Zero(t, out.Len())
}

func TestReencode_RejectsFormatMismatch(t *testing.T) {
	t.Parallel()

	var gifBuf bytes.Buffer
	require.NoError(t, gif.Encode(&gifBuf, testImage(t), nil))

	var out bytes.Buffer
	err := imgclean.Reencode(&gifBuf, &out, "png")
	assert.ErrorIs(t, err, imgclean.ErrDecodeFailed)
}
