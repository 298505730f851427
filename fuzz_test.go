package safewebp

import (
	"image/color"
	"testing"
)

// FuzzDecode checks that no input makes the boundary panic or hand out a
// picture that violates the dimension invariant.
func FuzzDecode(f *testing.F) {
	f.Add(solidPNG(f, color.NRGBA{R: 255, A: 255}), uint8(FormatPNG))
	f.Add(pngBytes(f, gradient(7, 5, true)), uint8(FormatPNG))
	f.Add(jpegBytes(f, gradient(9, 9, false)), uint8(FormatJPEG))
	f.Add([]byte{0xff, 0xd8, 0xff}, uint8(FormatJPEG))
	f.Add([]byte{}, uint8(FormatUnknown))

	f.Fuzz(func(t *testing.T, data []byte, format uint8) {
		pic, err := Decode(EncodedImage{Data: data, Format: Format(format % 3)})
		if err != nil {
			if pic != nil {
				t.Fatal("picture returned alongside error")
			}
			return
		}
		defer pic.Release()
		if pic.Width() <= 0 || pic.Height() <= 0 || pic.Width() > MaxDimension || pic.Height() > MaxDimension {
			t.Fatalf("decoded picture has dimensions %dx%d", pic.Width(), pic.Height())
		}
	})
}
