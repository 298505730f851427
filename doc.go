// Package safewebp converts JPEG and PNG images to WebP through a checked
// boundary around external codec libraries.
//
// The package does not decode JPEG or PNG, and it does not encode WebP. It
// calls the libraries that do, inspects every result, and turns failures into
// typed errors instead of letting a bad input or a bad configuration reach
// the encoder. The pipeline has three stages:
//
//   - Decode turns an EncodedImage into a Picture, an intermediate NRGBA
//     buffer owned by the boundary.
//   - MakeConfig builds a validated EncodeConfig from a Preset and a quality
//     factor. It is the only way to obtain a config that Encode accepts.
//   - Encode consumes the Picture and returns the WebP bytes. The Picture's
//     storage is released whether encoding succeeds or fails.
//
// Basic usage:
//
//	pic, err := safewebp.Decode(safewebp.EncodedImage{Data: data, Format: safewebp.FormatPNG})
//	if err != nil {
//		return err
//	}
//	cfg, err := safewebp.MakeConfig(safewebp.PresetPhoto, 80)
//	if err != nil {
//		pic.Release()
//		return err
//	}
//	out, err := safewebp.Encode(pic, cfg)
//
// The WebP encoder behind a Boundary is selectable with WithBackend. The
// default backend is github.com/deepteams/webp, which honours every
// EncodeConfig field.
package safewebp
