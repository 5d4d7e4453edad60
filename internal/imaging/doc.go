// Package imaging provides the image sources and pixel helpers shared by the
// screen widgets.
//
// It covers three concerns:
//   - Loading sample images from disk, with MIME validation and a fallback to
//     procedurally generated placeholder images when a source is missing,
//     broken, or slow to decode.
//   - Drawing primitives (filled rectangles, outlines, crosshairs, grid lines)
//     that operate on *image.RGBA with integer pixel alignment, so renders
//     are deterministic.
//   - Encoding results as base64 PNG for transport over MCP.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For rectangles, Min is inclusive and Max is exclusive
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Placeholder generators
// return a fresh image on every call. Drawing helpers mutate their target and
// must not be called concurrently on the same image.
//
// # Color Representation
//
// Colors are returned in multiple formats for flexibility:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Error Handling
//
// Selecting a file that is not an image returns ErrNotImage; callers surface
// it to the user and keep their current state. Every other load failure is
// absorbed by Loader.Load, which logs the cause and substitutes the
// placeholder image.
package imaging
