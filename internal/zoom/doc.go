// Package zoom implements the pixel magnifier: sampling a square region of a
// decoded image around a focus point and redrawing it at a magnification
// chosen by a zoom level between MinLevel and MaxLevel.
//
// # Sampling
//
// The sample half-extent is BaseSampleSize / max(1, level), so higher levels
// sample fewer source pixels. The sample rectangle is always clamped inside
// the pixel buffer; focus points near an edge slide the rectangle inward
// instead of reading outside the image.
//
// # Rendering Strategies
//
// The zoom level alone selects how a frame is drawn:
//   - Blit (level <= 10): the sample is scaled onto the output with bilinear
//     smoothing and a crosshair marks the centre.
//   - Unified (10 < level < 40): every source pixel becomes a solid square;
//     a grid outline is added above level 20.
//   - Subpixel (level 40): every square is split into red, green and blue
//     vertical bands, simulating the stripes of an LCD pixel.
//
// Every call clears and redraws the whole frame, so identical inputs always
// produce identical pixels.
package zoom
