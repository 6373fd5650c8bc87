// Package frames produces MONO8 frame buffers for the histogram host.
//
// Frames come from three places:
//   - image files on disk, decoded with disintegration/imaging and converted
//     to 8-bit grayscale (FrameCache, DirSource)
//   - raw base64 buffers sent by MCP clients (DecodeRaw)
//   - a live camera through gocv, when built with the gocv tag (Camera)
//
// Every buffer is tightly packed, row-major, one byte per pixel.
//
// # Thread Safety
//
// FrameCache is safe for concurrent use. Sources are not; a source is
// read by a single frame loop.
package frames
