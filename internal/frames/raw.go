package frames

import (
	"encoding/base64"
	"fmt"
)

// DecodeRaw decodes a base64 MONO8 buffer. When width and height are both
// positive the buffer length must equal width*height.
func DecodeRaw(encoded string, width, height int) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame data: %w", err)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if width > 0 && height > 0 && len(data) != width*height {
		return nil, fmt.Errorf("frame data is %d bytes, want %d for %dx%d", len(data), width*height, width, height)
	}
	return data, nil
}
