//go:build !gocv

package frames

// Camera is unavailable without the gocv build tag.
type Camera struct{}

// OpenCamera always fails with ErrCaptureUnavailable.
func OpenCamera(device int) (*Camera, error) {
	return nil, ErrCaptureUnavailable
}

// Size returns zero.
func (c *Camera) Size() (width, height int) {
	return 0, 0
}

// Next always fails with ErrCaptureUnavailable.
func (c *Camera) Next() (*Mono8Frame, error) {
	return nil, ErrCaptureUnavailable
}

// Close does nothing.
func (c *Camera) Close() error {
	return nil
}
