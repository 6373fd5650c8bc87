//go:build gocv

package frames

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Camera reads live frames from a video device through OpenCV.
type Camera struct {
	vc    *gocv.VideoCapture
	frame gocv.Mat
	gray  gocv.Mat
}

// OpenCamera opens the video device with the given index.
func OpenCamera(device int) (*Camera, error) {
	vc, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", device, err)
	}
	return &Camera{
		vc:    vc,
		frame: gocv.NewMat(),
		gray:  gocv.NewMat(),
	}, nil
}

// Size returns the frame size reported by the device.
func (c *Camera) Size() (width, height int) {
	return int(c.vc.Get(gocv.VideoCaptureFrameWidth)), int(c.vc.Get(gocv.VideoCaptureFrameHeight))
}

// Next grabs one frame and converts it to MONO8.
func (c *Camera) Next() (*Mono8Frame, error) {
	if ok := c.vc.Read(&c.frame); !ok || c.frame.Empty() {
		return nil, fmt.Errorf("failed to read camera frame")
	}

	if c.frame.Channels() == 1 {
		c.frame.CopyTo(&c.gray)
	} else {
		gocv.CvtColor(c.frame, &c.gray, gocv.ColorBGRToGray)
	}

	return &Mono8Frame{
		Data:   c.gray.ToBytes(),
		Width:  c.gray.Cols(),
		Height: c.gray.Rows(),
	}, nil
}

// Close releases the device and buffers.
func (c *Camera) Close() error {
	c.frame.Close()
	c.gray.Close()
	return c.vc.Close()
}
