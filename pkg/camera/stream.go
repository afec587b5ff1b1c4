package camera

import (
	"bytes"
	"image/jpeg"

	"github.com/disintegration/imaging"

	"github.com/menta2k/light-detector/pkg/types"
)

// Stream encoding defaults for the MJPEG camera feed.
const (
	StreamWidth   = 640
	StreamHeight  = 480
	StreamQuality = 80
)

// EncodeJPEG resizes a frame to the streaming resolution and encodes it as
// JPEG, ready for one part of a multipart MJPEG response.
func EncodeJPEG(frame *types.Frame, quality int) ([]byte, error) {
	if frame.IsEmpty() {
		return nil, ErrNoFrame
	}
	if quality <= 0 || quality > 100 {
		quality = StreamQuality
	}

	img := frame.Image()
	resized := imaging.Resize(img, StreamWidth, StreamHeight, imaging.Linear)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
