package classify

import "image"

// FaceDetector is the optional computer-vision capability. Implementations
// return one rectangle per detected face in frame coordinates. The
// classifier degrades to face-free metrics when only the nop detector is
// available, so requests never fail for lack of a vision backend.
type FaceDetector interface {
	DetectFaces(frame image.Image) []image.Rectangle
}

// NopFaceDetector is the neutral implementation: it never detects anything.
type NopFaceDetector struct{}

// DetectFaces implements FaceDetector.
func (NopFaceDetector) DetectFaces(image.Image) []image.Rectangle { return nil }
