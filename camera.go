package skelannot

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// PinholeCamera is a Camera backed by a 3x4 projection matrix mapping
// homogeneous world coordinates to image coordinates.  It is provided for
// examples and offline dataset generation, engine integrations normally
// supply their own Camera implementation
type PinholeCamera struct {
	proj        *mat.Dense
	frameHeight int
}

// NewPinholeCamera creates a camera from the given 3x4 projection matrix
// and rendered frame height in pixels
func NewPinholeCamera(proj *mat.Dense, frameHeight int) (*PinholeCamera, error) {

	rows, cols := proj.Dims()

	if rows != 3 || cols != 4 {
		return nil, fmt.Errorf("projection matrix must be 3x4, got %dx%d", rows, cols)
	}

	if frameHeight <= 0 {
		return nil, fmt.Errorf("frame height must be positive, got %d", frameHeight)
	}

	cpy := mat.NewDense(3, 4, nil)
	cpy.Copy(proj)

	return &PinholeCamera{
		proj:        cpy,
		frameHeight: frameHeight,
	}, nil
}

// WorldToScreen projects the world space point through the projection
// matrix and performs the perspective divide.  Points on the camera plane
// (w == 0) project to the origin
func (c *PinholeCamera) WorldToScreen(p r3.Vec) (float64, float64) {

	world := mat.NewVecDense(4, []float64{p.X, p.Y, p.Z, 1})

	var screen mat.VecDense
	screen.MulVec(c.proj, world)

	w := screen.AtVec(2)

	if w == 0 {
		return 0, 0
	}

	return screen.AtVec(0) / w, screen.AtVec(1) / w
}

// FrameHeight returns the rendered frame height in pixels
func (c *PinholeCamera) FrameHeight() int {
	return c.frameHeight
}
