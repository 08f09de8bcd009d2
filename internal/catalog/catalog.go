package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ThatOtherAndrew/shapes/internal/models"
	"github.com/ThatOtherAndrew/shapes/internal/render"
)

var ErrBuffer = errors.New("failed to create vertex buffers")

var (
	TrianglePositions = []float32{0.0, 1.0, -1.0, -1.0, 1.0, -1.0}
	SquarePositions   = []float32{-1, 1, -1, -1, 1, -1, -1, 1, 1, -1, 1, 1}

	// HelloTrianglePositions is the small triangle of the static demo, half
	// the size of TrianglePositions and centred on the origin.
	HelloTrianglePositions = []float32{0.0, 0.5, -0.5, -0.5, 0.5, -0.5}
)

var (
	RGBTriangleColors = []uint8{
		255, 0, 0,
		0, 255, 0,
		0, 0, 255,
	}
	FieryTriangleColors = []uint8{
		229, 47, 15,
		246, 206, 29,
		233, 154, 26,
	}
	IndigoGradientSquareColors = []uint8{
		167, 153, 255,
		88, 62, 122,
		88, 62, 122,
		167, 153, 255,
		88, 62, 122,
		167, 153, 255,
	}
	GraySquareColors = []uint8{
		45, 45, 45,
		45, 45, 45,
		45, 45, 45,
		45, 45, 45,
		45, 45, 45,
		45, 45, 45,
	}
	IndigoTriangleColors = []uint8{
		76, 0, 130,
		76, 0, 130,
		76, 0, 130,
	}
)

// Entry is a catalog row before upload.
type Entry struct {
	Name      string
	Positions []float32
	Colors    []uint8
}

// Shapes is the set the animated demo picks from.
func Shapes() []Entry {
	return []Entry{
		{Name: "rgb triangle", Positions: TrianglePositions, Colors: RGBTriangleColors},
		{Name: "fiery triangle", Positions: TrianglePositions, Colors: FieryTriangleColors},
		{Name: "indigo square", Positions: SquarePositions, Colors: IndigoGradientSquareColors},
		{Name: "gray square", Positions: SquarePositions, Colors: GraySquareColors},
	}
}

// Build uploads every entry once. All entries are attempted so the error
// names every one that failed, not just the first.
func Build(r render.Renderer, entries []Entry) ([]*models.Geometry, error) {
	geometries := make([]*models.Geometry, 0, len(entries))
	var failed []string
	var errs []error

	for _, e := range entries {
		handle, err := r.CreateDrawable(e.Positions, e.Colors)
		if err != nil {
			failed = append(failed, e.Name)
			errs = append(errs, err)
			continue
		}
		geometries = append(geometries, &models.Geometry{
			Name:      e.Name,
			Positions: e.Positions,
			Colors:    e.Colors,
			Vertices:  handle.VertexCount(),
			Handle:    handle,
		})
	}

	if len(failed) > 0 {
		return nil, fmt.Errorf("%w (%s): %w", ErrBuffer, strings.Join(failed, ", "), errors.Join(errs...))
	}
	return geometries, nil
}
