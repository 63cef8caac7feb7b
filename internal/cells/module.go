package cells

import (
	"math"

	"github.com/banshee-data/sparseccl/internal/container"
)

// EventID identifies one recorded event.
type EventID = uint64

// GeometryID identifies a detector module in the geometry description.
type GeometryID = uint64

// MaxChannel is the largest representable channel identifier.
const MaxChannel ChannelID = math.MaxInt64

// Transform is a module placement, 4x4 row-major
// (m00..m03, m10..m13, m20..m23, m30..m33). Clustering never reads it.
type Transform [16]float64

// IdentityTransform places a module at the origin with no rotation.
var IdentityTransform = Transform{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// PixelData carries the segmentation of a pixel module: the centre of the
// lowest channel along each axis and the pitch between channels.
type PixelData struct {
	MinCenter0 float64 `json:"min_center0"`
	MinCenter1 float64 `json:"min_center1"`
	Pitch0     float64 `json:"pitch0"`
	Pitch1     float64 `json:"pitch1"`
}

// DefaultPixelData is the segmentation used when the geometry does not
// provide one.
var DefaultPixelData = PixelData{MinCenter0: -8.425, MinCenter1: -36.025, Pitch0: 0.05, Pitch1: 0.05}

// Module is the header describing every cell of one detector module in one
// event. It is handled separately from the cells themselves so the data can
// be laid out as parallel arrays.
type Module struct {
	Event     EventID    `json:"event"`
	Geometry  GeometryID `json:"geometry"`
	Placement Transform  `json:"placement"`

	// Range0 and Range1 hold {min, max} channel bounds. Metadata only.
	Range0 [2]ChannelID `json:"range0"`
	Range1 [2]ChannelID `json:"range1"`

	Pixel PixelData `json:"pixel"`
}

// NewModule returns a header with empty channel ranges, identity placement
// and the default pixel segmentation.
func NewModule(event EventID, geometry GeometryID) Module {
	return Module{
		Event:     event,
		Geometry:  geometry,
		Placement: IdentityTransform,
		Range0:    [2]ChannelID{MaxChannel, 0},
		Range1:    [2]ChannelID{MaxChannel, 0},
		Pixel:     DefaultPixelData,
	}
}

// Extend widens the channel ranges to include c.
func (m *Module) Extend(c Cell) {
	m.Range0[0] = min(m.Range0[0], c.Channel0)
	m.Range0[1] = max(m.Range0[1], c.Channel0)
	m.Range1[0] = min(m.Range1[0], c.Channel1)
	m.Range1[1] = max(m.Range1[1], c.Channel1)
}

// Container pairs each module header with that module's cells.
type Container = container.Paired[Module, []Cell]

// NewContainer returns an empty cell container with room for n modules.
func NewContainer(n int) *Container {
	return container.New[Module, []Cell](n)
}
