// Package mesh holds the polygonal mesh model consumed and produced by the collision packages.
package mesh

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/srizzi88/SENSEI-sub038/spatialmath"
)

// CellType distinguishes the cell arrays of a PolyData.
type CellType int

const (
	// VertexCell is a single point.
	VertexCell CellType = iota
	// LineCell is a segment between two points.
	LineCell
	// PolygonCell is a planar polygon with three or more points.
	PolygonCell
)

// IDArray is a named array of ids stored in field data.
type IDArray struct {
	Name   string
	Values []int64
}

// ColorArray is a named per-cell array of RGBA colors.
type ColorArray struct {
	Name   string
	Values [][4]uint8
}

// PolyData is a polygonal mesh: a point array and three cell arrays (verts, lines, polys).
// Cell ids number the verts first, then the lines, then the polys.
type PolyData struct {
	TimeStamp

	points []r3.Vector
	verts  [][]int64
	lines  [][]int64
	polys  [][]int64

	fieldData map[string]*IDArray
	cellData  map[string]*ColorArray
}

// NewPolyData returns an empty mesh.
func NewPolyData() *PolyData {
	pd := &PolyData{
		fieldData: map[string]*IDArray{},
		cellData:  map[string]*ColorArray{},
	}
	pd.Modified()
	return pd
}

// NewTriangleMesh returns a mesh with the given points and triangle connectivity.
func NewTriangleMesh(points []r3.Vector, triangles [][3]int64) *PolyData {
	pd := NewPolyData()
	pd.points = append(pd.points, points...)
	for _, tri := range triangles {
		pd.polys = append(pd.polys, []int64{tri[0], tri[1], tri[2]})
	}
	return pd
}

// Points returns the point array. It must not be modified without calling Modified.
func (pd *PolyData) Points() []r3.Vector {
	return pd.points
}

// SetPoints replaces the point array.
func (pd *PolyData) SetPoints(points []r3.Vector) {
	pd.points = points
	pd.Modified()
}

// NumberOfPoints returns the number of points.
func (pd *PolyData) NumberOfPoints() int {
	return len(pd.points)
}

// Point returns the point with the given id.
func (pd *PolyData) Point(id int64) r3.Vector {
	return pd.points[id]
}

// InsertNextPoint appends a point and returns its id.
func (pd *PolyData) InsertNextPoint(pt r3.Vector) int64 {
	pd.points = append(pd.points, pt)
	pd.Modified()
	return int64(len(pd.points) - 1)
}

// InsertNextCell appends a cell of the given type and returns its id within that cell array.
func (pd *PolyData) InsertNextCell(cellType CellType, pointIDs ...int64) int64 {
	ids := append([]int64(nil), pointIDs...)
	var n int
	switch cellType {
	case VertexCell:
		pd.verts = append(pd.verts, ids)
		n = len(pd.verts)
	case LineCell:
		pd.lines = append(pd.lines, ids)
		n = len(pd.lines)
	case PolygonCell:
		pd.polys = append(pd.polys, ids)
		n = len(pd.polys)
	}
	pd.Modified()
	return int64(n - 1)
}

// Verts returns the vertex cells.
func (pd *PolyData) Verts() [][]int64 {
	return pd.verts
}

// Lines returns the line cells.
func (pd *PolyData) Lines() [][]int64 {
	return pd.lines
}

// Polys returns the polygon cells.
func (pd *PolyData) Polys() [][]int64 {
	return pd.polys
}

// NumberOfCells returns the total number of cells of every type.
func (pd *PolyData) NumberOfCells() int {
	return len(pd.verts) + len(pd.lines) + len(pd.polys)
}

// CellPointIDs returns the point ids of a cell.
func (pd *PolyData) CellPointIDs(cellID int64) []int64 {
	id := int(cellID)
	if id < len(pd.verts) {
		return pd.verts[id]
	}
	id -= len(pd.verts)
	if id < len(pd.lines) {
		return pd.lines[id]
	}
	id -= len(pd.lines)
	return pd.polys[id]
}

// CellType returns the type of a cell.
func (pd *PolyData) CellType(cellID int64) CellType {
	id := int(cellID)
	switch {
	case id < len(pd.verts):
		return VertexCell
	case id < len(pd.verts)+len(pd.lines):
		return LineCell
	default:
		return PolygonCell
	}
}

// CellPoints appends the positions of the points of a cell to buf and returns it.
func (pd *PolyData) CellPoints(cellID int64, buf []r3.Vector) []r3.Vector {
	buf = buf[:0]
	for _, pid := range pd.CellPointIDs(cellID) {
		buf = append(buf, pd.points[pid])
	}
	return buf
}

// CellCentroid returns the mean of the points of a cell.
func (pd *PolyData) CellCentroid(cellID int64) r3.Vector {
	var c r3.Vector
	ids := pd.CellPointIDs(cellID)
	for _, pid := range ids {
		c = c.Add(pd.points[pid])
	}
	return c.Mul(1 / float64(len(ids)))
}

// Bounds returns the axis-aligned bounds of the points.
func (pd *PolyData) Bounds() spatialmath.Bounds {
	return spatialmath.NewBoundsFromPoints(pd.points...)
}

// Validate checks that every cell references existing points.
func (pd *PolyData) Validate() error {
	numCells := pd.NumberOfCells()
	for cellID := int64(0); cellID < int64(numCells); cellID++ {
		for _, pid := range pd.CellPointIDs(cellID) {
			if pid < 0 || int(pid) >= len(pd.points) {
				return newPointOutOfRangeError(cellID, pid, len(pd.points))
			}
		}
	}
	return nil
}

// CheckTriangles returns an UnsupportedCellTypeError for the first cell that is not a triangle.
func (pd *PolyData) CheckTriangles() error {
	numCells := pd.NumberOfCells()
	for cellID := int64(0); cellID < int64(numCells); cellID++ {
		ids := pd.CellPointIDs(cellID)
		if pd.CellType(cellID) != PolygonCell || len(ids) != 3 {
			return NewUnsupportedCellTypeError(cellID, len(ids))
		}
	}
	return nil
}

// Triangle returns a triangle cell as a spatialmath.Triangle.
func (pd *PolyData) Triangle(cellID int64) (*spatialmath.Triangle, error) {
	if cellID < 0 || int(cellID) >= pd.NumberOfCells() {
		return nil, newCellOutOfRangeError(cellID, pd.NumberOfCells())
	}
	ids := pd.CellPointIDs(cellID)
	if len(ids) != 3 {
		return nil, NewUnsupportedCellTypeError(cellID, len(ids))
	}
	return spatialmath.NewTriangle(pd.points[ids[0]], pd.points[ids[1]], pd.points[ids[2]]), nil
}

// FieldData returns the named id array, or nil.
func (pd *PolyData) FieldData(name string) *IDArray {
	return pd.fieldData[name]
}

// SetFieldData stores an id array under its name.
func (pd *PolyData) SetFieldData(arr *IDArray) {
	pd.fieldData[arr.Name] = arr
}

// CellData returns the named per-cell color array, or nil.
func (pd *PolyData) CellData(name string) *ColorArray {
	return pd.cellData[name]
}

// SetCellData stores a per-cell color array under its name.
func (pd *PolyData) SetCellData(arr *ColorArray) {
	pd.cellData[arr.Name] = arr
}

// ShallowCopy returns a mesh sharing this mesh's points and cells but with its own, empty, field
// and cell data.
func (pd *PolyData) ShallowCopy() *PolyData {
	out := NewPolyData()
	out.points = pd.points
	out.verts = pd.verts
	out.lines = pd.lines
	out.polys = pd.polys
	return out
}

// Append adds the points and cells of other to this mesh, offsetting point ids.
func (pd *PolyData) Append(other *PolyData) {
	offset := int64(len(pd.points))
	pd.points = append(pd.points, other.points...)
	shift := func(cells [][]int64) [][]int64 {
		out := make([][]int64, len(cells))
		for i, cell := range cells {
			out[i] = make([]int64, len(cell))
			for j, pid := range cell {
				out[i][j] = pid + offset
			}
		}
		return out
	}
	pd.verts = append(pd.verts, shift(other.verts)...)
	pd.lines = append(pd.lines, shift(other.lines)...)
	pd.polys = append(pd.polys, shift(other.polys)...)
	pd.Modified()
}

func (pd *PolyData) String() string {
	return fmt.Sprintf("PolyData | Points: %d | Verts: %d | Lines: %d | Polys: %d",
		len(pd.points), len(pd.verts), len(pd.lines), len(pd.polys))
}
