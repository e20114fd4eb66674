package collision

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"github.com/srizzi88/SENSEI-sub038/mesh"
	"github.com/srizzi88/SENSEI-sub038/obbtree"
	"github.com/srizzi88/SENSEI-sub038/spatialmath"
)

// Contact is one intersecting cell pair. Points are in the frame of role 0's placement.
type Contact struct {
	CellIDs [2]int64
	Points  []r3.Vector
}

// session is the state of one update: the meshes, the transform from mesh 1 to mesh 0 and the
// contacts found so far.
type session struct {
	mode      CollisionMode
	tolerance float64
	meshes    [2]*mesh.PolyData
	world     mgl64.Mat4
	transform *mgl64.Mat4

	pairs    []Contact
	contacts *mesh.PolyData

	bufA, bufB []r3.Vector
}

func newSession(cfg Config, meshes [2]*mesh.PolyData, world mgl64.Mat4, transform *mgl64.Mat4) *session {
	return &session{
		mode:      cfg.CollisionMode,
		tolerance: cfg.CellTolerance,
		meshes:    meshes,
		world:     world,
		transform: transform,
		contacts:  mesh.NewPolyData(),
	}
}

// visit tests every cell of leaf a against every cell of leaf b.
func (s *session) visit(a, b *obbtree.Node, _ *mgl64.Mat4) obbtree.VisitResult {
	maxPoints := s.mode.maxContactPoints()
	for _, cellA := range a.Cells {
		s.bufA = s.meshes[0].CellPoints(cellA, s.bufA)
		for _, cellB := range b.Cells {
			s.bufB = s.meshes[1].CellPoints(cellB, s.bufB)
			if s.transform != nil {
				for i, p := range s.bufB {
					s.bufB[i] = spatialmath.TransformPoint(*s.transform, p)
				}
			}
			hits := spatialmath.IntersectPolygons(s.bufA, s.bufB, s.tolerance, maxPoints)
			if len(hits) == 0 {
				continue
			}
			s.record(cellA, cellB, hits)
			if s.mode == FirstContact {
				return obbtree.Stop
			}
		}
	}
	return obbtree.Continue
}

func (s *session) record(cellA, cellB int64, hits []r3.Vector) {
	world := spatialmath.TransformPoints(s.world, hits)
	s.pairs = append(s.pairs, Contact{CellIDs: [2]int64{cellA, cellB}, Points: world})

	first := s.contacts.InsertNextPoint(world[0])
	if s.mode != AllContacts {
		s.contacts.InsertNextCell(mesh.VertexCell, first)
		return
	}
	last := first
	if len(world) > 1 {
		last = s.contacts.InsertNextPoint(world[len(world)-1])
	}
	s.contacts.InsertNextCell(mesh.LineCell, first, last)
}
