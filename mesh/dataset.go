package mesh

// Dataset is the closed set of inputs accepted by the collision filter: a single mesh or a
// composite of mesh blocks. Consumers resolve it once with Flatten.
type Dataset interface {
	isDataset()
}

// SingleMesh is a Dataset holding one mesh.
type SingleMesh struct {
	Mesh *PolyData
}

// CompositeMesh is a Dataset holding an ordered list of mesh blocks.
type CompositeMesh struct {
	Blocks []*PolyData
}

func (SingleMesh) isDataset()    {}
func (CompositeMesh) isDataset() {}

// Flatten resolves a Dataset into one mesh. A single mesh is returned as is. Composite blocks
// are appended in order, so the cells of block k follow all cells of blocks 0..k-1. Nil blocks are
// skipped. A nil or empty dataset returns nil.
func Flatten(ds Dataset) *PolyData {
	switch d := ds.(type) {
	case SingleMesh:
		return d.Mesh
	case *SingleMesh:
		if d == nil {
			return nil
		}
		return d.Mesh
	case CompositeMesh:
		return flattenBlocks(d.Blocks)
	case *CompositeMesh:
		if d == nil {
			return nil
		}
		return flattenBlocks(d.Blocks)
	default:
		return nil
	}
}

func flattenBlocks(blocks []*PolyData) *PolyData {
	var out *PolyData
	for _, block := range blocks {
		if block == nil {
			continue
		}
		if out == nil {
			out = NewPolyData()
		}
		out.Append(block)
	}
	return out
}
