// Package collision finds the intersecting triangles of two meshes placed in a common frame.
package collision

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"
	"go.opencensus.io/trace"

	"github.com/srizzi88/SENSEI-sub038/logging"
	"github.com/srizzi88/SENSEI-sub038/mesh"
	"github.com/srizzi88/SENSEI-sub038/obbtree"
	"github.com/srizzi88/SENSEI-sub038/spatialmath"
)

// ContactCellsName is the name of the field array holding the contacting cell ids of each output.
const ContactCellsName = "ContactCells"

// ScalarsName is the name of the cell color array added when scalars are generated.
const ScalarsName = "collision_scalars"

// Filter detects contacts between two triangle meshes. Each mesh (role 0 or 1) is placed in the
// world by a Transform or a matrix. Update computes, for every pair of intersecting triangles, the
// pair of cell ids and the contact geometry.
type Filter struct {
	cfg    Config
	logger logging.Logger

	inputs     [2]mesh.Dataset
	transforms [2]*spatialmath.Transform
	matrices   [2]*mgl64.Mat4
	trees      [2]*obbtree.Tree

	outputs          [2]*mesh.PolyData
	contacts         *mesh.PolyData
	pairs            []Contact
	numberOfBoxTests int
}

// NewFilter returns a filter with the given parameters. A nil logger discards all output.
func NewFilter(cfg Config, logger logging.Logger) (*Filter, error) {
	if err := cfg.Validate("collision"); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewBlankLogger("collision")
	}
	f := &Filter{cfg: cfg, logger: logger}
	f.resetOutputs()
	return f, nil
}

// Config returns the filter parameters.
func (f *Filter) Config() Config {
	return f.cfg
}

// SetConfig replaces the filter parameters.
func (f *Filter) SetConfig(cfg Config) error {
	if err := cfg.Validate("collision"); err != nil {
		return err
	}
	f.cfg = cfg
	return nil
}

// SetInputData sets the mesh of a role.
func (f *Filter) SetInputData(role int, ds mesh.Dataset) error {
	if err := f.checkRole(role); err != nil {
		return err
	}
	f.inputs[role] = ds
	return nil
}

// SetTransform places the mesh of a role with a transform, replacing any matrix.
func (f *Filter) SetTransform(role int, t *spatialmath.Transform) error {
	if err := f.checkRole(role); err != nil {
		return err
	}
	f.transforms[role] = t
	f.matrices[role] = nil
	return nil
}

// SetMatrix places the mesh of a role with a matrix, replacing any transform.
func (f *Filter) SetMatrix(role int, m mgl64.Mat4) error {
	if err := f.checkRole(role); err != nil {
		return err
	}
	f.matrices[role] = &m
	f.transforms[role] = nil
	return nil
}

// Matrix returns the placement of a role, and false if none was set.
func (f *Filter) Matrix(role int) (mgl64.Mat4, bool, error) {
	if err := f.checkRole(role); err != nil {
		return mgl64.Mat4{}, false, err
	}
	switch {
	case f.transforms[role] != nil:
		return f.transforms[role].Matrix(), true, nil
	case f.matrices[role] != nil:
		return *f.matrices[role], true, nil
	default:
		return mgl64.Mat4{}, false, nil
	}
}

// Output returns the echo of a role's input from the last update, carrying the ContactCells field
// array (and collision_scalars when enabled).
func (f *Filter) Output(role int) (*mesh.PolyData, error) {
	if err := f.checkRole(role); err != nil {
		return nil, err
	}
	return f.outputs[role], nil
}

// ContactCells returns the ids of the contacting cells of a role, one entry per contact. Entry k of
// role 0 and entry k of role 1 form the k-th contacting pair.
func (f *Filter) ContactCells(role int) ([]int64, error) {
	out, err := f.Output(role)
	if err != nil {
		return nil, err
	}
	arr := out.FieldData(ContactCellsName)
	if arr == nil {
		return nil, nil
	}
	return arr.Values, nil
}

// ContactsOutput returns the contact geometry in the frame of role 0's placement: one line cell per
// contact in AllContacts mode, vertex cells otherwise.
func (f *Filter) ContactsOutput() *mesh.PolyData {
	return f.contacts
}

// NumberOfContacts returns the number of contacting cell pairs found by the last update.
func (f *Filter) NumberOfContacts() int {
	return len(f.pairs)
}

// NumberOfBoxTests returns the number of box pairs tested by the last update.
func (f *Filter) NumberOfBoxTests() int {
	return f.numberOfBoxTests
}

// Tree returns the OBB tree built for a role, or nil before the first update.
func (f *Filter) Tree(role int) (*obbtree.Tree, error) {
	if err := f.checkRole(role); err != nil {
		return nil, err
	}
	return f.trees[role], nil
}

func (f *Filter) resetOutputs() {
	f.outputs = [2]*mesh.PolyData{mesh.NewPolyData(), mesh.NewPolyData()}
	f.contacts = mesh.NewPolyData()
	f.pairs = nil
	f.numberOfBoxTests = 0
}

// Update runs collision detection on the current inputs.
//
// A missing input or placement is not an error: it is logged and the outputs are left empty.
// A mesh containing a cell other than a triangle fails with an UnsupportedCellTypeError, and
// a cell referencing a point outside the point array fails before any tree is built. Both
// trees are rebuilt on every call.
func (f *Filter) Update(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "collision::Update")
	defer span.End()

	f.resetOutputs()

	var meshes [2]*mesh.PolyData
	var matrices [2]mgl64.Mat4
	for role := 0; role < 2; role++ {
		if f.inputs[role] != nil {
			meshes[role] = mesh.Flatten(f.inputs[role])
		}
		if meshes[role] == nil {
			f.logger.Warnw("cannot update collision", "role", role, "error", ErrMissingInput)
			return nil
		}
		m, ok, err := f.Matrix(role)
		if err != nil {
			return err
		}
		if !ok {
			f.logger.Warnw("cannot update collision", "role", role, "error", ErrMissingTransform)
			return nil
		}
		matrices[role] = m
	}
	for role := 0; role < 2; role++ {
		if err := meshes[role].Validate(); err != nil {
			f.logger.Errorw("invalid collision input", "role", role, "error", err)
			return err
		}
		if err := meshes[role].CheckTriangles(); err != nil {
			f.logger.Errorw("unsupported cell in collision input", "role", role, "error", err)
			return err
		}
	}

	for role := 0; role < 2; role++ {
		out := meshes[role].ShallowCopy()
		out.SetFieldData(&mesh.IDArray{Name: ContactCellsName})
		f.outputs[role] = out
	}

	for role := 0; role < 2; role++ {
		if err := f.buildTree(ctx, role, meshes[role]); err != nil {
			return err
		}
	}
	if meshes[0].NumberOfCells() == 0 || meshes[1].NumberOfCells() == 0 {
		f.logger.CDebugw(ctx, "collision input has no cells, nothing to test")
		return nil
	}

	// maps role 1 coordinates into role 0 coordinates
	relative := spatialmath.RelativeMatrix(matrices[0], matrices[1])
	var transform *mgl64.Mat4
	if !spatialmath.IsIdentity(relative, 0) {
		transform = &relative
	}

	s := newSession(f.cfg, meshes, matrices[0], transform)
	res, err := f.trees[0].IntersectWithOBBTree(f.trees[1], transform, s.visit)
	if err != nil {
		return err
	}

	f.numberOfBoxTests = res.BoxTests
	f.pairs = s.pairs
	f.contacts = s.contacts
	for role := 0; role < 2; role++ {
		arr := f.outputs[role].FieldData(ContactCellsName)
		for _, pair := range s.pairs {
			arr.Values = append(arr.Values, pair.CellIDs[role])
		}
	}
	if f.cfg.GenerateScalars {
		f.generateScalars()
	}

	f.logger.CDebugw(ctx, "collision update finished",
		"mode", f.cfg.CollisionMode.String(),
		"boxTests", f.numberOfBoxTests,
		"contacts", len(f.pairs),
		"stopped", res.Stopped)
	return nil
}

func (f *Filter) buildTree(ctx context.Context, role int, pd *mesh.PolyData) error {
	// Points may have been edited in place without a Modified call, so the tree is always rebuilt.
	tree := obbtree.NewTree(pd, f.logger.Sublogger("obbtree"))
	if err := tree.SetNumberOfCellsPerNode(f.cfg.NumberOfCellsPerNode); err != nil {
		return err
	}
	tree.SetMaxLevel(f.cfg.MaxLevel)
	tree.SetTolerance(f.cfg.BoxTolerance)
	if err := tree.ForceBuildLocator(ctx); err != nil {
		return err
	}
	f.trees[role] = tree
	return nil
}
