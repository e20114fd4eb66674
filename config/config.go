// Package config reads collision scenes: two meshes, their placements and the collision
// parameters.
package config

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/srizzi88/SENSEI-sub038/collision"
	"github.com/srizzi88/SENSEI-sub038/mesh"
	"github.com/srizzi88/SENSEI-sub038/spatialmath"
	"github.com/srizzi88/SENSEI-sub038/utils"
)

// Config is the JSON form of a scene.
type Config struct {
	ConfigFilePath string            `json:"-"`
	Meshes         []MeshConfig      `json:"meshes"`
	Transforms     []TransformConfig `json:"transforms"`
	Collision      *collision.Config `json:"collision,omitempty"`
}

// MeshConfig describes one mesh: a sphere, an inline point/polygon list, or a list of blocks.
type MeshConfig struct {
	Name   string             `json:"name,omitempty"`
	Sphere *mesh.SphereConfig `json:"sphere,omitempty"`
	Points [][3]float64       `json:"points,omitempty"`
	Polys  [][]int64          `json:"polys,omitempty"`
	Blocks []MeshConfig       `json:"blocks,omitempty"`
}

// TransformConfig places a mesh either by a list of operations applied in order or by a row-major
// 4x4 matrix.
type TransformConfig struct {
	Operations []TransformOperation `json:"operations,omitempty"`
	Matrix     []float64            `json:"matrix,omitempty"`
}

// TransformOperation is a single translate, rotation (degrees about an axis) or scale.
type TransformOperation struct {
	Translate  *[3]float64 `json:"translate,omitempty"`
	RotateWXYZ *[4]float64 `json:"rotate_wxyz,omitempty"`
	Scale      *[3]float64 `json:"scale,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate() error {
	var err error
	if len(cfg.Meshes) != 2 {
		err = multierr.Append(err, utils.NewConfigValidationError("meshes",
			errors.Errorf("exactly two meshes are required, got %d", len(cfg.Meshes))))
	}
	for i := range cfg.Meshes {
		err = multierr.Append(err, cfg.Meshes[i].Validate(fmt.Sprintf("meshes.%d", i), true))
	}
	if len(cfg.Transforms) != 2 {
		err = multierr.Append(err, utils.NewConfigValidationError("transforms",
			errors.Errorf("exactly two transforms are required, got %d", len(cfg.Transforms))))
	}
	for i := range cfg.Transforms {
		err = multierr.Append(err, cfg.Transforms[i].Validate(fmt.Sprintf("transforms.%d", i)))
	}
	if cfg.Collision != nil {
		err = multierr.Append(err, cfg.Collision.Validate("collision"))
	}
	return err
}

// Validate ensures all parts of the config are valid.
func (cfg *MeshConfig) Validate(path string, allowBlocks bool) error {
	kinds := 0
	if cfg.Sphere != nil {
		kinds++
		if err := cfg.Sphere.Validate(); err != nil {
			return utils.NewConfigValidationError(path+".sphere", err)
		}
	}
	if cfg.Points != nil || cfg.Polys != nil {
		kinds++
		if len(cfg.Points) == 0 {
			return utils.NewConfigValidationFieldRequiredError(path, "points")
		}
		for i, poly := range cfg.Polys {
			if len(poly) < 3 {
				return utils.NewConfigValidationError(fmt.Sprintf("%s.polys.%d", path, i),
					errors.Errorf("a polygon needs at least 3 points, got %d", len(poly)))
			}
			for _, id := range poly {
				if id < 0 || int(id) >= len(cfg.Points) {
					return utils.NewConfigValidationError(fmt.Sprintf("%s.polys.%d", path, i),
						errors.Errorf("point id %d out of range [0, %d)", id, len(cfg.Points)))
				}
			}
		}
	}
	if cfg.Blocks != nil {
		kinds++
		if !allowBlocks {
			return utils.NewConfigValidationError(path, errors.New("blocks cannot be nested"))
		}
		if len(cfg.Blocks) == 0 {
			return utils.NewConfigValidationFieldRequiredError(path, "blocks")
		}
		for i := range cfg.Blocks {
			if err := cfg.Blocks[i].Validate(fmt.Sprintf("%s.blocks.%d", path, i), false); err != nil {
				return err
			}
		}
	}
	switch kinds {
	case 0:
		return utils.NewConfigValidationFieldRequiredError(path, "sphere")
	case 1:
		return nil
	default:
		return utils.NewConfigValidationError(path, errors.New("only one of sphere, points or blocks may be set"))
	}
}

// Dataset builds the described mesh.
func (cfg *MeshConfig) Dataset() (mesh.Dataset, error) {
	if cfg.Blocks != nil {
		blocks := make([]*mesh.PolyData, 0, len(cfg.Blocks))
		for i := range cfg.Blocks {
			pd, err := cfg.Blocks[i].polyData()
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, pd)
		}
		return mesh.CompositeMesh{Blocks: blocks}, nil
	}
	pd, err := cfg.polyData()
	if err != nil {
		return nil, err
	}
	return mesh.SingleMesh{Mesh: pd}, nil
}

func (cfg *MeshConfig) polyData() (*mesh.PolyData, error) {
	if cfg.Sphere != nil {
		return mesh.NewSphere(*cfg.Sphere)
	}
	pd := mesh.NewPolyData()
	points := make([]r3.Vector, len(cfg.Points))
	for i, p := range cfg.Points {
		points[i] = r3.Vector{X: p[0], Y: p[1], Z: p[2]}
	}
	pd.SetPoints(points)
	for _, poly := range cfg.Polys {
		pd.InsertNextCell(mesh.PolygonCell, poly...)
	}
	if err := pd.Validate(); err != nil {
		return nil, err
	}
	return pd, nil
}

// Validate ensures all parts of the config are valid.
func (cfg *TransformConfig) Validate(path string) error {
	if cfg.Matrix != nil {
		if cfg.Operations != nil {
			return utils.NewConfigValidationError(path, errors.New("only one of operations or matrix may be set"))
		}
		if len(cfg.Matrix) != 16 {
			return utils.NewConfigValidationError(path+".matrix",
				errors.Errorf("a matrix needs 16 values, got %d", len(cfg.Matrix)))
		}
		return nil
	}
	for i, op := range cfg.Operations {
		set := 0
		for _, present := range []bool{op.Translate != nil, op.RotateWXYZ != nil, op.Scale != nil} {
			if present {
				set++
			}
		}
		if set != 1 {
			return utils.NewConfigValidationError(fmt.Sprintf("%s.operations.%d", path, i),
				errors.New("exactly one of translate, rotate_wxyz or scale must be set"))
		}
	}
	return nil
}

// Placement resolves the configured transform. A matrix is returned as is; operations are
// composed into a Transform.
func (cfg *TransformConfig) Placement() Placement {
	if cfg.Matrix != nil {
		var values [16]float64
		copy(values[:], cfg.Matrix)
		m := spatialmath.MatrixFromRowMajor(values)
		return Placement{Matrix: &m}
	}
	t := spatialmath.NewTransform()
	for _, op := range cfg.Operations {
		switch {
		case op.Translate != nil:
			t.Translate(op.Translate[0], op.Translate[1], op.Translate[2])
		case op.RotateWXYZ != nil:
			t.RotateWXYZ(op.RotateWXYZ[0], op.RotateWXYZ[1], op.RotateWXYZ[2], op.RotateWXYZ[3])
		case op.Scale != nil:
			t.Scale(op.Scale[0], op.Scale[1], op.Scale[2])
		}
	}
	return Placement{Transform: t}
}

// Placement is either a Transform or a matrix.
type Placement struct {
	Transform *spatialmath.Transform
	Matrix    *mgl64.Mat4
}
