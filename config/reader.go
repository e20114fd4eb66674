package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"github.com/srizzi88/SENSEI-sub038/collision"
	"github.com/srizzi88/SENSEI-sub038/logging"
	"github.com/srizzi88/SENSEI-sub038/mesh"
)

// Scene is a processed config: built meshes, resolved placements and collision parameters.
type Scene struct {
	ConfigFilePath string
	Names          [2]string
	Inputs         [2]mesh.Dataset
	Placements     [2]Placement
	Collision      collision.Config
}

// Read reads a scene from the given file. Environment variables in the file are expanded first.
func Read(
	ctx context.Context,
	filePath string,
	logger logging.Logger,
) (*Scene, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(ctx, filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a scene from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(
	ctx context.Context,
	originalPath string,
	r io.Reader,
	logger logging.Logger,
) (*Scene, error) {
	unprocessedConfig := Config{
		ConfigFilePath: originalPath,
	}
	if err := json.NewDecoder(r).Decode(&unprocessedConfig); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Config from json")
	}
	scene, err := processConfig(&unprocessedConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to process Config")
	}
	logger.CDebugw(ctx, "read collision scene",
		"path", originalPath,
		"cells0", mesh.Flatten(scene.Inputs[0]).NumberOfCells(),
		"cells1", mesh.Flatten(scene.Inputs[1]).NumberOfCells(),
		"mode", scene.Collision.CollisionMode.String())
	return scene, nil
}

func processConfig(cfg *Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scene := &Scene{ConfigFilePath: cfg.ConfigFilePath, Collision: collision.DefaultConfig()}
	if cfg.Collision != nil {
		scene.Collision = *cfg.Collision
	}
	for role := 0; role < 2; role++ {
		ds, err := cfg.Meshes[role].Dataset()
		if err != nil {
			return nil, errors.Wrapf(err, "error building mesh %d", role)
		}
		scene.Names[role] = cfg.Meshes[role].Name
		scene.Inputs[role] = ds
		scene.Placements[role] = cfg.Transforms[role].Placement()
	}
	return scene, nil
}

// NewFilter returns a collision filter with the scene's inputs and placements set.
func (s *Scene) NewFilter(logger logging.Logger) (*collision.Filter, error) {
	f, err := collision.NewFilter(s.Collision, logger)
	if err != nil {
		return nil, err
	}
	for role := 0; role < 2; role++ {
		if err := f.SetInputData(role, s.Inputs[role]); err != nil {
			return nil, err
		}
		p := s.Placements[role]
		if p.Matrix != nil {
			err = f.SetMatrix(role, *p.Matrix)
		} else {
			err = f.SetTransform(role, p.Transform)
		}
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}
