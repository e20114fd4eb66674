package mesh

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// SphereConfig describes a triangulated sphere.
type SphereConfig struct {
	Center          r3.Vector `json:"center"`
	Radius          float64   `json:"radius"`
	ThetaResolution int       `json:"theta_resolution"`
	PhiResolution   int       `json:"phi_resolution"`
}

// DefaultSphereConfig returns a sphere of radius 0.5 at the origin with 8x8 resolution.
func DefaultSphereConfig() SphereConfig {
	return SphereConfig{Radius: 0.5, ThetaResolution: 8, PhiResolution: 8}
}

// Validate ensures all parts of the config are valid.
func (cfg SphereConfig) Validate() error {
	if cfg.Radius <= 0 {
		return errors.Errorf("sphere radius must be positive, got %f", cfg.Radius)
	}
	if cfg.ThetaResolution < 3 {
		return errors.Errorf("sphere theta_resolution must be at least 3, got %d", cfg.ThetaResolution)
	}
	if cfg.PhiResolution < 3 {
		return errors.Errorf("sphere phi_resolution must be at least 3, got %d", cfg.PhiResolution)
	}
	return nil
}

// NewSphere triangulates a sphere with a point at each pole, PhiResolution-2 rings of
// ThetaResolution points, triangle fans at the poles and two triangles per band quad.
func NewSphere(cfg SphereConfig) (*PolyData, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	numRings := cfg.PhiResolution - 2
	deltaPhi := math.Pi / float64(cfg.PhiResolution-1)
	deltaTheta := 2 * math.Pi / float64(cfg.ThetaResolution)

	points := make([]r3.Vector, 0, 2+cfg.ThetaResolution*numRings)
	points = append(points,
		cfg.Center.Add(r3.Vector{Z: cfg.Radius}),
		cfg.Center.Sub(r3.Vector{Z: cfg.Radius}),
	)
	for i := 0; i < cfg.ThetaResolution; i++ {
		theta := float64(i) * deltaTheta
		for j := 1; j <= numRings; j++ {
			phi := float64(j) * deltaPhi
			r := cfg.Radius * math.Sin(phi)
			points = append(points, cfg.Center.Add(r3.Vector{
				X: r * math.Cos(theta),
				Y: r * math.Sin(theta),
				Z: cfg.Radius * math.Cos(phi),
			}))
		}
	}

	ring := func(i, j int) int64 {
		return int64(2 + (i%cfg.ThetaResolution)*numRings + j)
	}
	triangles := make([][3]int64, 0, 2*cfg.ThetaResolution*(numRings))
	for i := 0; i < cfg.ThetaResolution; i++ {
		triangles = append(triangles, [3]int64{0, ring(i, 0), ring(i+1, 0)})
	}
	for i := 0; i < cfg.ThetaResolution; i++ {
		triangles = append(triangles, [3]int64{1, ring(i+1, numRings-1), ring(i, numRings-1)})
	}
	for i := 0; i < cfg.ThetaResolution; i++ {
		for j := 0; j < numRings-1; j++ {
			a, b := ring(i, j), ring(i, j+1)
			c, d := ring(i+1, j+1), ring(i+1, j)
			triangles = append(triangles, [3]int64{a, b, c}, [3]int64{a, c, d})
		}
	}
	return NewTriangleMesh(points, triangles), nil
}
