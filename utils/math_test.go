package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestMath(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldEqual, math.Pi)
	test.That(t, DegToRad(-90), test.ShouldEqual, -math.Pi/2)

	test.That(t, Float64AlmostEqual(1, 1.05, 0.1), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.2, 0.1), test.ShouldBeFalse)
	test.That(t, Float64AlmostEqual(1, 1, 0), test.ShouldBeTrue)

	test.That(t, Clamp(-1, 0, 1), test.ShouldEqual, 0.)
	test.That(t, Clamp(0.25, 0, 1), test.ShouldEqual, 0.25)
	test.That(t, Clamp(3, 0, 1), test.ShouldEqual, 1.)
}
