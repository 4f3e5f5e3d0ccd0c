package render

import "chosenoffset.com/glowworm/internal/entity"

// faceGeometry positions the head's features relative to the head center,
// in fractions of the segment radius. Offsets are fixed per movement
// direction so the face always looks where the creature is going.
type faceGeometry struct {
	leftEyeX, leftEyeY   float64
	rightEyeX, rightEyeY float64
	pupilDX, pupilDY     float64 // pupil shift inside each eye, toward travel
	antennaDX, antennaDY float64 // base of the antenna pair, toward travel
}

var faceByDirection = map[entity.Direction]faceGeometry{
	entity.DirRight: {
		leftEyeX: 0.35, leftEyeY: -0.3,
		rightEyeX: 0.35, rightEyeY: 0.3,
		pupilDX: 0.12, pupilDY: 0,
		antennaDX: 0.6, antennaDY: 0,
	},
	entity.DirLeft: {
		leftEyeX: -0.35, leftEyeY: -0.3,
		rightEyeX: -0.35, rightEyeY: 0.3,
		pupilDX: -0.12, pupilDY: 0,
		antennaDX: -0.6, antennaDY: 0,
	},
	entity.DirUp: {
		leftEyeX: -0.3, leftEyeY: -0.35,
		rightEyeX: 0.3, rightEyeY: -0.35,
		pupilDX: 0, pupilDY: -0.12,
		antennaDX: 0, antennaDY: -0.6,
	},
	entity.DirDown: {
		leftEyeX: -0.3, leftEyeY: 0.35,
		rightEyeX: 0.3, rightEyeY: 0.35,
		pupilDX: 0, pupilDY: 0.12,
		antennaDX: 0, antennaDY: 0.6,
	},
}

// faceFor returns the feature geometry for a movement direction, falling
// back to rightward for anything unexpected.
func faceFor(d entity.Direction) faceGeometry {
	if g, ok := faceByDirection[d]; ok {
		return g
	}
	return faceByDirection[entity.DirRight]
}
