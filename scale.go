package synth

import "math"

// Semitone offsets of the major scale; modes are rotations of it.
var majorIntervals = [7]int{0, 2, 4, 5, 7, 9, 11}

// defaultScale is A minor, the scale the engine starts in.
var defaultScale = [7]float64{220, 246.94, 261.63, 293.66, 329.63, 369.99, 415.30}

// Hard-coded modal scales cycled by the evolution clock's ambient
// triggers.
var ambientScales = [4][7]float64{
	{220, 246.94, 277.18, 293.66, 329.63, 369.99, 415.30}, // A minor
	{261.63, 293.66, 329.63, 349.23, 392, 440, 493.88},    // C major
	{220, 233.08, 261.63, 277.18, 311.13, 349.23, 369.99}, // A dorian
	{196, 220, 246.94, 261.63, 293.66, 329.63, 349.23},    // G mixolydian
}

// BuildScale returns seven ascending frequencies forming the given
// mode rotation rooted at rootHz. For mode 0 the first note is exactly
// rootHz. Deterministic: identical inputs yield bit-identical output.
func BuildScale(rootHz float64, mode int) [7]float64 {
	var notes [7]float64
	for i := range notes {
		semis := majorIntervals[(mode+i)%7] - majorIntervals[mode]
		if semis < 0 {
			semis += 12
		}
		notes[i] = rootHz * math.Exp2(float64(semis)/12)
	}
	return notes
}
