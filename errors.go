package meshedit

import "errors"

var (
	// ErrNoPositionData is returned by structural edits when the geometry has no
	// position attribute.
	ErrNoPositionData = errors.New("no position data")

	// ErrFaceNotFound is returned when a face index is outside the face list.
	ErrFaceNotFound = errors.New("face not found")

	// ErrInvalidEdgeLoop is returned by the Editor when a selection of edges does
	// not form a single closed loop. The wrapped message is the validation error.
	ErrInvalidEdgeLoop = errors.New("invalid edge loop")

	// ErrFaceExists is returned by the Editor when filling a loop whose vertices
	// are already covered by a face.
	ErrFaceExists = errors.New("face already exists")
)
