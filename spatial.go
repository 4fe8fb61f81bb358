package rtreestar

import "github.com/mist90/RTreeStar/mbr"

// Spatial is the capability a payload type must provide: its current
// bounding rectangle, plus comparability so Tree can identify one stored
// payload among others for Erase/Find/Reinsert. The source identifies a
// payload by its reference address (spec.md §4.5); comparable is the Go
// realization — pass a pointer type for reference identity, or a plain
// value type if value equality is identity enough for your payload.
// Tree calls Bounds() whenever it needs a fresh MBR for a payload (on
// Insert, on Reinsert, on UpdateMBRs); it is otherwise never assumed to be
// cached by the caller. Bounds must be a pure accessor for the duration of
// any single Tree operation.
type Spatial[N mbr.Number] interface {
	comparable
	Bounds() mbr.MBR[N]
}
