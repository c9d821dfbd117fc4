// Package drag implements the state machine for one interactive move or insert.
//
// A [Controller] owns at most one session at a time:
//
//	Idle --Start--> Dragging --Drop (slot found)--> Committed --> Idle
//	                    |    --Drop (no slot)-----> Cancelled --> Idle
//	                    +----Cancel---------------> Cancelled --> Idle
//
// Committed and Cancelled are passed through within the same call, so callers
// only ever observe Idle or Dragging from [Controller.State]; the outcome of a
// drop is reported by [DropResult.Status].
//
// The layout is captured when the session starts. [Controller.UpdateTarget]
// runs a read-only placement search for live previews; only
// [Controller.Drop] produces a new layout, and it never modifies the captured
// one. A drop that finds no slot is not an error: it returns the captured
// layout with status [StatusNoSlotAvailable].
//
// Calling an operation in a state that does not allow it returns an
// INVALID_SESSION_STATE error and leaves the controller unchanged.
//
// # Usage
//
//	ctrl := drag.New(spec)
//	if err := ctrl.Start(layout, drag.Insert(entry), pointer); err != nil {
//	    return err
//	}
//	preview, ok, _ := ctrl.UpdateTarget(pointer)
//	res, err := ctrl.Drop(pointer)
//	if err != nil {
//	    return err
//	}
//	if res.Status == drag.StatusNoSlotAvailable {
//	    // show "can't place here"
//	}
//	layout = res.Layout
//
// A Controller is not safe for concurrent use.
package drag
