// Package tasks keeps the client's view of the remote task list in step with the server.
//
// # Operations
//
// [Controller] exposes one method per user intent:
//
//  1. [Controller.Load] : fetch the whole collection in server order
//  2. [Controller.Create] : POST a title, then reload
//     - blank titles fail with [ErrInvalidTitle] before any request
//     - the outcome asks for the input field to be cleared
//  3. [Controller.Rename] : ask a [Prompter] for a title, PUT it, then reload
//     - cancel or blank answers fail with [ErrRenameAbandoned]
//  4. [Controller.Toggle] : PUT the flipped completion flag, then reload
//  5. [Controller.Remove] : DELETE by id, then reload
//
// Every mutation is exactly one write followed by one reload. There is no optimistic update: the list a caller
// renders always comes from the server.
//
// # State
//
// [State] is owned by the caller and changed only through [State.Apply] and [State.Fail]. The notification lives in
// a [Banner] whose generations keep stale expiry timers from clearing a newer message.
//
// # Concurrency
//
// Overlapping operations may interleave and the last reload to finish wins. [ControllerOpts.Serialize] makes each
// write+reload cycle exclusive.
package tasks
