// Package io provides the collaborators an emulator session reads programs
// from and reports memory changes to.
//
// A Source opens named program images, either from a directory (DirSource)
// or from a sequential stream (Tape). A Watch records memory change events
// and can be given to the engine as its observer.
package io
