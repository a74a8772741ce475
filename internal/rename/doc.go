// Package rename turns a directory listing and a set of textual rules into a
// preview mapping of original → new file names, and applies that mapping to
// the filesystem.
//
// The transformation itself (ComputeNewName, BuildPreview) is pure. Planner
// owns the filesystem side: enumeration, advisory conflict detection and the
// rename pass. Session layers the Idle → Ready → Renaming → Ready lifecycle
// on top for interactive front ends.
package rename
