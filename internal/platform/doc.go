package platform

// Package platform contains OS integration: the filesystem boundary used by
// the rename planner (listing and no-replace rename), the default downloads
// directory, and revealing files in the system file manager.
