package model

// Package model defines the value types shared by the services, the CLI and
// the UI: rename rules, preview mappings, rename reports, and the download
// task with its status enum.
