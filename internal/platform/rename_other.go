//go:build !linux

package platform

// RenameNoReplace renames oldPath to newPath and fails with an error
// matching fs.ErrExist when newPath already exists. The existence check and
// the rename are two steps on this platform.
func RenameNoReplace(oldPath, newPath string) error {
	return renameChecked(oldPath, newPath)
}
