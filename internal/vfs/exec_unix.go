//go:build unix

package vfs

import "golang.org/x/sys/unix"

func hostCanExecute(path string) bool {
	return unix.Access(path, unix.X_OK) == nil
}
