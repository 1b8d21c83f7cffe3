//go:build !unix

package vfs

import "os"

func hostCanExecute(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
