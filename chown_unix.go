//go:build unix

package hocon

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
)

// chown gives f the owner and group of fi. Only a privileged process may
// give a file away, so a permission error leaves f owned by the caller.
func chown(f *os.File, fi fs.FileInfo) error {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return nil
	}
	err := f.Chown(int(st.Uid), int(st.Gid))
	if errors.Is(err, fs.ErrPermission) {
		return nil
	}
	return err
}
