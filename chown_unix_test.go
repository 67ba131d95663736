//go:build unix

package hocon

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"
)

func TestWriteFileKeepsOwner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "o.conf")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o640); err != nil {
		t.Fatal(err)
	}
	before, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := writeFile(path, []byte("a = 2\n"), DefaultMode); err != nil {
		t.Fatal(err)
	}
	after, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	b := before.Sys().(*syscall.Stat_t)
	a := after.Sys().(*syscall.Stat_t)
	if a.Uid != b.Uid || a.Gid != b.Gid {
		t.Errorf("owner changed from %d:%d to %d:%d", b.Uid, b.Gid, a.Uid, a.Gid)
	}
	if after.Mode().Perm() != 0o640 {
		t.Errorf("mode changed to %v", after.Mode())
	}
}
