//go:build !unix

package hocon

import (
	"io/fs"
	"os"
)

func chown(*os.File, fs.FileInfo) error {
	return nil
}
