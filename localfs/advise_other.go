//go:build !linux

package localfs

import "os"

func adviseSequential(*os.File) {}
