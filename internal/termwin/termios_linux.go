//go:build aix || linux || solaris || zos
// +build aix linux solaris zos

package termwin

import "golang.org/x/sys/unix"

const (
	ioctlGetTermios = unix.TCGETS
	ioctlSetTermios = unix.TCSETS
)
