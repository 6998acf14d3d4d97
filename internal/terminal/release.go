//go:build !debug

package terminal

const debugBuild = false
