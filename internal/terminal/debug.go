//go:build debug

package terminal

const debugBuild = true
