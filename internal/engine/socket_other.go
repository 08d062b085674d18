//go:build !windows

package engine

const defaultSocket = "unix:///var/run/docker.sock"
