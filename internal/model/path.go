// Package model defines the data structures shared by the minitest runner.
package model

// Path represents a file system path.
type Path string
