// Package history queries source-control history.
//
// GitRepository counts commits reachable from HEAD since a timestamp by
// running git as an external process, and exposes the Repository interface
// the resolver depends on.
package history
