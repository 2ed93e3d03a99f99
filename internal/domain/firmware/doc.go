// Package firmware contains the core types of firmware version resolution.
//
// It defines Version (the resolved string and where it came from), CommitCount
// (a month commit count that records whether the fallback was used) and Define
// (a preprocessor definition handed to the build system).
package firmware
