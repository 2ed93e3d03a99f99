// Package resolver computes the firmware version string.
//
// An operator override wins outright. Otherwise the version is derived as
// YEAR.MONTH.COUNT, where COUNT is the number of commits in the current
// calendar month. Any history failure degrades to a count of one so the build
// never stops over a cosmetic version number.
package resolver
