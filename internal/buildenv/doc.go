// Package buildenv models the build environment the hook reports to.
//
// Environment replaces the build tool's implicit global object: it carries
// substitution variables such as PROJECT_DIR and collects preprocessor
// definitions, which emitters then render as compiler flags or a C header.
package buildenv
