// Command fw-version resolves the firmware version and registers it as the
// FW_VERSION preprocessor definition for a pre-build hook.
package main

import "github.com/oshokin/fw-version/cmd/fw-version/cmd"

func main() {
	cmd.Execute()
}
