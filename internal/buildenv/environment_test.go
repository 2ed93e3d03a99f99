package buildenv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/fw-version/internal/domain/firmware"
)

// TestSubst expands environment variables before process variables.
func TestSubst(t *testing.T) {
	t.Setenv("FWV_TEST_BOARD", "esp32s3")

	env := New("/src/fw")
	env.Set("PIOENV", "release")

	require.Equal(t, "/src/fw", env.Subst("$PROJECT_DIR"))
	require.Equal(t, "/src/fw/.pio/release", env.Subst("${PROJECT_DIR}/.pio/$PIOENV"))
	require.Equal(t, "esp32s3", env.Subst("$FWV_TEST_BOARD"))
	require.Equal(t, "plain", env.Subst("plain"))
}

// TestAppendDefines keeps order and hands out copies.
func TestAppendDefines(t *testing.T) {
	t.Parallel()

	env := New(".")
	env.AppendDefines(domain.StringDefine("FW_VERSION", "9.9.9"))
	env.AppendDefines(domain.Define{Name: "FW_BUILD", Value: "1"})

	defines := env.Defines()
	require.Len(t, defines, 2)
	require.Equal(t, `\"9.9.9\"`, defines[0].Value)

	defines[0].Name = "CHANGED"
	require.Equal(t, "FW_VERSION", env.Defines()[0].Name)
}

// TestWriteFlags renders one flag per line.
func TestWriteFlags(t *testing.T) {
	t.Parallel()

	env := New(".")
	env.AppendDefines(domain.StringDefine("FW_VERSION", "2024.3.5"))

	var out bytes.Buffer

	require.NoError(t, env.WriteFlags(&out))
	require.Equal(t, "-DFW_VERSION=\\\"2024.3.5\\\"\n", out.String())
}

// TestNew_EmptyProjectDirUsesProcessEnvironment leaves PROJECT_DIR to the process.
func TestNew_EmptyProjectDirUsesProcessEnvironment(t *testing.T) {
	t.Setenv(ProjectDirVar, "/ci/workspace")

	require.Equal(t, "/ci/workspace", New("").Subst("$PROJECT_DIR"))
	require.Equal(t, "/src/fw", New("/src/fw").Subst("$PROJECT_DIR"))
}
