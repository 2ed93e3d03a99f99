package firmware

import "strings"

// DefaultDefineName is the preprocessor definition carrying the version.
const DefaultDefineName = "FW_VERSION"

// Define is a single preprocessor definition.
type Define struct {
	// Name is the macro name.
	Name string
	// Value is the macro body exactly as the build system should pass it.
	Value string
	// text is the unquoted string for string defines.
	text string
}

// cEscaper escapes characters that would break a C string literal.
//
//nolint:gochecknoglobals // Immutable replacer shared by all defines.
var cEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// StringDefine returns a definition that expands to a string literal in
// compiled code: the text is wrapped in escaped double quotes.
func StringDefine(name, text string) Define {
	return Define{
		Name:  name,
		Value: `\"` + text + `\"`,
		text:  text,
	}
}

// Text returns the unquoted string of a string define.
func (d Define) Text() string {
	return d.text
}

// Flag renders the definition as a compiler flag, e.g. -DFW_VERSION=\"1.2.3\".
func (d Define) Flag() string {
	if d.Value == "" {
		return "-D" + d.Name
	}

	return "-D" + d.Name + "=" + d.Value
}

// CLiteral renders the text as a C string literal for header files.
func (d Define) CLiteral() string {
	return `"` + cEscaper.Replace(d.text) + `"`
}
