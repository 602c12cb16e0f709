package site

import "embed"

// FormsDir is the directory of the built-in form definitions in FormsFS.
const FormsDir = "forms"

// FormsFS holds the built-in form definitions.
//
//go:embed forms/*.yaml
var FormsFS embed.FS
