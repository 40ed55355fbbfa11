package stencil

// Configuration file names, checked in order of preference.
var ConfigFileNames = []string{"stencil.json", "stencil.yaml", "stencil.yml"}

const (
	// HooksDirName is the directory under the template root that holds hook scripts.
	HooksDirName = "hooks"
	// DefaultPreHookName is the default pre-generation hook filename.
	DefaultPreHookName = "pre"
	// DefaultPostHookName is the default post-generation hook filename.
	DefaultPostHookName = "post"
	// IgnoreFileName is the per-template ignore file.
	IgnoreFileName = ".stencilignore"
	// MetaFileName is the generation metadata file written into the output root.
	MetaFileName = ".stencil-meta.yaml"
	// DefaultTemplateSuffix marks files that are rendered rather than copied.
	DefaultTemplateSuffix = ".stencil.tmpl"
	// StdinIndicator selects stdin as the answers source.
	StdinIndicator = "-"
)
