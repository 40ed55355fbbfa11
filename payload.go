package stencil

// Payload is the data passed to hook scripts.
//
// It is serialized to JSON and written to the hook's stdin. The pre hook
// runs before answers are collected and receives Answers as null; the post
// hook receives the final answers object.
type Payload struct {
	// TemplateDir is the absolute path to the template directory.
	TemplateDir string `json:"template_dir"`
	// OutputDir is the absolute path to the output directory.
	OutputDir string `json:"output_dir"`
	// Answers is the context data for template rendering, if collected yet.
	Answers any `json:"answers"`
}
