package hcl

// fileRoot is the struct used to decode the top-level blocks of a manifest.
type fileRoot struct {
	Settings *settingsBlock  `hcl:"settings,block"`
	Sources  []*sourceBlock  `hcl:"source,block"`
	Programs []*programBlock `hcl:"program,block"`
}

type settingsBlock struct {
	BasePath  string `hcl:"base_path,optional"`
	Extension string `hcl:"extension,optional"`
	EmbedRoot string `hcl:"embed_root,optional"`
}

type sourceBlock struct {
	Name     string `hcl:"name,label"`
	Path     string `hcl:"path"`
	Embedded bool   `hcl:"embedded,optional"`
}

type programBlock struct {
	Name    string         `hcl:"name,label"`
	Shaders []*shaderBlock `hcl:"shader,block"`
}

type shaderBlock struct {
	Stage string `hcl:"stage,label"`
	Key   string `hcl:"key"`
}
