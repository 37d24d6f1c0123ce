package config

// Rbwasmfile represents the structure of the rbwasm.yaml configuration file.
// The user config shares the same schema. Unset fields keep the lower layer's value.
type Rbwasmfile struct {
	Version   string `yaml:"version"`
	Workspace string `yaml:"workspace"`
	Output    string `yaml:"output"`

	Mapdir         []string `yaml:"mapdir"`
	NoBuiltinFiles *bool    `yaml:"noBuiltinFiles"`
	EnabledExts    []string `yaml:"enabledExts"`

	StackSize         *int `yaml:"stackSize"`
	AsyncifyStackSize *int `yaml:"asyncifyStackSize"`

	SaveTemps *bool `yaml:"saveTemps"`
	DebugInfo *bool `yaml:"debugInfo"`
	NoVerify  *bool `yaml:"noVerify"`

	CRubySrc         string `yaml:"crubySrc"`
	RbWasmSupportSrc string `yaml:"rbWasmSupportSrc"`

	Xcc       []string `yaml:"xcc"`
	Xlinker   []string `yaml:"xlinker"`
	Args      []string `yaml:"args"`
	BuildHook string   `yaml:"buildHook"`
	Jobs      *int     `yaml:"jobs"`

	Toolchain ToolchainDTO `yaml:"toolchain"`
}

// ToolchainDTO represents the toolchain section of the configuration.
type ToolchainDTO struct {
	WasiSDK struct {
		Version string `yaml:"version"`
		URL     string `yaml:"url"`
	} `yaml:"wasiSdk"`
	WasiVfs struct {
		Version string `yaml:"version"`
		URL     string `yaml:"url"`
		Library string `yaml:"library"`
	} `yaml:"wasiVfs"`
	WasmOpt string `yaml:"wasmOpt"`
}
