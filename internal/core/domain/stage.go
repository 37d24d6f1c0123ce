package domain

// Stage is a state of the build pipeline. Stages are reached strictly in order.
type Stage int

const (
	// StageInit is the state before anything ran.
	StageInit Stage = iota
	// StageToolchainReady means the cross toolchain is staged.
	StageToolchainReady
	// StageSupportBuilt means the support runtime is installed.
	StageSupportBuilt
	// StageInterpreterBuilt means the interpreter is installed, freshly or from cache.
	StageInterpreterBuilt
	// StageObjectsGenerated means the auxiliary objects exist.
	StageObjectsGenerated
	// StageLinked means the executable was linked.
	StageLinked
	// StagePostProcessed means the asyncify pass was applied.
	StagePostProcessed
	// StageVerified means the output was checked to be a valid module.
	StageVerified
)

var stageNames = [...]string{
	StageInit:             "init",
	StageToolchainReady:   "toolchain",
	StageSupportBuilt:     "rb-wasm-support",
	StageInterpreterBuilt: "ruby",
	StageObjectsGenerated: "objects",
	StageLinked:           "link",
	StagePostProcessed:    "asyncify",
	StageVerified:         "verify",
}

// String returns the short stage name used in logs and telemetry.
func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}
