package sitegen

// Stage is a state of the strictly linear run state machine.
type Stage string

// Run states, in order.
const (
	StageInit            Stage = "init"
	StageConfigLoaded    Stage = "config_loaded"
	StageTokensExtracted Stage = "tokens_extracted"
	StageFilesProcessed  Stage = "files_processed"
	StageAssetsCopied    Stage = "assets_copied"
	StageDone            Stage = "done"
)

// Stages lists every state in transition order.
var Stages = []Stage{
	StageInit,
	StageConfigLoaded,
	StageTokensExtracted,
	StageFilesProcessed,
	StageAssetsCopied,
	StageDone,
}

// next returns the state that follows s, or s itself for the terminal state.
func (s Stage) next() Stage {
	for i, st := range Stages {
		if st == s && i+1 < len(Stages) {
			return Stages[i+1]
		}
	}
	return s
}
