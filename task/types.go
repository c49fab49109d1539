// Package task orchestrates one assistant task end-to-end: validate the
// input, build the prompt, call the model, normalize the completion, record
// the interaction, shape the response. The pipeline is strictly linear with
// a single absorbing failure; there are no retries and no branching.
package task

// Type identifies a supported task.
type Type string

// Supported task types. The schema package registers a contract for every
// one of these at init.
const (
	FIRExplain      Type = "fir_explain"
	FIRValidate     Type = "fir_validate"
	ArgumentBuild   Type = "argument_build"
	CaseRetrieve    Type = "case_retrieve"
	CaseTimeline    Type = "case_timeline"
	JudgmentPredict Type = "judgment_predict"
	Chat            Type = "chat"
)

// Input is one caller request, stack-local to a single orchestration.
type Input struct {
	// CallerID is the authenticated user the interaction belongs to.
	CallerID string

	// Text is the case text: FIR content, draft, summary or chat message.
	Text string

	// Filename names the uploaded document the text came from, when any.
	Filename string
}
