package task

import (
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/prompt"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/record"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/schema"
)

// Per-task model identifiers.
const (
	modelGeminiFlash     = "google/gemini-2.0-flash-001" // OpenRouter, legal parsing
	modelGeminiFlashV1_5 = "gemini-1.5-flash-latest"     // Gemini direct
	modelStepChat        = "stepfun/step-3.5-flash:free" // OpenRouter, chat
)

// Descriptor parameterizes the generic orchestrator for one task: prompt
// template, model, contract, persistence collection and response shaping.
// All descriptors are static and read-only for the process lifetime.
type Descriptor struct {
	// Type is the task this descriptor drives.
	Type Type

	// Provider and Model select the completion endpoint.
	Provider string
	Model    string

	// System is the optional system instruction.
	System string

	// MinInput is the task-specific minimum input length in characters.
	MinInput int

	// TooShort is the validation detail for under-length input.
	TooShort string

	// FreeText marks tasks whose completion is returned verbatim instead
	// of being normalized against a contract.
	FreeText bool

	// BuildPrompt turns the (cleaned) input text into the instruction.
	BuildPrompt func(input string) string

	// Contract is the output shape for structured tasks.
	Contract schema.Contract

	// Collection is the per-feature store collection.
	Collection string

	// Document builds the interaction record body.
	Document func(in Input, fields map[string]any) map[string]any

	// Respond builds the caller-facing response from the normalized
	// fields and the record outcome.
	Respond func(in Input, fields map[string]any, rec record.Outcome) map[string]any
}

// respondWith merges the normalized fields under a fixed success message.
func respondWith(message string, fields map[string]any) map[string]any {
	resp := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		resp[k] = v
	}
	resp["message"] = message
	return resp
}

// snapshot copies the normalized fields and attaches the input text, so the
// record carries both sides of the interaction.
func snapshot(inputKey string, in Input, fields map[string]any) map[string]any {
	doc := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		doc[k] = v
	}
	doc[inputKey] = in.Text
	return doc
}

// descriptors is the static task registry, exhaustive at process start.
var descriptors = map[Type]Descriptor{
	FIRExplain: {
		Type:        FIRExplain,
		Provider:    "openrouter",
		Model:       modelGeminiFlash,
		System:      prompt.ExplainerSystem,
		MinInput:    50,
		TooShort:    "The provided text is too short to be a valid FIR.",
		BuildPrompt: prompt.FIRExplain,
		Contract:    schema.MustGet(schema.TaskFIRExplain),
		Collection:  "firs",
		Document: func(in Input, fields map[string]any) map[string]any {
			return map[string]any{
				"simplified_explanation": fields["simplified_explanation"],
				"structured_summary":     fields["structured_summary"],
				"ipc_sections":           fields["ipc_sections"],
				"filename":               in.Filename,
			}
		},
		Respond: func(_ Input, fields map[string]any, rec record.Outcome) map[string]any {
			resp := respondWith("FIR processed successfully by ArguMate!", fields)
			resp["fir_id"] = rec.RecordID
			return resp
		},
	},

	FIRValidate: {
		Type:        FIRValidate,
		Provider:    "gemini",
		Model:       modelGeminiFlashV1_5,
		MinInput:    50,
		TooShort:    "fir_draft_text must be at least 50 characters.",
		BuildPrompt: prompt.FIRValidate,
		Contract:    schema.MustGet(schema.TaskFIRValidate),
		Collection:  "fir_validations",
		Document: func(in Input, fields map[string]any) map[string]any {
			return snapshot("fir_draft_text", in, fields)
		},
		Respond: func(_ Input, fields map[string]any, _ record.Outcome) map[string]any {
			return respondWith("FIR draft validated successfully.", fields)
		},
	},

	ArgumentBuild: {
		Type:        ArgumentBuild,
		Provider:    "gemini",
		Model:       modelGeminiFlashV1_5,
		MinInput:    50,
		TooShort:    "case_summary must be at least 50 characters.",
		BuildPrompt: prompt.ArgumentBuild,
		Contract:    schema.MustGet(schema.TaskArgumentBuild),
		Collection:  "arguments_built",
		Document: func(in Input, fields map[string]any) map[string]any {
			return snapshot("case_summary", in, fields)
		},
		Respond: func(_ Input, fields map[string]any, _ record.Outcome) map[string]any {
			return respondWith("Arguments generated successfully.", fields)
		},
	},

	CaseRetrieve: {
		Type:        CaseRetrieve,
		Provider:    "openrouter",
		Model:       modelGeminiFlash,
		System:      prompt.RetrieverSystem,
		MinInput:    50,
		TooShort:    "case_summary must be at least 50 characters.",
		BuildPrompt: prompt.CaseRetrieve,
		Contract:    schema.MustGet(schema.TaskCaseRetrieve),
		Collection:  "similar_cases",
		Document: func(in Input, fields map[string]any) map[string]any {
			return snapshot("case_summary", in, fields)
		},
		Respond: func(_ Input, fields map[string]any, _ record.Outcome) map[string]any {
			return respondWith("Similar cases retrieved successfully.", fields)
		},
	},

	CaseTimeline: {
		Type:        CaseTimeline,
		Provider:    "gemini",
		Model:       modelGeminiFlashV1_5,
		MinInput:    50,
		TooShort:    "case_summary must be at least 50 characters.",
		BuildPrompt: prompt.CaseTimeline,
		Contract:    schema.MustGet(schema.TaskCaseTimeline),
		Collection:  "timelines",
		Document: func(in Input, fields map[string]any) map[string]any {
			return snapshot("case_summary", in, fields)
		},
		Respond: func(_ Input, fields map[string]any, _ record.Outcome) map[string]any {
			return respondWith("Case timeline generated successfully.", fields)
		},
	},

	JudgmentPredict: {
		Type:        JudgmentPredict,
		Provider:    "gemini",
		Model:       modelGeminiFlashV1_5,
		MinInput:    50,
		TooShort:    "case_summary must be at least 50 characters.",
		BuildPrompt: prompt.JudgmentPredict,
		Contract:    schema.MustGet(schema.TaskJudgmentPredict),
		Collection:  "predictions",
		Document: func(in Input, fields map[string]any) map[string]any {
			return snapshot("case_summary", in, fields)
		},
		Respond: func(_ Input, fields map[string]any, _ record.Outcome) map[string]any {
			return respondWith("Judgment prediction generated successfully.", fields)
		},
	},

	Chat: {
		Type:        Chat,
		Provider:    "openrouter",
		Model:       modelStepChat,
		MinInput:    1,
		TooShort:    "Chat message cannot be empty.",
		FreeText:    true,
		BuildPrompt: prompt.Chat,
		Collection:  "chat_history",
		Document: func(in Input, fields map[string]any) map[string]any {
			return map[string]any{
				"user_message": in.Text,
				"ai_response":  fields["ai_response"],
			}
		},
		Respond: func(in Input, fields map[string]any, _ record.Outcome) map[string]any {
			return map[string]any{
				"message":      "Success",
				"user_message": in.Text,
				"ai_response":  fields["ai_response"],
			}
		},
	},
}

// Get returns the descriptor for a task type. Unknown types indicate a code
// defect, mirroring the contract registry.
func Get(t Type) (Descriptor, bool) {
	d, ok := descriptors[t]
	return d, ok
}

// All returns every registered descriptor.
func All() []Descriptor {
	out := make([]Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, d)
	}
	return out
}
