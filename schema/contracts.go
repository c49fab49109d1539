package schema

// Task type names. The task package mirrors these values in its Type enum;
// the registry below is exhaustive over every supported task at process start.
const (
	TaskFIRExplain      = "fir_explain"
	TaskFIRValidate     = "fir_validate"
	TaskArgumentBuild   = "argument_build"
	TaskCaseRetrieve    = "case_retrieve"
	TaskCaseTimeline    = "case_timeline"
	TaskJudgmentPredict = "judgment_predict"
	TaskChat            = "chat"
)

// summaryKeys are the nested keys of the FIR structured summary. The model is
// told to use "" for anything it cannot find, so none are strictly required.
var summaryKeys = []Field{
	{Name: "complainant_name", Kind: String},
	{Name: "accused_name_s", Kind: String},
	{Name: "victim_name_s", Kind: String},
	{Name: "date_of_incident", Kind: String},
	{Name: "time_of_incident", Kind: String},
	{Name: "place_of_incident", Kind: String},
	{Name: "brief_offence_description", Kind: String},
	{Name: "fir_number", Kind: String},
	{Name: "police_station", Kind: String},
	{Name: "date_of_fir", Kind: String},
}

func init() {
	Register(Contract{
		Task: TaskFIRExplain,
		Fields: []Field{
			{Name: "simplified_explanation", Kind: String, Required: true},
			{Name: "structured_summary", Kind: Object, Item: summaryKeys},
			{Name: "ipc_sections", Kind: ObjectList, Item: []Field{
				{Name: "section", Kind: String, Required: true},
				{Name: "reason", Kind: String, Required: true},
			}},
		},
	})

	Register(Contract{
		Task: TaskFIRValidate,
		Fields: []Field{
			{Name: "overall_score", Kind: Integer, Required: true},
			{Name: "validation_points", Kind: ObjectList, Required: true, Item: []Field{
				{Name: "issue", Kind: String, Required: true},
				{Name: "suggestion", Kind: String, Required: true},
				{Name: "severity", Kind: String, Required: true},
			}},
		},
	})

	argumentItem := []Field{
		{Name: "point", Kind: String, Required: true},
		{Name: "reasoning", Kind: String, Required: true},
	}
	Register(Contract{
		Task: TaskArgumentBuild,
		Fields: []Field{
			{Name: "prosecution_arguments", Kind: ObjectList, Required: true, Item: argumentItem},
			{Name: "defense_arguments", Kind: ObjectList, Required: true, Item: argumentItem},
		},
	})

	// similar_cases is deliberately lenient at the top level: a completion
	// without the key yields an empty list rather than a failure.
	Register(Contract{
		Task: TaskCaseRetrieve,
		Fields: []Field{
			{Name: "similar_cases", Kind: ObjectList, Item: []Field{
				{Name: "citation", Kind: String, Required: true},
				{Name: "case_name", Kind: String, Required: true},
				{Name: "summary", Kind: String, Required: true},
				{Name: "relevance", Kind: String, Required: true},
			}},
		},
	})

	Register(Contract{
		Task: TaskCaseTimeline,
		Fields: []Field{
			{Name: "timeline_steps", Kind: ObjectList, Required: true, Item: []Field{
				{Name: "step_title", Kind: String, Required: true},
				{Name: "description", Kind: String, Required: true},
				{Name: "estimated_date_or_duration", Kind: String, Required: true},
			}},
		},
	})

	Register(Contract{
		Task: TaskJudgmentPredict,
		Fields: []Field{
			{Name: "predicted_outcome", Kind: String, Required: true},
			{Name: "confidence_score", Kind: Integer, Required: true},
			{Name: "reasoning", Kind: String, Required: true},
		},
	})

	// Chat is a free-text task; the orchestrator skips normalization, but the
	// registry stays exhaustive so Get never fails for a supported task.
	Register(Contract{Task: TaskChat})
}
