package logging

// Structured field names shared by every component that logs.
const (
	FieldScenario    = "scenario"
	FieldMonth       = "month"
	FieldTotalMonths = "total_months"
	FieldRunID       = "run_id"
	FieldOperation   = "operation"
	FieldStatus      = "status"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldFile        = "file_path"
	FieldFormat      = "format"
	FieldCash        = "cash"
	FieldNetWorth    = "net_worth"
)
