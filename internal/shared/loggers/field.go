package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldRunID      = "run_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldWindowStart    = "window_start"
	FieldWindowDuration = "window_duration"
	FieldRecordCount    = "record_count"
	FieldQueueDepth     = "queue_depth"
	FieldLine           = "line"
)
