package log

// Common field names for structured logging.
const (
	FieldComponent     = "component"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldChatID        = "chat_id"
	FieldUserID        = "user_id"
	FieldUserName      = "user_name"
	FieldRecordID      = "record_id"
	FieldAmountCents   = "amount_cents"
	FieldCategory      = "category"
	FieldPaymentMethod = "payment_method"
	FieldOccurredOn    = "occurred_on"
	FieldRowRef        = "row_ref"
	FieldSheetID       = "sheet_id"
	FieldCommand       = "command"
	FieldAttempt       = "attempt"
)

// Components defines standard component names.
const (
	ComponentApp      = "app"
	ComponentBot      = "bot"
	ComponentHTTP     = "http"
	ComponentSheets   = "sheets"
	ComponentJournal  = "journal"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentReminder = "reminder"
	ComponentService  = "service"
)

// Operations defines standard operation names.
const (
	OpParse    = "parse"
	OpAppend   = "append"
	OpReadAll  = "read_all"
	OpSync     = "sync"
	OpPublish  = "publish"
	OpConsume  = "consume"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
