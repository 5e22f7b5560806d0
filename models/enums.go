package models

// HabitLogStatus is the stored status of one habit day.
// "unmarked" exists in the schema but the toggle cycle never writes it; it is
// kept so previously stored rows (and the unmarked->completed fallback) still
// behave like the original data model.
type HabitLogStatus string

const (
	HabitStatusCompleted HabitLogStatus = "completed"
	HabitStatusMissed    HabitLogStatus = "missed"
	HabitStatusUnmarked  HabitLogStatus = "unmarked"
)

// Column types inferred at ingest. Advisory metadata for the chart layer;
// never enforced on writes.
const (
	ColumnTypeNumber = "number"
	ColumnTypeDate   = "date"
	ColumnTypeString = "string"
)

type AuditAction string

const (
	AuditActionUpload   AuditAction = "upload"
	AuditActionDelete   AuditAction = "delete"
	AuditActionUpdate   AuditAction = "update"
	AuditActionView     AuditAction = "view"
	AuditActionExport   AuditAction = "export"
	AuditActionDownload AuditAction = "download"
)

type AuditResourceType string

const (
	AuditResourceFile AuditResourceType = "file"
	AuditResourceData AuditResourceType = "data"
	AuditResourceUser AuditResourceType = "user"
)
