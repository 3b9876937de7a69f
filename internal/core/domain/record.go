package domain

// RecordKind names one of the EMR tables exposed by the API.
type RecordKind string

const (
	KindPatients     RecordKind = "patients"
	KindAppointments RecordKind = "appointments"
	KindBilling      RecordKind = "billing"
	KindUsers        RecordKind = "users"
)

// Record is a single schemaless document as stored in its table.
type Record map[string]any
