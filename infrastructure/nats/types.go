package nats

// Stream and subject names
const (
	ReminderStreamName  = "REMINDERS"
	SubjectReminderDue  = "reminders.due"
	ReminderSubjectsAll = "reminders.>"
)

// JetStreamStatus stream counters for the health endpoint
type JetStreamStatus struct {
	Name     string `json:"name"`
	Messages uint64 `json:"messages"`
	Bytes    uint64 `json:"bytes"`
	FirstSeq uint64 `json:"firstSeq"`
	LastSeq  uint64 `json:"lastSeq"`
}
