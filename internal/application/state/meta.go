// internal/application/state/meta.go
package state

// Status is the lifecycle of the last dispatched operation of a slice.
// idle -> pending -> fulfilled | rejected
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
	StatusRejected  Status = "rejected"
)

// Meta is shared by every slice.
// Error is nil unless the last operation was rejected.
type Meta struct {
	Status    Status  `json:"status"`
	IsLoading bool    `json:"isLoading"`
	Error     *string `json:"error"`
}

func idleMeta() Meta { return Meta{Status: StatusIdle} }

func (m *Meta) begin() {
	m.Status = StatusPending
	m.IsLoading = true
	m.Error = nil
}

func (m *Meta) fulfil() {
	m.Status = StatusFulfilled
	m.IsLoading = false
	m.Error = nil
}

func (m *Meta) reject(msg string) {
	m.Status = StatusRejected
	m.IsLoading = false
	m.Error = &msg
}

// ErrorMessage returns "" when there is no error.
func (m Meta) ErrorMessage() string {
	if m.Error == nil {
		return ""
	}
	return *m.Error
}

func (m Meta) copy() Meta {
	if m.Error != nil {
		e := *m.Error
		m.Error = &e
	}
	return m
}
