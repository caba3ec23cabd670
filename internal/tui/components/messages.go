package components

// FormSubmittedMsg is emitted when the user submits a form.
type FormSubmittedMsg struct {
	Values map[string]string
	FormID string
}

// RefreshRequestedMsg asks the parent to reload dashboard data.
type RefreshRequestedMsg struct{}
