package services

// Имена событий шины.
const (
	EventRequestCreated       = "request.created"
	EventRequestStatusChanged = "request.status_changed"
)

// RequestCreatedEvent публикуется после успешного создания заявки.
type RequestCreatedEvent struct {
	RequestID   string
	RequestType string
}

func (e RequestCreatedEvent) Name() string { return EventRequestCreated }

// RequestStatusChangedEvent публикуется после смены статуса заявки,
// как явной, так и автоматической.
type RequestStatusChangedEvent struct {
	RequestID   string
	RequestType string
	Status      string
}

func (e RequestStatusChangedEvent) Name() string { return EventRequestStatusChanged }
