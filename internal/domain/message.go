package domain

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

const ContentTypeText = "text"

// ContentPart is one typed chunk of a message body. Only text parts are
// consumed; other types (images, annotations) pass through untouched.
type ContentPart struct {
	Type string
	Text string
}

type Message struct {
	ID      string
	Role    Role
	Content []ContentPart
}
