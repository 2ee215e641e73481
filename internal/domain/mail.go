package domain

const (
	MailTypeCreateUser = "create_user"
)

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"full_name"`
	UserID   string `json:"user_id"`
	Role     Role   `json:"role"`
}
