package models

import "time"

type MessageStatus string

const (
	MessageUnread  MessageStatus = "UNREAD"
	MessageRead    MessageStatus = "READ"
	MessageReplied MessageStatus = "REPLIED"
)

func (s MessageStatus) Valid() bool {
	switch s {
	case MessageUnread, MessageRead, MessageReplied:
		return true
	}
	return false
}

type ContactMessage struct {
	ID        string        `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string        `gorm:"not null" json:"name"`
	Email     string        `gorm:"not null" json:"email"`
	Message   string        `gorm:"not null" json:"message"`
	Status    MessageStatus `gorm:"type:varchar(20);not null;default:'UNREAD'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
