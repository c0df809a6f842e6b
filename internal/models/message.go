package models

import "time"

// Message is a note from a prospective buyer to a property's seller.
// Receiver always equals the property's seller at send time.
type Message struct {
	ID         string    `gorm:"primaryKey;type:text" json:"id"`
	PropertyID string    `gorm:"index" json:"propertyId"`
	Property   Property  `gorm:"foreignKey:PropertyID" json:"property"`
	SenderID   string    `gorm:"index" json:"senderId"`
	Sender     User      `gorm:"foreignKey:SenderID" json:"sender"`
	ReceiverID string    `gorm:"index" json:"receiverId"`
	Receiver   User      `gorm:"foreignKey:ReceiverID" json:"receiver"`
	Content    string    `json:"content"`
	Read       bool      `gorm:"default:false" json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}
