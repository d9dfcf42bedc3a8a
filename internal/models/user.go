package models

type User struct {
	BaseModel
	Username     string   `gorm:"not null;uniqueIndex" json:"username"`
	Email        string   `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"not null" json:"role"`
}
