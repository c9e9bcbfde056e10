package model

type Customer struct {
	BaseModel
	Name  string `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Phone string `gorm:"type:varchar(20)" json:"phone"`
}
