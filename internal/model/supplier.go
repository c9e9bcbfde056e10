package model

type Supplier struct {
	BaseModel
	Name          string `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	ContactPerson string `gorm:"type:varchar(100)" json:"contact_person"`
	Phone         string `gorm:"type:varchar(20)" json:"phone"`
	Email         string `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	Address       string `gorm:"type:text" json:"address"`
}
