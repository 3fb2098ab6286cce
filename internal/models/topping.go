package models

// Topping represents a named ingredient that can be put on pizzas
type Topping struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

func (Topping) TableName() string {
	return "topping"
}
