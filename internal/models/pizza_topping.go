package models

// PizzaTopping is a row of the pure many-to-many join table.
// Both foreign keys cascade so that deleting either side removes the row.
type PizzaTopping struct {
	PizzaID   uint    `gorm:"primaryKey;autoIncrement:false"`
	ToppingID uint    `gorm:"primaryKey;autoIncrement:false;index"`
	Pizza     Pizza   `gorm:"foreignKey:PizzaID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Topping   Topping `gorm:"foreignKey:ToppingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (PizzaTopping) TableName() string {
	return "pizza_topping"
}
