package models

type Customer struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"type:varchar(120);not null" json:"name"`
	Phone     string `gorm:"type:varchar(20);not null;index" json:"phone"`
	Email     string `gorm:"type:varchar(120)" json:"email"`
	GST       string `gorm:"type:varchar(30)" json:"gst"`
	Address   string `gorm:"type:varchar(255)" json:"address"`
	CreatedAt string `gorm:"type:varchar(10)" json:"created_at"`
}

func (c *Customer) GetID() uint   { return c.ID }
func (c *Customer) SetID(id uint) { c.ID = id }
