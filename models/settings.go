package models

// Settings is the shop profile, stored as a singleton row with ID 1 and
// replaced wholesale on every save.
type Settings struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	ShopName   string  `gorm:"type:varchar(120)" json:"shop_name"`
	OwnerName  string  `gorm:"type:varchar(120)" json:"owner_name"`
	Address    string  `gorm:"type:varchar(255)" json:"address"`
	Phone      string  `gorm:"type:varchar(20)" json:"phone"`
	Email      string  `gorm:"type:varchar(120)" json:"email"`
	GST        string  `gorm:"type:varchar(30)" json:"gst"`
	Currency   string  `gorm:"type:varchar(8);default:'₹'" json:"currency"`
	TaxRate    float64 `gorm:"type:decimal(5,2);default:18" json:"tax_rate"`
	DateFormat string  `gorm:"type:varchar(20);default:'DD/MM/YYYY'" json:"date_format"`
	Terms      string  `gorm:"type:text" json:"terms"`
}

// SettingsID is the fixed identifier of the singleton settings row.
const SettingsID uint = 1

func (s *Settings) GetID() uint   { return s.ID }
func (s *Settings) SetID(id uint) { s.ID = id }
