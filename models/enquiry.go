package models

// Enquiry statuses. Converted and Closed are terminal.
const (
	EnquiryStatusNew       = "New"
	EnquiryStatusContacted = "Contacted"
	EnquiryStatusConverted = "Converted"
	EnquiryStatusClosed    = "Closed"
)

// Enquiry is a quote request submitted from the public website. Its ID is
// assigned by the caller before insert (millisecond-timestamp derived), not
// by the store's sequence, so concurrent submissions from the static site
// cannot collide with seeded rows. Reference is an opaque token returned to
// the submitter.
type Enquiry struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"type:varchar(36)" json:"reference"`
	Name      string `gorm:"type:varchar(120);not null" json:"name"`
	Phone     string `gorm:"type:varchar(20);not null;index" json:"phone"`
	Email     string `gorm:"type:varchar(120)" json:"email"`
	Service   string `gorm:"type:varchar(60)" json:"service"`
	Qty       string `gorm:"type:varchar(40)" json:"qty"`
	Message   string `gorm:"type:text" json:"message"`
	Date      string `gorm:"type:varchar(30)" json:"date"`
	Status    string `gorm:"type:varchar(20);not null;default:'New'" json:"status"`
}

func (e *Enquiry) GetID() uint   { return e.ID }
func (e *Enquiry) SetID(id uint) { e.ID = id }

func ValidEnquiryStatus(s string) bool {
	switch s {
	case EnquiryStatusNew, EnquiryStatusContacted, EnquiryStatusConverted, EnquiryStatusClosed:
		return true
	}
	return false
}
