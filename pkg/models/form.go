package models

// Form field names used by landing page lead forms
const (
	FieldName  = "lead_name"
	FieldEmail = "lead_email"
	FieldPhone = "lead_phone"
	FieldCity  = "lead_city"
)

// ContactRecord is the visitor identity remembered between page loads
type ContactRecord struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SubscribeFormData represents a lead form posted by a script-driven landing page
type SubscribeFormData struct {
	Key       string  `json:"key" form:"key"`
	DoneURL   string  `json:"doneurl" form:"doneurl"`
	WithPhone bool    `json:"with_phone" form:"with_phone"`
	Name      *string `json:"lead_name" form:"lead_name"`
	Email     *string `json:"lead_email" form:"lead_email"`
	Phone     *string `json:"lead_phone" form:"lead_phone"`
	City      *string `json:"lead_city" form:"lead_city"`
}

// Fields flattens the posted data into form fields, skipping the ones the page did not send
func (d SubscribeFormData) Fields() map[string]string {
	fields := make(map[string]string)
	for name, value := range map[string]*string{
		FieldName:  d.Name,
		FieldEmail: d.Email,
		FieldPhone: d.Phone,
		FieldCity:  d.City,
	} {
		if value != nil {
			fields[name] = *value
		}
	}
	return fields
}
