package carrier

// Contact is the service information printed on welcome and late payment
// notices.
type Contact struct {
	ID           string
	Name         string
	PaymentLink  string
	ServicePhone string
	ClaimsPhone  string
}

// Contacts returns every known carrier contact in matcher order. The TUI
// uses it to populate the late payment carrier dropdown.
func Contacts() []Contact {
	out := make([]Contact, 0, len(matchers))
	for _, m := range matchers {
		c := m.contact
		c.ID = m.id
		out = append(out, c)
	}
	return out
}

// LookupContact finds a carrier by id (e.g. "nc_grange") or by free-text
// name. Unknown carriers keep the given name, a "#" payment link and
// fallbackPhone for both numbers.
func LookupContact(idOrName, fallbackPhone string) Contact {
	for _, m := range matchers {
		if m.id == idOrName {
			c := m.contact
			c.ID = m.id
			return c
		}
	}
	if m, ok := match(idOrName); ok {
		c := m.contact
		c.ID = m.id
		return c
	}
	name := idOrName
	if name == "" {
		name = "your carrier"
	}
	return Contact{Name: name, PaymentLink: "#", ServicePhone: fallbackPhone, ClaimsPhone: fallbackPhone}
}
