package domain

import (
	"strings"
	"time"
)

type Client struct {
	ID                string
	Name              string
	TradeName         string
	FiscalID          string
	StateRegistration string

	// Address
	Street   string
	Number   string
	District string
	City     string
	State    string
	ZipCode  string

	Phone string
	Email string

	Contacts []Contact

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Contact struct {
	ID       string
	ClientID string
	Name     string
	Role     string
	Phone    string
	Email    string
}

// ClientSummary is the row shape returned by client searches.
type ClientSummary struct {
	ID        string
	Name      string
	TradeName string
	FiscalID  string
	City      string
}

// Normalize trims text fields and reduces the fiscal identifier to digits.
func (c *Client) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.TradeName = strings.TrimSpace(c.TradeName)
	c.FiscalID = DigitsOnly(c.FiscalID)
	c.State = strings.ToUpper(strings.TrimSpace(c.State))
	c.ZipCode = DigitsOnly(c.ZipCode)
	c.Email = strings.TrimSpace(c.Email)
	for i := range c.Contacts {
		c.Contacts[i].Name = strings.TrimSpace(c.Contacts[i].Name)
	}
}

// Validate checks the fields a client cannot be saved without.
func (c *Client) Validate() error {
	if c.Name == "" {
		return NewValidationError("name", ErrNameRequired)
	}
	if c.FiscalID == "" {
		return NewValidationError("fiscal_id", ErrRequired)
	}
	for _, ct := range c.Contacts {
		if ct.Name == "" {
			return NewValidationError("contact.name", ErrNameRequired)
		}
	}
	return nil
}

// NameKey is the folded name clients are ordered by.
func (c *Client) NameKey() string {
	return FoldText(c.Name)
}

// SearchKey is the folded text a client is matched against.
func (c *Client) SearchKey() string {
	return FoldText(c.Name + " " + c.TradeName)
}

// Summary projects the client onto its search-result shape.
func (c *Client) Summary() ClientSummary {
	return ClientSummary{
		ID:        c.ID,
		Name:      c.Name,
		TradeName: c.TradeName,
		FiscalID:  c.FiscalID,
		City:      c.City,
	}
}

// FormatFiscalID renders a CNPJ (14 digits) or CPF (11 digits) with the
// usual punctuation. Any other length is returned unchanged.
func FormatFiscalID(digits string) string {
	switch len(digits) {
	case 14:
		return digits[0:2] + "." + digits[2:5] + "." + digits[5:8] + "/" + digits[8:12] + "-" + digits[12:14]
	case 11:
		return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11]
	default:
		return digits
	}
}
