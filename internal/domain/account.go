package domain

import "time"

// OTP purposes. A code issued for one flow never satisfies the other.
const (
	OTPPurposeRegister = "register"
	OTPPurposeReset    = "reset"
)

// Account is the credential record, keyed by email.
type Account struct {
	Email        string     `json:"email" dynamodbav:"email"`
	AccountID    string     `json:"_id" dynamodbav:"account_id"`
	Name         *string    `json:"name,omitempty" dynamodbav:"name,omitempty"`
	Mobile       *string    `json:"mobile,omitempty" dynamodbav:"mobile,omitempty"`
	PasswordHash *string    `json:"-" dynamodbav:"password_hash,omitempty"`
	PasswordTemp *string    `json:"-" dynamodbav:"password_temp,omitempty"`
	OTP          *string    `json:"-" dynamodbav:"otp,omitempty"`
	OTPPurpose   *string    `json:"-" dynamodbav:"otp_purpose,omitempty"`
	OTPExpiresAt *time.Time `json:"-" dynamodbav:"otp_expires_at,omitempty"`
	Verified     bool       `json:"verified" dynamodbav:"verified"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// ClearOTP drops any pending code.
func (a *Account) ClearOTP() {
	a.OTP = nil
	a.OTPPurpose = nil
	a.OTPExpiresAt = nil
}

// Clone returns a copy that shares no pointers with a.
func (a *Account) Clone() *Account {
	c := *a
	c.Name = clonePtr(a.Name)
	c.Mobile = clonePtr(a.Mobile)
	c.PasswordHash = clonePtr(a.PasswordHash)
	c.PasswordTemp = clonePtr(a.PasswordTemp)
	c.OTP = clonePtr(a.OTP)
	c.OTPPurpose = clonePtr(a.OTPPurpose)
	c.OTPExpiresAt = clonePtr(a.OTPExpiresAt)
	return &c
}

// PublicProfile is the subset of an account returned to clients after login.
type PublicProfile struct {
	ID   string  `json:"_id"`
	Name *string `json:"name"`
}

func (a *Account) Profile() PublicProfile {
	return PublicProfile{ID: a.AccountID, Name: a.Name}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
