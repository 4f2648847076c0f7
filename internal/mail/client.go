package mail

import (
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"net/url"

	"github.com/dajohi/goemail"
)

// ErrDisabled is returned when no SMTP credentials are configured. The caller
// must treat this as a delivery failure; a reset secret is never silently
// dropped.
var ErrDisabled = errors.New("mail: smtp is disabled")

// Mailer sends emails to a single recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

// Client provides an SMTP client for sending emails from a preset address.
//
// Client implements the Mailer interface.
type Client struct {
	smtp        *goemail.SMTP // SMTP server
	mailName    string        // From name
	mailAddress string        // From email address
	disabled    bool          // Has email been disabled
}

// Ensure Client implements Mailer
var _ Mailer = (*Client)(nil)

// NewClient returns a new SMTP client. Email is considered disabled if any of
// the required credentials are missing.
func NewClient(host, user, password, emailAddress string) (*Client, error) {
	if host == "" || user == "" || password == "" {
		log.Println("mail: DISABLED")
		return &Client{disabled: true}, nil
	}

	// Parse mail host
	h := fmt.Sprintf("smtps://%v:%v@%v", user, password, host)
	u, err := url.Parse(h)
	if err != nil {
		return nil, err
	}

	// Parse from address
	a, err := mail.ParseAddress(emailAddress)
	if err != nil {
		return nil, err
	}

	smtp, err := goemail.NewSMTP(u.String(), &tls.Config{
		InsecureSkipVerify: true,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		smtp:        smtp,
		mailName:    a.Name,
		mailAddress: a.Address,
	}, nil
}

// Send delivers an email to a single recipient.
//
// This function satisfies the Mailer interface.
func (c *Client) Send(to, subject, body string) error {
	if c.disabled {
		return ErrDisabled
	}

	msg := goemail.NewMessage(c.mailAddress, subject, body)
	msg.SetName(c.mailName)
	msg.AddTo(to)

	return c.smtp.Send(msg)
}
