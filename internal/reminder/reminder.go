// Package reminder builds rent-reminder messages and the links that hand
// them to a messaging app. Nothing is sent from here.
package reminder

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ttacon/libphonenumber"

	"github.com/MrJamesThe3rd/homa/internal/building"
	"github.com/MrJamesThe3rd/homa/internal/report"
)

var ErrInvalidPhone = errors.New("invalid phone number")

const subject = "یادآوری پرداخت اجاره"

type Reminder struct {
	TenantID   string `json:"tenantId"`
	TenantName string `json:"tenantName"`
	UnitNumber string `json:"unitNumber"`
	RentDay    int    `json:"rentDay"`
	Message    string `json:"message"`
	WhatsApp   string `json:"whatsapp,omitempty"`
	Mailto     string `json:"mailto"`
}

// Message is the prefilled rent reminder for a tenant.
func Message(t building.Tenant, unitNumber string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s عزیز، سلام.\n", t.Name)

	if unitNumber != "" {
		fmt.Fprintf(&sb, "یادآوری می‌شود اجاره واحد %s ", unitNumber)
	} else {
		sb.WriteString("یادآوری می‌شود اجاره ")
	}

	fmt.Fprintf(&sb, "در روز %d ماه سررسید می‌شود.\nبا تشکر، مدیریت ساختمان هما", t.DueDay())

	return sb.String()
}

// WhatsAppLink normalizes phone for region and returns a wa.me link with text prefilled.
func WhatsAppLink(phone, region, text string) (string, error) {
	num, err := libphonenumber.Parse(phone, region)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPhone, err)
	}

	if !libphonenumber.IsValidNumber(num) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPhone, phone)
	}

	digits := strings.TrimPrefix(libphonenumber.Format(num, libphonenumber.E164), "+")

	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(text), nil
}

func MailtoLink(to, subject, body string) string {
	q := url.Values{}
	q.Set("subject", subject)
	q.Set("body", body)

	// mail clients expect %20 rather than +
	return "mailto:" + url.PathEscape(to) + "?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}

// UnitNumberFor returns the number of the first unit the tenant occupies.
func UnitNumberFor(units []building.Unit, tenantID string) string {
	for _, u := range units {
		if u.TenantID == tenantID {
			return u.Number
		}
	}

	return ""
}

// For builds the reminder for tenantID. An unusable phone leaves WhatsApp empty.
func For(snap building.Snapshot, tenantID, region string) (Reminder, error) {
	t, ok := building.FindTenant(snap.Tenants, tenantID)
	if !ok {
		return Reminder{}, fmt.Errorf("tenant %s: %w", tenantID, building.ErrNotFound)
	}

	return build(t, UnitNumberFor(snap.Units, t.ID), region), nil
}

func build(t building.Tenant, unitNumber, region string) Reminder {
	msg := Message(t, unitNumber)

	r := Reminder{
		TenantID:   t.ID,
		TenantName: t.Name,
		UnitNumber: unitNumber,
		RentDay:    t.DueDay(),
		Message:    msg,
		Mailto:     MailtoLink("", subject, msg),
	}

	if link, err := WhatsAppLink(t.Phone, region, msg); err == nil {
		r.WhatsApp = link
	}

	return r
}

// DueSoon returns reminders for every tenant whose rent is due within the window.
func DueSoon(snap building.Snapshot, today time.Time, region string) []Reminder {
	out := []Reminder{}

	for _, t := range snap.Tenants {
		if report.IsDueSoon(t.DueDay(), today) {
			out = append(out, build(t, UnitNumberFor(snap.Units, t.ID), region))
		}
	}

	return out
}
