package notifications

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	pkgerrors "github.com/dcastellanos/paneltrack-backend/pkg/errors"
)

// ReminderKind selects the renewal reminder message.
type ReminderKind string

const (
	ReminderUpcoming ReminderKind = "upcoming"
	ReminderDueToday ReminderKind = "due_today"
	ReminderOverdue  ReminderKind = "overdue"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

func longDate(t time.Time) string {
	return fmt.Sprintf("%02d de %s", t.Day(), spanishMonths[t.Month()-1])
}

// ReminderURL builds a wa.me deep link that opens a chat with the client
// and a prefilled renewal reminder in Spanish. The operator taps send, the
// system never messages anyone by itself.
func ReminderURL(client *models.Client, expiration time.Time, kind ReminderKind) (string, error) {
	number := digitsOnly(client.WhatsApp)
	if number == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "client has no usable whatsapp number")
	}

	date := longDate(expiration)
	var message string
	switch kind {
	case ReminderUpcoming:
		message = fmt.Sprintf(
			"Hola %s 👋\n\nTe recordamos que tu suscripción vence el *%s*.\n\n¿Deseas renovarla? Estamos para ayudarte. 🙌",
			client.Name, date)
	case ReminderDueToday:
		message = fmt.Sprintf(
			"Hola %s 👋\n\n⚠️ Tu suscripción *vence hoy* (%s).\n\nPara no perder el acceso, renueva ahora. ¡Escríbenos! 💬",
			client.Name, date)
	case ReminderOverdue:
		message = fmt.Sprintf(
			"Hola %s 👋\n\nTu suscripción venció el *%s*.\n\n¿Te gustaría renovarla? Te ayudamos enseguida. 🚀",
			client.Name, date)
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown reminder kind %q", kind))
	}

	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(message)), nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
