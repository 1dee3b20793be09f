package cuts

import (
	"fmt"
	"strings"
	"time"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	pkgerrors "github.com/dcastellanos/paneltrack-backend/pkg/errors"
)

var spanishShortMonths = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

func shortDate(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), spanishShortMonths[t.Month()-1])
}

func shortDateYear(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), spanishShortMonths[t.Month()-1], t.Year())
}

// FormatShareText renders a saved cut as the WhatsApp summary the operator
// forwards to project owners. Line structure is stable; clients of this
// output parse nothing, but operators recognize the shape.
func FormatShareText(cut *models.WeeklyCut) (string, error) {
	details, err := cut.DecodeDetails()
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cut details")
	}

	var lines []string
	lines = append(lines, "✂️ *CORTE SEMANAL*")
	lines = append(lines, fmt.Sprintf("📅 %s - %s", shortDate(cut.WindowStart), shortDateYear(cut.WindowEnd)))
	lines = append(lines, "")

	for _, d := range details {
		header := fmt.Sprintf("*%s*", strings.ToUpper(d.Name))
		if d.Owner != "-" {
			header += " - " + d.Owner
			if d.Country != nil && *d.Country != "" {
				header += fmt.Sprintf(" (%s)", *d.Country)
			}
		}
		lines = append(lines, header)

		plural := "s"
		if d.PaymentCount == 1 {
			plural = ""
		}
		lines = append(lines, fmt.Sprintf("  %d pago%s | Total: $%s", d.PaymentCount, plural, d.Total.StringFixed(2)))
		lines = append(lines, fmt.Sprintf("  Tu comisión (%s%%): $%s", d.CommissionPct.String(), d.Commission.StringFixed(2)))
		if d.Payable.IsPositive() {
			lines = append(lines, fmt.Sprintf("  Pagar a %s: $%s", d.Owner, d.Payable.StringFixed(2)))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "📊 *RESUMEN*")
	lines = append(lines, fmt.Sprintf("  Ingresos: $%s", cut.TotalIncome.StringFixed(2)))
	lines = append(lines, fmt.Sprintf("  Tu comisión total: $%s", cut.TotalCommission.StringFixed(2)))
	lines = append(lines, fmt.Sprintf("  Gastos semana: -$%s", cut.TotalExpenses.StringFixed(2)))
	lines = append(lines, fmt.Sprintf("  *GANANCIA NETA: $%s*", cut.NetProfit.StringFixed(2)))

	if cut.Notes != nil && strings.TrimSpace(*cut.Notes) != "" {
		lines = append(lines, "")
		lines = append(lines, "📝 *Notas*")
		lines = append(lines, strings.TrimSpace(*cut.Notes))
	}

	return strings.Join(lines, "\n"), nil
}
