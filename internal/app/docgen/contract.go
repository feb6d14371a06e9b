// Package docgen renders the printable wage-assignment contract. The
// document is a standalone right-to-left Arabic page styled for the
// browser's print dialog; absent fields render as a blank line to be
// filled in by hand.
package docgen

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/pkg/errors"

	"github.com/sbenmansour/cessiondesk/internal/app/models"
)

//go:embed contract.html.tmpl
var templateFS embed.FS

// Placeholder stands in for fields the record does not carry.
const Placeholder = "_________________"

var contractTemplate = template.Must(
	template.New("contract.html.tmpl").
		Funcs(template.FuncMap{"orblank": orBlank}).
		ParseFS(templateFS, "contract.html.tmpl"),
)

func orBlank(value string) string {
	if value == "" {
		return Placeholder
	}
	return value
}

// ContractData is the flattened field set of one printed contract.
type ContractData struct {
	CourtName  string
	BookNumber string
	PageNumber string
	Date       string

	SupplierTaxID       string
	SupplierName        string
	SupplierAddress     string
	SupplierBankAccount string

	WorkerNumber      string
	FullName          string
	CIN               string
	Address           string
	Workplace         string
	JobTitle          string
	BankAccountNumber string

	ItemDescription     string
	AmountInWords       string
	TotalAmountNumeric  string
	MonthlyPayment      string
	FirstDeductionMonth string

	// AutoPrint embeds a script that opens the print dialog once the
	// fonts have loaded and closes the page afterwards.
	AutoPrint bool
}

// arabicMonths are the month names in use in Tunisia.
var arabicMonths = [12]string{
	"جانفي", "فيفري", "مارس", "أفريل", "ماي", "جوان",
	"جويلية", "أوت", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// ArabicMonthYear renders a yyyy-mm-dd date as "month year" with the
// Tunisian Arabic month name. Unparseable input yields "".
func ArabicMonthYear(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s %d", arabicMonths[parsed.Month()-1], parsed.Year())
}

// FromCession flattens a cession and its client into contract fields.
// Amounts keep their numeric form; the amount in words stays blank for
// the court clerk unless provided separately.
func FromCession(cession *models.Cession, client *models.Client) ContractData {
	data := ContractData{
		CourtName:           cession.CourtName,
		BookNumber:          cession.BookNumber,
		PageNumber:          cession.PageNumber,
		Date:                cession.StartDate,
		SupplierTaxID:       cession.SupplierTaxID,
		SupplierName:        cession.SupplierName,
		ItemDescription:     cession.ItemDescription,
		FirstDeductionMonth: ArabicMonthYear(cession.FirstDeductionDate),
	}
	if cession.TotalAmount > 0 {
		data.TotalAmountNumeric = formatAmount(cession.TotalAmount)
	}
	if cession.MonthlyPayment > 0 {
		data.MonthlyPayment = formatAmount(cession.MonthlyPayment)
	}

	if client != nil {
		data.WorkerNumber = client.WorkerNumber
		data.FullName = client.Name
		data.CIN = client.CIN
		data.Address = client.Address
		data.Workplace = client.Workplace
		data.JobTitle = client.Job
		data.BankAccountNumber = client.BankAccount
	}
	return data
}

// formatAmount renders a dinar amount with the three fraction digits
// used on the printed form.
func formatAmount(amount float64) string {
	return fmt.Sprintf("%.3f", amount)
}

// RenderContract produces the full HTML document.
func RenderContract(data ContractData) ([]byte, error) {
	var buf bytes.Buffer
	if err := contractTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "rendering contract")
	}
	return buf.Bytes(), nil
}
