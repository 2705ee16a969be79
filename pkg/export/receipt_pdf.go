package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// ReceiptData carries everything printed on the registration receipt
// (bukti pendaftaran) handed to an applicant after a successful SPMB submit.
type ReceiptData struct {
	SchoolName         string
	SchoolAddress      string
	AcademicYear       string
	RegistrationNumber string
	PIN                string
	FullName           string
	BirthPlace         string
	BirthDate          string
	SchoolOfOrigin     string
	Department         string
	PaymentPlan        string
	TotalPayment       string
	RegisteredAt       string
	ContactPerson      string
	ContactWhatsApp    string
}

// ReceiptRenderer renders SPMB registration receipts.
type ReceiptRenderer struct{}

// NewReceiptRenderer constructs a receipt renderer.
func NewReceiptRenderer() *ReceiptRenderer {
	return &ReceiptRenderer{}
}

// Render produces the receipt PDF bytes.
func (r *ReceiptRenderer) Render(data ReceiptData) ([]byte, error) {
	if data.RegistrationNumber == "" {
		return nil, fmt.Errorf("receipt requires a registration number")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, strings.ToUpper(data.SchoolName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, data.SchoolAddress, "", 1, "C", false, 0, "")
	pdf.Ln(2)
	pdf.SetLineWidth(0.6)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "BUKTI PENDAFTARAN SISWA BARU", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Tahun Ajaran %s", data.AcademicYear), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	rows := [][2]string{
		{"Nomor Pendaftaran", data.RegistrationNumber},
		{"PIN", data.PIN},
		{"Nama Lengkap", data.FullName},
		{"Tempat, Tanggal Lahir", joinComma(data.BirthPlace, data.BirthDate)},
		{"Asal Sekolah", data.SchoolOfOrigin},
		{"Pilihan Jurusan", data.Department},
		{"Jenis Pembayaran", data.PaymentPlan},
		{"Total Pembayaran", data.TotalPayment},
		{"Tanggal Daftar", data.RegisteredAt},
	}
	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.CellFormat(55, 8, row[0], "1", 0, "", false, 0, "")
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(125, 8, row[1], "1", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(0, 5, "Simpan nomor pendaftaran dan PIN Anda. Keduanya diperlukan untuk memeriksa status pendaftaran.", "", "L", false)
	if data.ContactPerson != "" {
		pdf.Ln(2)
		contact := fmt.Sprintf("Informasi: %s", data.ContactPerson)
		if data.ContactWhatsApp != "" {
			contact += fmt.Sprintf(" (WA %s)", data.ContactWhatsApp)
		}
		pdf.MultiCell(0, 5, contact, "", "L", false)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func joinComma(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + ", " + b
	}
}
