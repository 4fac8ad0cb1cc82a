package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"blood-connect/internal/domain"
	"blood-connect/internal/repository"
)

const (
	sheetName   = "Donors"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var donorHeader = []string{
	"Name", "Blood Group", "Gender", "Phone", "Email", "District", "Upazila", "Area",
	"Last Donation", "Donations", "Available", "Blocked", "Registered",
}

var columnWidths = []float64{24, 12, 10, 16, 28, 16, 16, 18, 14, 10, 10, 10, 14}

type Service interface {
	ExportDonors(ctx context.Context, filter domain.DonorFilter) ([]byte, error)
}

type service struct {
	donorRepo repository.DonorRepository
	now       func() time.Time
}

func NewService(donorRepo repository.DonorRepository) Service {
	return &service{
		donorRepo: donorRepo,
		now:       time.Now,
	}
}

// ExportDonors writes the filtered donor directory to a single-sheet XLSX
// workbook. Blocked donors are included so moderators see the full list.
func (s *service) ExportDonors(ctx context.Context, filter domain.DonorFilter) ([]byte, error) {
	filter.IncludeBlocked = true
	donors, err := s.donorRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FDE2E2"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &donorHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(donorHeader), 1)
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, width := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	now := s.now()
	for i := range donors {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, donorRow(&donors[i], now)); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func donorRow(d *domain.Donor, now time.Time) *[]interface{} {
	row := []interface{}{
		d.Name,
		d.BloodGroup,
		d.Gender,
		deref(d.Phone),
		deref(d.Email),
		d.District,
		d.Upazila,
		d.Area,
		formatDate(d.LastDonation),
		d.DonationsCount,
		yesNo(d.GetAvailability(now)),
		yesNo(d.IsBlocked),
		d.CreatedAt.Format("2006-01-02"),
	}
	return &row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
