package leave

import (
	"bytes"
	"context"
	"fmt"

	"go-vacation/internal/shared/contextutil"
	"go-vacation/internal/shared/dateutil"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportSheet = "Approved leave"

var exportHeader = []any{
	"Employee", "Employee number", "Org unit", "Start", "End", "Days", "Manager approval", "HR approval",
}

// ExportApproved renders every APPROVED_FINAL leave into an xlsx workbook.
func (s *service) ExportApproved(ctx context.Context) ([]byte, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	leaves, err := s.repo.FindByStatus(ctx, StatusApprovedFinal)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, l := range leaves {
		row := []any{
			l.RequesterName(),
			"",
			"",
			dateutil.FormatDisplay(l.StartDate),
			dateutil.FormatDisplay(l.EndDate),
			l.TotalDays,
			formatStamp(l.ManagerApprovedAt),
			formatStamp(l.HRApprovedAt),
		}
		if l.Profile != nil {
			row[1] = l.Profile.EmployeeNumber
			row[2] = l.Profile.OrgUnit
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	log.Info("approved leave exported", zap.Int("rows", len(leaves)))
	return buf.Bytes(), nil
}
