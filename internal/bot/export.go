package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"davomat/internal/i18n"
	"davomat/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// sendAttendanceReport собирает xlsx с явками за текущий месяц
// и отправляет его документом в чат.
func (b *Bot) sendAttendanceReport(ctx context.Context, chatID int64, lang string) {
	l := zerolog.Ctx(ctx)

	now := b.clock.Now()
	monthStart := now.AddDate(0, 0, -(now.Day() - 1))
	fromDay := b.clock.DayOf(monthStart)
	toDay := b.clock.Today()

	records, err := b.attendanceService.Range(ctx, fromDay, toDay)
	if err != nil {
		l.Error().Err(err).Msg("Failed to load attendance for report")
		b.send(chatID, i18n.T(lang, "report_failed"))
		return
	}

	path, err := b.writeAttendanceWorkbook(records, now.Format("2006-01"))
	if err != nil {
		l.Error().Err(err).Msg("Failed to build attendance workbook")
		b.send(chatID, i18n.T(lang, "report_failed"))
		return
	}
	defer os.Remove(path)

	caption := i18n.Tf(lang, "report_caption", now.Format("01.2006"))
	if err := b.tgService.SendDocument(chatID, path, caption); err != nil {
		l.Error().Err(err).Msg("Failed to send report document")
		b.send(chatID, i18n.T(lang, "report_failed"))
	}
}

func (b *Bot) writeAttendanceWorkbook(records []models.AttendanceRecord, month string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return "", err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", err
	}

	headers := []string{"Day", "Worker", "Check-in", "Check-out", "Late comment"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return "", err
		}
	}
	if headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheet, "A1", "E1", headerStyle)
	}

	for i := range records {
		rec := &records[i]
		row := i + 2
		setCell := func(col int, value interface{}) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, value)
		}
		setCell(1, formatDay(rec.Day))
		setCell(2, rec.WorkerName)
		if rec.CheckIn != nil {
			setCell(3, rec.CheckIn.In(b.clock.Location()).Format("15:04"))
		}
		if rec.CheckOut != nil {
			setCell(4, rec.CheckOut.In(b.clock.Location()).Format("15:04"))
		}
		if rec.LateComment != "" {
			setCell(5, rec.LateComment)
		}
	}

	_ = f.SetColWidth(sheet, "A", "B", 20)
	_ = f.SetColWidth(sheet, "E", "E", 40)

	dir := b.config.Exports.Path
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("davomat_%s.xlsx", month))
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}
