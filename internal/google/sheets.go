package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"davomat/internal/models"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	attendanceSheet = "Attendance"
	requestsSheet   = "Requests"
	timeLayout      = "2006-01-02 15:04:05"
)

var errRowNotFound = errors.New("sheet row not found")

// SheetsService зеркалирует явки и заявки в две Google-таблицы.
// Колонка A каждого листа хранит ключ строки для поиска при upsert.
type SheetsService struct {
	service            *sheets.Service
	attendanceSheetID  string
	requestsSheetID    string
	attendanceRowCache map[string]int
	requestRowCache    map[int64]int
	cacheMu            sync.RWMutex
}

func NewSheetsService(credentialsFile, attendanceSheetID, requestsSheetID string) (*SheetsService, error) {
	ctx := context.Background()

	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}

	return &SheetsService{
		service:            srv,
		attendanceSheetID:  attendanceSheetID,
		requestsSheetID:    requestsSheetID,
		attendanceRowCache: make(map[string]int),
		requestRowCache:    make(map[int64]int),
	}, nil
}

// TestConnection проверяет доступ сервисного аккаунта к таблицам.
func (s *SheetsService) TestConnection(ctx context.Context) error {
	if _, err := s.service.Spreadsheets.Values.Get(s.attendanceSheetID, attendanceSheet+"!A1").Context(ctx).Do(); err != nil {
		return fmt.Errorf("attendance sheet connection test failed: %w", err)
	}
	if _, err := s.service.Spreadsheets.Values.Get(s.requestsSheetID, requestsSheet+"!A1").Context(ctx).Do(); err != nil {
		return fmt.Errorf("requests sheet connection test failed: %w", err)
	}
	return nil
}

func attendanceKey(rec *models.AttendanceRecord) string {
	return fmt.Sprintf("%d:%s", rec.WorkerID, rec.Day)
}

func attendanceRowValues(rec *models.AttendanceRecord) []interface{} {
	checkIn, checkOut := "", ""
	if rec.CheckIn != nil {
		checkIn = rec.CheckIn.Format(timeLayout)
	}
	if rec.CheckOut != nil {
		checkOut = rec.CheckOut.Format(timeLayout)
	}
	return []interface{}{
		attendanceKey(rec),
		rec.Day,
		rec.WorkerID,
		rec.WorkerName,
		checkIn,
		checkOut,
		rec.LateComment,
	}
}

// UpsertAttendance обновляет строку явки или добавляет новую.
func (s *SheetsService) UpsertAttendance(ctx context.Context, rec *models.AttendanceRecord) error {
	if rec == nil {
		return errors.New("attendance record is nil")
	}

	key := attendanceKey(rec)
	rowIdx, err := s.findRow(ctx, s.attendanceSheetID, attendanceSheet, key)
	if errors.Is(err, errRowNotFound) {
		return s.appendRow(ctx, s.attendanceSheetID, attendanceSheet, attendanceRowValues(rec))
	}
	if err != nil {
		return err
	}

	rangeData := fmt.Sprintf("%s!A%d:G%d", attendanceSheet, rowIdx, rowIdx)
	_, err = s.service.Spreadsheets.Values.Update(s.attendanceSheetID, rangeData, &sheets.ValueRange{
		Values: [][]interface{}{attendanceRowValues(rec)},
	}).ValueInputOption("RAW").Context(ctx).Do()
	return err
}

func requestRowValues(req *models.Request) []interface{} {
	target, decidedAt := "", ""
	if req.TargetTime != nil {
		target = req.TargetTime.Format(timeLayout)
	}
	if req.DecidedAt != nil {
		decidedAt = req.DecidedAt.Format(timeLayout)
	}
	var created string
	if !req.CreatedAt.IsZero() {
		created = req.CreatedAt.Format(timeLayout)
	} else {
		created = time.Now().Format(timeLayout)
	}
	return []interface{}{
		req.ID,
		req.WorkerID,
		req.WorkerName,
		req.Type,
		req.HourlyKind,
		req.Status,
		req.LeaveDate,
		req.ReturnDate,
		target,
		req.Reason,
		req.DecisionComment,
		decidedAt,
		created,
	}
}

// UpsertRequest обновляет строку заявки или добавляет новую.
// Вызывается и при создании заявки, и после решения по ней.
func (s *SheetsService) UpsertRequest(ctx context.Context, req *models.Request) error {
	if req == nil {
		return errors.New("request is nil")
	}

	key := fmt.Sprintf("%d", req.ID)
	rowIdx, err := s.findRow(ctx, s.requestsSheetID, requestsSheet, key)
	if errors.Is(err, errRowNotFound) {
		return s.appendRow(ctx, s.requestsSheetID, requestsSheet, requestRowValues(req))
	}
	if err != nil {
		return err
	}

	rangeData := fmt.Sprintf("%s!A%d:M%d", requestsSheet, rowIdx, rowIdx)
	_, err = s.service.Spreadsheets.Values.Update(s.requestsSheetID, rangeData, &sheets.ValueRange{
		Values: [][]interface{}{requestRowValues(req)},
	}).ValueInputOption("RAW").Context(ctx).Do()
	return err
}

func (s *SheetsService) appendRow(ctx context.Context, spreadsheetID, sheet string, row []interface{}) error {
	_, err := s.service.Spreadsheets.Values.Append(spreadsheetID, sheet+"!A:A", &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	return err
}

// findRow ищет строку по ключу в колонке A, с кэшем индексов.
func (s *SheetsService) findRow(ctx context.Context, spreadsheetID, sheet, key string) (int, error) {
	if row, ok := s.getCachedRow(sheet, key); ok {
		return row, nil
	}

	resp, err := s.service.Spreadsheets.Values.Get(spreadsheetID, sheet+"!A:A").Context(ctx).Do()
	if err != nil {
		return 0, err
	}

	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		var cell string
		switch v := row[0].(type) {
		case float64:
			cell = fmt.Sprintf("%d", int64(v))
		case string:
			cell = v
		}
		if cell == key {
			rowIdx := i + 1 // Values нумеруются с нуля, строки листа — с единицы
			s.setCachedRow(sheet, key, rowIdx)
			return rowIdx, nil
		}
	}
	return 0, errRowNotFound
}

func (s *SheetsService) getCachedRow(sheet, key string) (int, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	if sheet == attendanceSheet {
		row, ok := s.attendanceRowCache[key]
		return row, ok
	}
	var id int64
	fmt.Sscanf(key, "%d", &id)
	row, ok := s.requestRowCache[id]
	return row, ok
}

func (s *SheetsService) setCachedRow(sheet, key string, row int) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if sheet == attendanceSheet {
		s.attendanceRowCache[key] = row
		return
	}
	var id int64
	fmt.Sscanf(key, "%d", &id)
	s.requestRowCache[id] = row
}
