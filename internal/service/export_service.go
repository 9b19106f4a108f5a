package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/repository"
)

// ── Lỗi nghiệp vụ xuất dữ liệu ──

var (
	ErrExportNoSessions   = errors.New("lớp chưa có buổi học nào để xuất")
	ErrExportGenerateFail = errors.New("tạo file xuất thất bại")
)

// ExportService xuất dữ liệu điểm danh.
//
//   - Excel (.xlsx): bảng điểm danh toàn lớp, mỗi hàng một sinh viên,
//     mỗi cột một buổi, kèm cột tổng hợp điểm chuyên cần
//   - iCalendar (.ics): lịch các buổi học của lớp, nhúng được vào
//     Google Calendar / Outlook
//
// Kết quả trả về bytes.Buffer, tầng handler tự đặt header HTTP.
type ExportService interface {
	ExportClassAttendance(ctx context.Context, classID string) (*bytes.Buffer, string, error)
	ExportClassCalendar(ctx context.Context, classID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService tạo ExportService
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportClassAttendance — bảng điểm danh Excel
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportClassAttendance(ctx context.Context, classID string) (*bytes.Buffer, string, error) {
	tc, err := s.repo.TeachingClass.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrTeachingClassNotFound
		}
		s.logger.Error("truy vấn lớp giảng dạy thất bại", zap.Error(err))
		return nil, "", err
	}

	sessions, err := s.repo.AttendanceSession.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("truy vấn buổi học thất bại", zap.Error(err))
		return nil, "", err
	}
	if len(sessions) == 0 {
		return nil, "", ErrExportNoSessions
	}

	students, err := s.repo.User.ListByIDs(ctx, tc.Students)
	if err != nil {
		s.logger.Error("truy vấn sinh viên thất bại", zap.Error(err))
		return nil, "", err
	}

	scores, err := s.repo.StudentScore.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("truy vấn điểm chuyên cần thất bại", zap.Error(err))
		return nil, "", err
	}
	scoreByStudent := make(map[string]*model.StudentScore, len(scores))
	for i := range scores {
		scoreByStudent[scores[i].StudentID] = &scores[i]
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Điểm danh"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 26)
	for i := range sessions {
		col, _ := excelize.ColumnNumberToName(3 + i)
		f.SetColWidth(sheetName, col, col, 12)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// Dòng tiêu đề
	lastCol := colName(3 + len(sessions))
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — Bảng điểm danh", tc.ClassName))
	f.MergeCell(sheetName, "A1", fmt.Sprintf("%s1", lastCol))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// Dòng đầu bảng
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "MSSV")
	f.SetCellValue(sheetName, cell("B", row), "Họ và tên")
	for i, sess := range sessions {
		f.SetCellValue(sheetName, cell(colName(2+i), row),
			fmt.Sprintf("Buổi %d\n%s", sess.SessionNumber, sess.Date.Format("02/01")))
	}
	f.SetCellValue(sheetName, cell(colName(2+len(sessions)), row), "Số buổi vắng")
	f.SetCellValue(sheetName, cell(colName(3+len(sessions)), row), "Điểm chuyên cần")

	statusLabels := map[string]string{
		string(model.AttendancePresent): "Có mặt",
		string(model.AttendanceAbsent):  "Vắng",
		string(model.AttendanceLate):    "Muộn",
		string(model.AttendanceExcused): "Có phép",
	}

	// Dữ liệu từng sinh viên
	row = 3
	for i := range students {
		st := &students[i]
		f.SetCellValue(sheetName, cell("A", row), st.StudentCode)
		f.SetCellValue(sheetName, cell("B", row), st.FullName)

		logs, err := s.repo.AttendanceLog.ListByStudentAndSessions(ctx, st.UserID, sessionIDsOf(sessions))
		if err != nil {
			s.logger.Error("truy vấn bản ghi điểm danh thất bại", zap.Error(err))
			return nil, "", err
		}
		logBySession := make(map[string]model.AttendanceStatus, len(logs))
		for _, l := range logs {
			logBySession[l.SessionID] = l.Status
		}

		for j := range sessions {
			sess := &sessions[j]
			text := "-"
			if sess.Status == model.SessionStatusCompleted {
				if st2, ok := logBySession[sess.SessionID]; ok {
					text = statusLabels[string(st2)]
				} else if sess.StudentsPresent.Contains(st.UserID) {
					text = statusLabels[string(model.AttendancePresent)]
				} else {
					text = statusLabels[string(model.AttendanceAbsent)]
				}
			}
			f.SetCellValue(sheetName, cell(colName(2+j), row), text)
		}

		if sc, ok := scoreByStudent[st.UserID]; ok {
			f.SetCellValue(sheetName, cell(colName(2+len(sessions)), row), sc.AbsentSessions)
			f.SetCellValue(sheetName, cell(colName(3+len(sessions)), row), sc.AttendanceScore)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("ghi file Excel thất bại", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("diem_danh_%s.xlsx", tc.ClassCode)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportClassCalendar — lịch buổi học dạng iCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportClassCalendar(ctx context.Context, classID string) (*bytes.Buffer, string, error) {
	tc, err := s.repo.TeachingClass.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrTeachingClassNotFound
		}
		return nil, "", err
	}

	sessions, err := s.repo.AttendanceSession.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("truy vấn buổi học thất bại", zap.Error(err))
		return nil, "", err
	}
	if len(sessions) == 0 {
		return nil, "", ErrExportNoSessions
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//diem-danh//NONSGML v1.0//VI")

	for i := range sessions {
		sess := &sessions[i]
		if sess.Status == model.SessionStatusCancelled {
			continue
		}
		event := cal.AddEvent(sess.SessionID)
		event.SetCreatedTime(sess.CreatedAt)
		event.SetStartAt(sess.StartTime)
		event.SetEndAt(sess.EndTime)
		event.SetSummary(fmt.Sprintf("%s — Buổi %d", tc.ClassName, sess.SessionNumber))
		if sess.Room != nil {
			event.SetLocation(sess.Room.Name)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("lich_hoc_%s.ics", tc.ClassCode)
	return buf, filename, nil
}

// ── Hàm phụ trợ ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func sessionIDsOf(sessions []model.AttendanceSession) []string {
	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.SessionID)
	}
	return ids
}
