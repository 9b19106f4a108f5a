package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/repository"
)

// newTestRepo tạo Repository tổng hợp dùng toàn mock, db để nil nên
// Transaction chạy trực tiếp không cần kết nối thật.
func newTestRepo() *repository.Repository {
	return &repository.Repository{
		User:              newMockUserRepo(),
		Semester:          newMockSemesterRepo(),
		Subject:           newMockSubjectRepo(),
		Room:              newMockRoomRepo(),
		MainClass:         newMockMainClassRepo(),
		TeachingClass:     newMockTeachingClassRepo(),
		AttendanceSession: newMockSessionRepo(),
		AttendanceLog:     newMockLogRepo(),
		StudentScore:      newMockScoreRepo(),
		Notification:      newMockNotificationRepo(),
	}
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByIDs(_ context.Context, ids []string) ([]model.User, error) {
	var result []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) List(_ context.Context, role, search string, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		if search != "" && !strings.Contains(u.FullName, search) && !strings.Contains(u.Email, search) {
			continue
		}
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UserID < all[j].UserID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// ── Mock SemesterRepository ──

type mockSemesterRepo struct {
	semesters map[string]*model.Semester
	seq       int
}

func newMockSemesterRepo() *mockSemesterRepo {
	return &mockSemesterRepo{semesters: make(map[string]*model.Semester)}
}

func (m *mockSemesterRepo) Create(_ context.Context, semester *model.Semester) error {
	if semester.SemesterID == "" {
		m.seq++
		semester.SemesterID = fmt.Sprintf("sem-%d", m.seq)
	}
	m.semesters[semester.SemesterID] = semester
	return nil
}

func (m *mockSemesterRepo) GetByID(_ context.Context, id string) (*model.Semester, error) {
	if s, ok := m.semesters[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) GetCurrent(_ context.Context) (*model.Semester, error) {
	for _, s := range m.semesters {
		if s.IsActive {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) List(_ context.Context) ([]model.Semester, error) {
	var result []model.Semester
	for _, s := range m.semesters {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SemesterID < result[j].SemesterID })
	return result, nil
}

func (m *mockSemesterRepo) Update(_ context.Context, semester *model.Semester) error {
	m.semesters[semester.SemesterID] = semester
	return nil
}

func (m *mockSemesterRepo) Delete(_ context.Context, id string) error {
	delete(m.semesters, id)
	return nil
}

func (m *mockSemesterRepo) ClearActive(_ context.Context) error {
	for _, s := range m.semesters {
		s.IsActive = false
	}
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
	seq      int
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	if subject.SubjectID == "" {
		m.seq++
		subject.SubjectID = fmt.Sprintf("subj-%d", m.seq)
	}
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context) ([]model.Subject, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SubjectID < result[j].SubjectID })
	return result, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, subject *model.Subject) error {
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id string) error {
	delete(m.subjects, id)
	return nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms map[string]*model.Room
	seq   int
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[string]*model.Room)}
}

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	if room.RoomID == "" {
		m.seq++
		room.RoomID = fmt.Sprintf("room-%d", m.seq)
	}
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) GetByID(_ context.Context, id string) (*model.Room, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) List(_ context.Context) ([]model.Room, error) {
	var result []model.Room
	for _, r := range m.rooms {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RoomID < result[j].RoomID })
	return result, nil
}

func (m *mockRoomRepo) Update(_ context.Context, room *model.Room) error {
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) Delete(_ context.Context, id string) error {
	delete(m.rooms, id)
	return nil
}

// ── Mock MainClassRepository ──

type mockMainClassRepo struct {
	classes map[string]*model.MainClass
	seq     int
}

func newMockMainClassRepo() *mockMainClassRepo {
	return &mockMainClassRepo{classes: make(map[string]*model.MainClass)}
}

func (m *mockMainClassRepo) Create(_ context.Context, mc *model.MainClass) error {
	if mc.MainClassID == "" {
		m.seq++
		mc.MainClassID = fmt.Sprintf("mc-%d", m.seq)
	}
	m.classes[mc.MainClassID] = mc
	return nil
}

func (m *mockMainClassRepo) GetByID(_ context.Context, id string) (*model.MainClass, error) {
	if mc, ok := m.classes[id]; ok {
		return mc, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMainClassRepo) List(_ context.Context, search, advisorID string, offset, limit int) ([]model.MainClass, int64, error) {
	var all []model.MainClass
	for _, mc := range m.classes {
		if search != "" && !strings.Contains(mc.Name, search) && !strings.Contains(mc.ClassCode, search) {
			continue
		}
		if advisorID != "" && (mc.AdvisorID == nil || *mc.AdvisorID != advisorID) {
			continue
		}
		all = append(all, *mc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].MainClassID < all[j].MainClassID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockMainClassRepo) Update(_ context.Context, mc *model.MainClass) error {
	m.classes[mc.MainClassID] = mc
	return nil
}

func (m *mockMainClassRepo) Delete(_ context.Context, id string) error {
	delete(m.classes, id)
	return nil
}

// ── Mock TeachingClassRepository ──

type mockTeachingClassRepo struct {
	classes map[string]*model.TeachingClass
	seq     int
}

func newMockTeachingClassRepo() *mockTeachingClassRepo {
	return &mockTeachingClassRepo{classes: make(map[string]*model.TeachingClass)}
}

func (m *mockTeachingClassRepo) Create(_ context.Context, tc *model.TeachingClass) error {
	if tc.TeachingClassID == "" {
		m.seq++
		tc.TeachingClassID = fmt.Sprintf("tc-%d", m.seq)
	}
	m.classes[tc.TeachingClassID] = tc
	return nil
}

func (m *mockTeachingClassRepo) GetByID(_ context.Context, id string) (*model.TeachingClass, error) {
	if tc, ok := m.classes[id]; ok {
		return tc, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeachingClassRepo) List(_ context.Context, filter repository.TeachingClassFilter, offset, limit int) ([]model.TeachingClass, int64, error) {
	var all []model.TeachingClass
	for _, tc := range m.classes {
		if filter.TeacherID != "" && tc.TeacherID != filter.TeacherID {
			continue
		}
		if filter.SemesterID != "" && tc.SemesterID != filter.SemesterID {
			continue
		}
		if filter.StudentID != "" && !tc.Students.Contains(filter.StudentID) {
			continue
		}
		if filter.Search != "" && !strings.Contains(tc.ClassName, filter.Search) && !strings.Contains(tc.ClassCode, filter.Search) {
			continue
		}
		all = append(all, *tc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].TeachingClassID < all[j].TeachingClassID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockTeachingClassRepo) ListByTeacher(_ context.Context, teacherID, excludeID string) ([]model.TeachingClass, error) {
	var result []model.TeachingClass
	for _, tc := range m.classes {
		if tc.TeacherID != teacherID || tc.TeachingClassID == excludeID {
			continue
		}
		result = append(result, *tc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TeachingClassID < result[j].TeachingClassID })
	return result, nil
}

func (m *mockTeachingClassRepo) ListScheduled(_ context.Context, excludeID string) ([]model.TeachingClass, error) {
	var result []model.TeachingClass
	for _, tc := range m.classes {
		if tc.TeachingClassID == excludeID || len(tc.Schedule) == 0 {
			continue
		}
		result = append(result, *tc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TeachingClassID < result[j].TeachingClassID })
	return result, nil
}

func (m *mockTeachingClassRepo) Update(_ context.Context, tc *model.TeachingClass) error {
	m.classes[tc.TeachingClassID] = tc
	return nil
}

func (m *mockTeachingClassRepo) Delete(_ context.Context, id string) error {
	delete(m.classes, id)
	return nil
}

// ── Mock AttendanceSessionRepository ──

type mockSessionRepo struct {
	sessions map[string]*model.AttendanceSession
	seq      int
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.AttendanceSession)}
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.AttendanceSession) error {
	if session.SessionID == "" {
		m.seq++
		session.SessionID = fmt.Sprintf("sess-%d", m.seq)
	}
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.AttendanceSession, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) ListByClass(_ context.Context, classID string) ([]model.AttendanceSession, error) {
	var result []model.AttendanceSession
	for _, s := range m.sessions {
		if s.TeachingClassID == classID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SessionNumber < result[j].SessionNumber })
	return result, nil
}

func (m *mockSessionRepo) ListByClassAndStatus(_ context.Context, classID, status string) ([]model.AttendanceSession, error) {
	var result []model.AttendanceSession
	for _, s := range m.sessions {
		if s.TeachingClassID == classID && s.Status == status {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SessionNumber < result[j].SessionNumber })
	return result, nil
}

func (m *mockSessionRepo) ListUpcomingByClass(_ context.Context, classID string, after time.Time) ([]model.AttendanceSession, error) {
	var result []model.AttendanceSession
	for _, s := range m.sessions {
		if s.TeachingClassID != classID || s.Status == model.SessionStatusCancelled {
			continue
		}
		if s.EndTime.Before(after) {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}

func (m *mockSessionRepo) CountByClass(_ context.Context, classID string) (int64, error) {
	var count int64
	for _, s := range m.sessions {
		if s.TeachingClassID == classID {
			count++
		}
	}
	return count, nil
}

func (m *mockSessionRepo) Update(_ context.Context, session *model.AttendanceSession) error {
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) DeleteByClassAndStatus(_ context.Context, classID, status string) error {
	for id, s := range m.sessions {
		if s.TeachingClassID == classID && s.Status == status {
			delete(m.sessions, id)
		}
	}
	return nil
}

func (m *mockSessionRepo) DeleteByClass(_ context.Context, classID string) error {
	for id, s := range m.sessions {
		if s.TeachingClassID == classID {
			delete(m.sessions, id)
		}
	}
	return nil
}

// ── Mock AttendanceLogRepository ──

type mockLogRepo struct {
	logs map[string]*model.AttendanceLog // key: sessionID|studentID
	seq  int
}

func newMockLogRepo() *mockLogRepo {
	return &mockLogRepo{logs: make(map[string]*model.AttendanceLog)}
}

func logKey(sessionID, studentID string) string {
	return sessionID + "|" + studentID
}

func (m *mockLogRepo) GetBySessionAndStudent(_ context.Context, sessionID, studentID string) (*model.AttendanceLog, error) {
	if l, ok := m.logs[logKey(sessionID, studentID)]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// Upsert mô phỏng ON CONFLICT: bản ghi trùng khóa chỉ cập nhật status/note/timestamp
func (m *mockLogRepo) Upsert(_ context.Context, log *model.AttendanceLog) error {
	key := logKey(log.SessionID, log.StudentID)
	if existing, ok := m.logs[key]; ok {
		existing.Status = log.Status
		existing.Note = log.Note
		existing.Timestamp = log.Timestamp
		return nil
	}
	if log.LogID == "" {
		m.seq++
		log.LogID = fmt.Sprintf("log-%d", m.seq)
	}
	cp := *log
	m.logs[key] = &cp
	return nil
}

func (m *mockLogRepo) ListBySession(_ context.Context, sessionID string) ([]model.AttendanceLog, error) {
	var result []model.AttendanceLog
	for _, l := range m.logs {
		if l.SessionID == sessionID {
			result = append(result, *l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp.Before(result[j].Timestamp) })
	return result, nil
}

func (m *mockLogRepo) ListByStudentAndSessions(_ context.Context, studentID string, sessionIDs []string) ([]model.AttendanceLog, error) {
	var result []model.AttendanceLog
	for _, id := range sessionIDs {
		if l, ok := m.logs[logKey(id, studentID)]; ok {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockLogRepo) DeleteBySessions(_ context.Context, sessionIDs []string) error {
	for key, l := range m.logs {
		for _, id := range sessionIDs {
			if l.SessionID == id {
				delete(m.logs, key)
				break
			}
		}
	}
	return nil
}

func (m *mockLogRepo) DeleteByStudentAndSessions(_ context.Context, studentID string, sessionIDs []string) error {
	for _, id := range sessionIDs {
		delete(m.logs, logKey(id, studentID))
	}
	return nil
}

// ── Mock StudentScoreRepository ──

type mockScoreRepo struct {
	scores map[string]*model.StudentScore // key: classID|studentID
	seq    int
}

func newMockScoreRepo() *mockScoreRepo {
	return &mockScoreRepo{scores: make(map[string]*model.StudentScore)}
}

func scoreKey(classID, studentID string) string {
	return classID + "|" + studentID
}

func (m *mockScoreRepo) GetByClassAndStudent(_ context.Context, classID, studentID string) (*model.StudentScore, error) {
	if s, ok := m.scores[scoreKey(classID, studentID)]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScoreRepo) ListByClass(_ context.Context, classID string) ([]model.StudentScore, error) {
	var result []model.StudentScore
	for _, s := range m.scores {
		if s.TeachingClassID == classID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StudentID < result[j].StudentID })
	return result, nil
}

// Upsert mô phỏng ON CONFLICT: bản ghi trùng khóa chỉ cập nhật các trường
// hệ thống tính, giữ nguyên final_score và note giáo viên đã nhập
func (m *mockScoreRepo) Upsert(_ context.Context, score *model.StudentScore) error {
	key := scoreKey(score.TeachingClassID, score.StudentID)
	if existing, ok := m.scores[key]; ok {
		existing.TotalSessions = score.TotalSessions
		existing.AbsentSessions = score.AbsentSessions
		existing.AttendanceScore = score.AttendanceScore
		existing.MaxAbsentAllowed = score.MaxAbsentAllowed
		existing.IsFailedDueToAbsent = score.IsFailedDueToAbsent
		existing.LastUpdated = score.LastUpdated
		return nil
	}
	if score.ScoreID == "" {
		m.seq++
		score.ScoreID = fmt.Sprintf("score-%d", m.seq)
	}
	cp := *score
	m.scores[key] = &cp
	return nil
}

func (m *mockScoreRepo) Update(_ context.Context, score *model.StudentScore) error {
	m.scores[scoreKey(score.TeachingClassID, score.StudentID)] = score
	return nil
}

func (m *mockScoreRepo) DeleteByClass(_ context.Context, classID string) error {
	for key, s := range m.scores {
		if s.TeachingClassID == classID {
			delete(m.scores, key)
		}
	}
	return nil
}

func (m *mockScoreRepo) DeleteByClassAndStudent(_ context.Context, classID, studentID string) error {
	delete(m.scores, scoreKey(classID, studentID))
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []*model.Notification
	seq           int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) BatchCreate(_ context.Context, notifications []model.Notification) error {
	for i := range notifications {
		m.seq++
		if notifications[i].NotificationID == "" {
			notifications[i].NotificationID = fmt.Sprintf("notif-%d", m.seq)
		}
		cp := notifications[i]
		m.notifications = append(m.notifications, &cp)
	}
	return nil
}

func (m *mockNotificationRepo) ListByReceiver(_ context.Context, receiverID string, offset, limit int) ([]model.Notification, int64, error) {
	var all []model.Notification
	for _, n := range m.notifications {
		if n.ReceiverID == receiverID {
			all = append(all, *n)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, notificationID, receiverID string) error {
	for _, n := range m.notifications {
		if n.NotificationID == notificationID && n.ReceiverID == receiverID {
			n.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
