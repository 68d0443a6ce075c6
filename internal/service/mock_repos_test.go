package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/model"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/repository"
)

// 手写内存 mock，覆盖全部 Repository 接口。
// 预约 mock 用互斥锁 + 内存唯一索引模拟 uq_no_double_booking 的提交语义。

// uniqueViolationErr 模拟 PostgreSQL 唯一约束冲突（SQLSTATE 23505）
type uniqueViolationErr struct{ constraint string }

func (e *uniqueViolationErr) Error() string    { return "唯一约束冲突: " + e.constraint }
func (e *uniqueViolationErr) SQLState() string { return "23505" }

// ────────────────────── Faculty ──────────────────────

type mockFacultyRepo struct {
	mu        sync.Mutex
	nextID    int
	faculties map[int]*model.Faculty
}

func newMockFacultyRepo() *mockFacultyRepo {
	return &mockFacultyRepo{nextID: 1, faculties: make(map[int]*model.Faculty)}
}

func (m *mockFacultyRepo) Create(_ context.Context, faculty *model.Faculty) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	faculty.ID = m.nextID
	m.nextID++
	clone := *faculty
	m.faculties[faculty.ID] = &clone
	return nil
}

func (m *mockFacultyRepo) GetByID(_ context.Context, id int) (*model.Faculty, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	faculty, ok := m.faculties[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *faculty
	return &clone, nil
}

func (m *mockFacultyRepo) GetByName(_ context.Context, normalized string) (*model.Faculty, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, faculty := range m.faculties {
		if strings.ToLower(strings.TrimSpace(faculty.FacultyName)) == normalized {
			clone := *faculty
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFacultyRepo) List(_ context.Context) ([]model.Faculty, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.Faculty, 0, len(m.faculties))
	for _, faculty := range m.faculties {
		result = append(result, *faculty)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockFacultyRepo) Update(_ context.Context, faculty *model.Faculty) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.faculties[faculty.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *faculty
	m.faculties[faculty.ID] = &clone
	return nil
}

// ────────────────────── Ambient ──────────────────────

type mockAmbientRepo struct {
	mu       sync.Mutex
	nextID   int
	types    map[int]*model.AmbientType
	blocks   map[int]*model.Block
	ambients map[int]*model.Ambient
}

func newMockAmbientRepo() *mockAmbientRepo {
	return &mockAmbientRepo{
		nextID:   1,
		types:    make(map[int]*model.AmbientType),
		blocks:   make(map[int]*model.Block),
		ambients: make(map[int]*model.Ambient),
	}
}

func (m *mockAmbientRepo) CreateType(_ context.Context, ambientType *model.AmbientType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ambientType.ID = m.nextID
	m.nextID++
	clone := *ambientType
	m.types[ambientType.ID] = &clone
	return nil
}

func (m *mockAmbientRepo) ListTypes(_ context.Context) ([]model.AmbientType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.AmbientType, 0, len(m.types))
	for _, t := range m.types {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockAmbientRepo) CreateBlock(_ context.Context, block *model.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	block.ID = m.nextID
	m.nextID++
	clone := *block
	m.blocks[block.ID] = &clone
	return nil
}

func (m *mockAmbientRepo) GetBlockByID(_ context.Context, id int) (*model.Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	block, ok := m.blocks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *block
	return &clone, nil
}

func (m *mockAmbientRepo) ListBlocks(_ context.Context, facultyID int) ([]model.Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.Block, 0, len(m.blocks))
	for _, block := range m.blocks {
		if facultyID > 0 && block.FacultyID != facultyID {
			continue
		}
		result = append(result, *block)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockAmbientRepo) Create(_ context.Context, ambient *model.Ambient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.ambients {
		if existing.BlockID == ambient.BlockID &&
			strings.EqualFold(existing.AmbientName, ambient.AmbientName) {
			return &uniqueViolationErr{constraint: "uq_ambient_name_per_block"}
		}
	}
	ambient.ID = m.nextID
	m.nextID++
	clone := *ambient
	m.ambients[ambient.ID] = &clone
	return nil
}

func (m *mockAmbientRepo) GetByID(_ context.Context, id int) (*model.Ambient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ambient, ok := m.ambients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *ambient
	return &clone, nil
}

func (m *mockAmbientRepo) GetByIDs(_ context.Context, ids []int) ([]model.Ambient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.Ambient, 0, len(ids))
	for _, id := range ids {
		if ambient, ok := m.ambients[id]; ok {
			result = append(result, *ambient)
		}
	}
	return result, nil
}

func (m *mockAmbientRepo) List(_ context.Context, blockID int, onlyActive bool) ([]model.Ambient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.Ambient, 0, len(m.ambients))
	for _, ambient := range m.ambients {
		if blockID > 0 && ambient.BlockID != blockID {
			continue
		}
		if onlyActive && !ambient.IsActive {
			continue
		}
		result = append(result, *ambient)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockAmbientRepo) Update(_ context.Context, ambient *model.Ambient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ambients[ambient.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *ambient
	m.ambients[ambient.ID] = &clone
	return nil
}

// ────────────────────── Group ──────────────────────

type mockGroupRepo struct {
	mu     sync.Mutex
	nextID int
	groups map[int]*model.Group
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{nextID: 1, groups: make(map[int]*model.Group)}
}

func (m *mockGroupRepo) Create(_ context.Context, group *model.Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	group.ID = m.nextID
	m.nextID++
	clone := *group
	m.groups[group.ID] = &clone
	return nil
}

func (m *mockGroupRepo) GetByID(_ context.Context, id int) (*model.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	group, ok := m.groups[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *group
	return &clone, nil
}

func (m *mockGroupRepo) GetByIDs(_ context.Context, ids []int) ([]model.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.Group, 0, len(ids))
	for _, id := range ids {
		if group, ok := m.groups[id]; ok {
			result = append(result, *group)
		}
	}
	return result, nil
}

func (m *mockGroupRepo) List(_ context.Context) ([]model.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.Group, 0, len(m.groups))
	for _, group := range m.groups {
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ────────────────────── Person ──────────────────────

type mockPersonRepo struct {
	mu         sync.Mutex
	nextRoleID int
	people     map[string]*model.Person
	roles      []model.PersonRole
}

func newMockPersonRepo() *mockPersonRepo {
	return &mockPersonRepo{nextRoleID: 1, people: make(map[string]*model.Person)}
}

func (m *mockPersonRepo) Create(_ context.Context, person *model.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.people[person.CI]; ok {
		return &uniqueViolationErr{constraint: "people_pkey"}
	}
	clone := *person
	m.people[person.CI] = &clone
	return nil
}

func (m *mockPersonRepo) GetByCI(_ context.Context, ci string) (*model.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	person, ok := m.people[ci]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *person
	return &clone, nil
}

func (m *mockPersonRepo) GetByEmail(_ context.Context, normalized string) (*model.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, person := range m.people {
		if strings.ToLower(strings.TrimSpace(person.Email)) == normalized {
			clone := *person
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPersonRepo) AddRole(_ context.Context, role *model.PersonRole) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	role.ID = m.nextRoleID
	m.nextRoleID++
	m.roles = append(m.roles, *role)
	return nil
}

func (m *mockPersonRepo) ListRoles(_ context.Context, ci string) ([]model.PersonRole, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.PersonRole
	for _, role := range m.roles {
		if role.CI == ci {
			result = append(result, role)
		}
	}
	return result, nil
}

// ────────────────────── TimeModel ──────────────────────

type mockTimeModelRepo struct {
	mu         sync.Mutex
	nextID     int
	models     map[int]*model.TimeModel
	slots      map[int][]model.TimeSlot
	periodRefs map[int]int64 // 由测试装配，模拟学期引用计数
}

func newMockTimeModelRepo() *mockTimeModelRepo {
	return &mockTimeModelRepo{
		nextID:     1,
		models:     make(map[int]*model.TimeModel),
		slots:      make(map[int][]model.TimeSlot),
		periodRefs: make(map[int]int64),
	}
}

func (m *mockTimeModelRepo) Create(_ context.Context, timeModel *model.TimeModel, slots []model.TimeSlot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.models {
		if strings.EqualFold(strings.TrimSpace(existing.ModelName), strings.TrimSpace(timeModel.ModelName)) {
			return &uniqueViolationErr{constraint: "uq_time_model_name"}
		}
	}
	timeModel.ID = m.nextID
	m.nextID++
	clone := *timeModel
	m.models[timeModel.ID] = &clone
	stored := make([]model.TimeSlot, len(slots))
	copy(stored, slots)
	for i := range stored {
		stored[i].TimeModelID = timeModel.ID
	}
	m.slots[timeModel.ID] = stored
	return nil
}

func (m *mockTimeModelRepo) GetByID(_ context.Context, id int) (*model.TimeModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	timeModel, ok := m.models[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *timeModel
	clone.Slots = append([]model.TimeSlot(nil), m.slots[id]...)
	return &clone, nil
}

func (m *mockTimeModelRepo) GetByName(_ context.Context, normalized string) (*model.TimeModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, timeModel := range m.models {
		if strings.ToLower(strings.TrimSpace(timeModel.ModelName)) == normalized {
			clone := *timeModel
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeModelRepo) List(_ context.Context) ([]model.TimeModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.TimeModel, 0, len(m.models))
	for _, timeModel := range m.models {
		result = append(result, *timeModel)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockTimeModelRepo) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.models, id)
	delete(m.slots, id)
	return nil
}

func (m *mockTimeModelRepo) CountPeriodRefs(_ context.Context, id int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.periodRefs[id], nil
}

func (m *mockTimeModelRepo) SlotExists(_ context.Context, timeModelID int, slotOrdinal int16) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, slot := range m.slots[timeModelID] {
		if slot.SlotOrdinal == slotOrdinal {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTimeModelRepo) GetSlots(_ context.Context, timeModelID int) ([]model.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.TimeSlot(nil), m.slots[timeModelID]...), nil
}

// ────────────────────── Period ──────────────────────

type mockPeriodRepo struct {
	mu      sync.Mutex
	nextID  int
	periods map[int]*model.AcademicPeriod
}

func newMockPeriodRepo() *mockPeriodRepo {
	return &mockPeriodRepo{nextID: 1, periods: make(map[int]*model.AcademicPeriod)}
}

func (m *mockPeriodRepo) Create(_ context.Context, period *model.AcademicPeriod) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.periods {
		if existing.FacultyID == period.FacultyID &&
			existing.Year == period.Year && existing.Season == period.Season {
			return &uniqueViolationErr{constraint: "uq_ap_fac_year_season"}
		}
	}
	period.ID = m.nextID
	m.nextID++
	clone := *period
	m.periods[period.ID] = &clone
	return nil
}

func (m *mockPeriodRepo) GetByID(_ context.Context, id int) (*model.AcademicPeriod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	period, ok := m.periods[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *period
	return &clone, nil
}

func (m *mockPeriodRepo) GetByFacultyYearSeason(_ context.Context, facultyID int, year, season int16) (*model.AcademicPeriod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, period := range m.periods {
		if period.FacultyID == facultyID && period.Year == year && period.Season == season {
			clone := *period
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPeriodRepo) GetActiveByFaculty(_ context.Context, facultyID int) (*model.AcademicPeriod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, period := range m.periods {
		if period.FacultyID == facultyID && period.Status == model.PeriodStatusActive {
			clone := *period
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPeriodRepo) List(_ context.Context, facultyID int) ([]model.AcademicPeriod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.AcademicPeriod, 0, len(m.periods))
	for _, period := range m.periods {
		if facultyID > 0 && period.FacultyID != facultyID {
			continue
		}
		result = append(result, *period)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockPeriodRepo) Update(_ context.Context, period *model.AcademicPeriod) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.periods[period.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if period.Status == model.PeriodStatusActive {
		for _, existing := range m.periods {
			if existing.ID != period.ID &&
				existing.FacultyID == period.FacultyID &&
				existing.Status == model.PeriodStatusActive {
				return &uniqueViolationErr{constraint: "uq_one_active_period_per_fac"}
			}
		}
	}
	clone := *period
	m.periods[period.ID] = &clone
	return nil
}

// ────────────────────── Assignment ──────────────────────

type assignmentKey struct {
	periodID int
	groupID  int
}

type mockAssignmentRepo struct {
	mu          sync.Mutex
	assignments map[assignmentKey]*model.TeacherAssignment
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[assignmentKey]*model.TeacherAssignment)}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.TeacherAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := assignmentKey{assignment.AcademicPeriodID, assignment.GroupID}
	if _, ok := m.assignments[key]; ok {
		return &uniqueViolationErr{constraint: "teacher_assignments_pkey"}
	}
	clone := *assignment
	m.assignments[key] = &clone
	return nil
}

func (m *mockAssignmentRepo) Get(_ context.Context, periodID, groupID int) (*model.TeacherAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	assignment, ok := m.assignments[assignmentKey{periodID, groupID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *assignment
	return &clone, nil
}

func (m *mockAssignmentRepo) Exists(_ context.Context, periodID, groupID int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.assignments[assignmentKey{periodID, groupID}]
	return ok, nil
}

func (m *mockAssignmentRepo) ListByPeriod(_ context.Context, periodID int) ([]model.TeacherAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.TeacherAssignment
	for key, assignment := range m.assignments {
		if key.periodID == periodID {
			result = append(result, *assignment)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].GroupID < result[j].GroupID })
	return result, nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, periodID, groupID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.assignments, assignmentKey{periodID, groupID})
	return nil
}

// ────────────────────── Weekly ──────────────────────

type mockWeeklyRepo struct {
	mu      sync.Mutex
	nextID  int
	headers map[int]*model.WeeklySchedule
	slots   map[int][]model.WeeklySlot
	groups  *mockGroupRepo // ListByPeriod 预加载 Slots.Group 用
}

func newMockWeeklyRepo(groups *mockGroupRepo) *mockWeeklyRepo {
	return &mockWeeklyRepo{
		nextID:  1,
		headers: make(map[int]*model.WeeklySchedule),
		slots:   make(map[int][]model.WeeklySlot),
		groups:  groups,
	}
}

func (m *mockWeeklyRepo) GetHeader(_ context.Context, periodID, ambientID int, dayOfWeek int16) (*model.WeeklySchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, header := range m.headers {
		if header.AcademicPeriodID == periodID && header.AmbientID == ambientID && header.DayOfWeek == dayOfWeek {
			clone := *header
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWeeklyRepo) CreateHeader(_ context.Context, header *model.WeeklySchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.headers {
		if existing.AcademicPeriodID == header.AcademicPeriodID &&
			existing.AmbientID == header.AmbientID && existing.DayOfWeek == header.DayOfWeek {
			return &uniqueViolationErr{constraint: "uq_weekly_schedule"}
		}
	}
	header.ID = m.nextID
	m.nextID++
	clone := *header
	m.headers[header.ID] = &clone
	return nil
}

func (m *mockWeeklyRepo) ListByPeriod(_ context.Context, periodID int) ([]model.WeeklySchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.WeeklySchedule
	for _, header := range m.headers {
		if header.AcademicPeriodID != periodID {
			continue
		}
		clone := *header
		clone.Slots = append([]model.WeeklySlot(nil), m.slots[header.ID]...)
		sort.Slice(clone.Slots, func(i, j int) bool {
			return clone.Slots[i].SlotOrdinal < clone.Slots[j].SlotOrdinal
		})
		m.groups.mu.Lock()
		for i := range clone.Slots {
			if group, ok := m.groups.groups[clone.Slots[i].GroupID]; ok {
				g := *group
				clone.Slots[i].Group = &g
			}
		}
		m.groups.mu.Unlock()
		result = append(result, clone)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].AmbientID != result[j].AmbientID {
			return result[i].AmbientID < result[j].AmbientID
		}
		return result[i].DayOfWeek < result[j].DayOfWeek
	})
	return result, nil
}

func (m *mockWeeklyRepo) GetSlot(_ context.Context, headerID int, slotOrdinal int16) (*model.WeeklySlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, slot := range m.slots[headerID] {
		if slot.SlotOrdinal == slotOrdinal {
			clone := slot
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWeeklyRepo) CreateSlot(_ context.Context, slot *model.WeeklySlot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.slots[slot.WeeklyScheduleID] {
		if existing.SlotOrdinal == slot.SlotOrdinal {
			return &uniqueViolationErr{constraint: "weekly_slots_pkey"}
		}
	}
	m.slots[slot.WeeklyScheduleID] = append(m.slots[slot.WeeklyScheduleID], *slot)
	return nil
}

func (m *mockWeeklyRepo) DeleteSlot(_ context.Context, headerID int, slotOrdinal int16) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	slots := m.slots[headerID]
	for i, slot := range slots {
		if slot.SlotOrdinal == slotOrdinal {
			m.slots[headerID] = append(slots[:i], slots[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockWeeklyRepo) CountByGroup(_ context.Context, periodID, groupID int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for headerID, slots := range m.slots {
		header, ok := m.headers[headerID]
		if !ok || header.AcademicPeriodID != periodID {
			continue
		}
		for _, slot := range slots {
			if slot.GroupID == groupID {
				count++
			}
		}
	}
	return count, nil
}

// ────────────────────── Reservation ──────────────────────

type slotKey struct {
	ambientID   int
	date        string
	timeModelID int
	slotOrdinal int16
}

func newSlotKey(slot *model.ReservationSlot) slotKey {
	return slotKey{
		ambientID:   slot.AmbientID,
		date:        slot.ReservedDate.Format("2006-01-02"),
		timeModelID: slot.TimeModelID,
		slotOrdinal: slot.SlotOrdinal,
	}
}

// mockReservationRepo 互斥锁守护的内存存储；
// uniqueIndex 只收录 CONFIRMED 占用单元，模拟部分唯一索引 uq_no_double_booking
type mockReservationRepo struct {
	mu           sync.Mutex
	nextID       int
	reservations map[int]*model.Reservation
	uniqueIndex  map[slotKey]int // 占用单元 → 预约 ID
}

func newMockReservationRepo() *mockReservationRepo {
	return &mockReservationRepo{
		nextID:       1,
		reservations: make(map[int]*model.Reservation),
		uniqueIndex:  make(map[slotKey]int),
	}
}

func (m *mockReservationRepo) Create(_ context.Context, reservation *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range reservation.Slots {
		if _, taken := m.uniqueIndex[newSlotKey(&reservation.Slots[i])]; taken {
			return &uniqueViolationErr{constraint: "uq_no_double_booking"}
		}
	}
	reservation.ID = m.nextID
	m.nextID++
	for i := range reservation.Slots {
		reservation.Slots[i].ReservationID = reservation.ID
		m.uniqueIndex[newSlotKey(&reservation.Slots[i])] = reservation.ID
	}
	reservation.CreatedAt = time.Now()
	clone := cloneReservation(reservation)
	m.reservations[reservation.ID] = clone
	return nil
}

func (m *mockReservationRepo) GetByID(_ context.Context, id int) (*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reservation, ok := m.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneReservation(reservation), nil
}

func (m *mockReservationRepo) List(_ context.Context, filter repository.ReservationFilter) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Reservation
	for _, reservation := range m.reservations {
		if filter.PeriodID > 0 && reservation.AcademicPeriodID != filter.PeriodID {
			continue
		}
		if filter.RequesterCI != "" && reservation.RequesterCI != filter.RequesterCI {
			continue
		}
		if filter.Status != "" && reservation.Status != filter.Status {
			continue
		}
		result = append(result, *cloneReservation(reservation))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockReservationRepo) Update(_ context.Context, reservation *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reservations[reservation.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.reservations[reservation.ID] = cloneReservation(reservation)
	return nil
}

// ReleaseSlots 模拟部分唯一索引的释放语义：
// 单元状态翻转为 CANCELLED 后即脱离索引覆盖
func (m *mockReservationRepo) ReleaseSlots(_ context.Context, reservationID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.reservations[reservationID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range stored.Slots {
		if stored.Slots[i].Status != model.ReservationStatusConfirmed {
			continue
		}
		stored.Slots[i].Status = model.ReservationStatusCancelled
		delete(m.uniqueIndex, newSlotKey(&stored.Slots[i]))
	}
	return nil
}

func (m *mockReservationRepo) CountByGroup(_ context.Context, periodID, groupID int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, reservation := range m.reservations {
		if reservation.AcademicPeriodID != periodID {
			continue
		}
		for _, g := range reservation.Groups {
			if g.GroupID == groupID {
				count++
			}
		}
	}
	return count, nil
}

func (m *mockReservationRepo) ListSlotsByDate(_ context.Context, ambientID int, date time.Time) ([]model.ReservationSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.ReservationSlot
	for _, reservation := range m.reservations {
		if reservation.Status != model.ReservationStatusConfirmed {
			continue
		}
		for _, slot := range reservation.Slots {
			if slot.AmbientID == ambientID && slot.ReservedDate.Equal(date) {
				result = append(result, slot)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SlotOrdinal < result[j].SlotOrdinal })
	return result, nil
}

func cloneReservation(r *model.Reservation) *model.Reservation {
	clone := *r
	clone.Groups = append([]model.ReservationGroup(nil), r.Groups...)
	clone.Dates = append([]model.ReservedDate(nil), r.Dates...)
	clone.Ambients = append([]model.ReservationAmbient(nil), r.Ambients...)
	clone.Slots = append([]model.ReservationSlot(nil), r.Slots...)
	return &clone
}

// ────────────────────── ConflictIndex ──────────────────────

// mockConflictIndex 扫描预约与周课表 mock 的数据做占用判定，
// 语义与 SQL 实现一致：CONFIRMED 预约节次 ∪ 按星期几展开的周课表模式
type mockConflictIndex struct {
	reservations *mockReservationRepo
	weekly       *mockWeeklyRepo
}

func (c *mockConflictIndex) IsOccupied(_ context.Context, periodID, ambientID int, date time.Time, timeModelID int, slotOrdinal int16) (bool, error) {
	c.reservations.mu.Lock()
	key := slotKey{
		ambientID:   ambientID,
		date:        date.Format("2006-01-02"),
		timeModelID: timeModelID,
		slotOrdinal: slotOrdinal,
	}
	_, taken := c.reservations.uniqueIndex[key]
	c.reservations.mu.Unlock()
	if taken {
		return true, nil
	}

	dow := repository.DayOfWeek(date)
	if dow == 0 {
		return false, nil
	}

	c.weekly.mu.Lock()
	defer c.weekly.mu.Unlock()
	for headerID, slots := range c.weekly.slots {
		header, ok := c.weekly.headers[headerID]
		if !ok || header.AcademicPeriodID != periodID ||
			header.AmbientID != ambientID || header.DayOfWeek != dow {
			continue
		}
		for _, slot := range slots {
			if slot.SlotOrdinal == slotOrdinal {
				return true, nil
			}
		}
	}
	return false, nil
}

// HasConfirmedSlotOnWeekday 扫描唯一索引（只含 CONFIRMED 单元），
// 按窗口与星期几过滤，与 SQL 实现的 ISODOW 判定一致
func (c *mockConflictIndex) HasConfirmedSlotOnWeekday(_ context.Context, ambientID int, startDate, endDate time.Time, dayOfWeek int16, timeModelID int, slotOrdinal int16) (bool, error) {
	c.reservations.mu.Lock()
	defer c.reservations.mu.Unlock()
	for key := range c.reservations.uniqueIndex {
		if key.ambientID != ambientID || key.timeModelID != timeModelID || key.slotOrdinal != slotOrdinal {
			continue
		}
		date, err := time.Parse("2006-01-02", key.date)
		if err != nil {
			return false, err
		}
		if date.Before(startDate) || date.After(endDate) {
			continue
		}
		if repository.DayOfWeek(date) == dayOfWeek {
			return true, nil
		}
	}
	return false, nil
}

// ────────────────────── 测试装配 ──────────────────────

type testRepos struct {
	faculty     *mockFacultyRepo
	ambient     *mockAmbientRepo
	group       *mockGroupRepo
	person      *mockPersonRepo
	timeModel   *mockTimeModelRepo
	period      *mockPeriodRepo
	assignment  *mockAssignmentRepo
	weekly      *mockWeeklyRepo
	reservation *mockReservationRepo
}

// newTestRepo 构造全 mock 的 Repository 聚合（db 为 nil，Transaction 直接执行）
func newTestRepo() (*repository.Repository, *testRepos) {
	groups := newMockGroupRepo()
	mocks := &testRepos{
		faculty:     newMockFacultyRepo(),
		ambient:     newMockAmbientRepo(),
		group:       groups,
		person:      newMockPersonRepo(),
		timeModel:   newMockTimeModelRepo(),
		period:      newMockPeriodRepo(),
		assignment:  newMockAssignmentRepo(),
		weekly:      newMockWeeklyRepo(groups),
		reservation: newMockReservationRepo(),
	}
	repo := &repository.Repository{
		Faculty:     mocks.faculty,
		Ambient:     mocks.ambient,
		Group:       mocks.group,
		Person:      mocks.person,
		TimeModel:   mocks.timeModel,
		Period:      mocks.period,
		Assignment:  mocks.assignment,
		Weekly:      mocks.weekly,
		Reservation: mocks.reservation,
		Conflict:    &mockConflictIndex{reservations: mocks.reservation, weekly: mocks.weekly},
	}
	return repo, mocks
}

// seedPeriod 预置学期及其时间模型
func seedPeriod(mocks *testRepos, facultyID int, status string, slotsPerDay int) *model.AcademicPeriod {
	ctx := context.Background()

	timeModel := &model.TimeModel{
		ModelName:   fmt.Sprintf("模型-%d-%s", facultyID, status),
		SlotMinutes: 45,
		DayStart:    "06:45:00",
		SlotsPerDay: slotsPerDay,
	}
	slots := make([]model.TimeSlot, 0, slotsPerDay)
	start, _ := time.Parse("15:04:05", timeModel.DayStart)
	for ordinal := 1; ordinal <= slotsPerDay; ordinal++ {
		slotStart := start.Add(time.Duration(ordinal-1) * 45 * time.Minute)
		slots = append(slots, model.TimeSlot{
			SlotOrdinal: int16(ordinal),
			StartTime:   slotStart.Format("15:04:05"),
			EndTime:     slotStart.Add(45 * time.Minute).Format("15:04:05"),
		})
	}
	if err := mocks.timeModel.Create(ctx, timeModel, slots); err != nil {
		panic(err)
	}

	period := &model.AcademicPeriod{
		FacultyID:   facultyID,
		TimeModelID: timeModel.ID,
		Season:      1,
		Year:        2025,
		StartDate:   time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 28, 0, 0, 0, 0, time.UTC),
		Status:      status,
	}
	if err := mocks.period.Create(ctx, period); err != nil {
		panic(err)
	}
	return period
}

// seedAmbient 预置楼栋与场地
func seedAmbient(mocks *testRepos, facultyID int, name string, active bool) *model.Ambient {
	ctx := context.Background()
	block := &model.Block{FacultyID: facultyID, BlockName: "主楼"}
	if err := mocks.ambient.CreateBlock(ctx, block); err != nil {
		panic(err)
	}
	ambient := &model.Ambient{
		BlockID:       block.ID,
		AmbientTypeID: 1,
		AmbientName:   name,
		Capacity:      40,
		IsActive:      active,
	}
	if err := mocks.ambient.Create(ctx, ambient); err != nil {
		panic(err)
	}
	return ambient
}

// seedAssignedGroup 预置班组并为其建立任课分配
func seedAssignedGroup(mocks *testRepos, periodID int, name, teacherCI string) *model.Group {
	ctx := context.Background()
	group := &model.Group{GroupName: name, Subject: "算法设计"}
	if err := mocks.group.Create(ctx, group); err != nil {
		panic(err)
	}
	assignment := &model.TeacherAssignment{
		AcademicPeriodID: periodID,
		GroupID:          group.ID,
		CI:               teacherCI,
	}
	if err := mocks.assignment.Create(ctx, assignment); err != nil {
		panic(err)
	}
	return group
}
