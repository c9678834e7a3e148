// file: internals/features/transport/buses/repository/memory_store.go
package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"schoolbus_backend/internals/features/transport/buses/model"
)

// MemoryStore: implementasi Store di memori, untuk test dan dev lokal tanpa DB.
// Writes menghitung setiap operasi tulis yang benar-benar dijalankan.
type MemoryStore struct {
	mu sync.Mutex

	employees map[uint]model.Employee
	buses     map[uint]model.Bus
	students  map[uint]model.Student
	fees      map[uint]model.StudentFee

	nextBusID uint

	Writes int
	// Err, kalau di-set, dikembalikan oleh semua method.
	Err error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		employees: map[uint]model.Employee{},
		buses:     map[uint]model.Bus{},
		students:  map[uint]model.Student{},
		fees:      map[uint]model.StudentFee{},
	}
}

var _ Store = (*MemoryStore)(nil)

/* =========================
   Seeding
========================= */

func (s *MemoryStore) PutEmployee(e model.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.EmployeeID] = e
}

func (s *MemoryStore) PutBus(b model.Bus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.Driver, b.Students = nil, nil
	s.buses[b.BusID] = b
	if b.BusID >= s.nextBusID {
		s.nextBusID = b.BusID
	}
}

func (s *MemoryStore) PutStudent(st model.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st.Bus, st.MonthlyFees = nil, nil
	s.students[st.StudentID] = st
}

func (s *MemoryStore) PutStudentFee(f model.StudentFee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fees[f.StudentFeeID] = f
}

/* =========================
   internal joins (caller holds mu)
========================= */

func (s *MemoryStore) driverOf(b model.Bus) *model.Employee {
	if b.BusDriverID == nil {
		return nil
	}
	e, ok := s.employees[*b.BusDriverID]
	if !ok {
		return nil
	}
	return &e
}

func (s *MemoryStore) studentsOf(busID uint, includeDeleted bool) []model.Student {
	out := []model.Student{}
	for _, st := range s.students {
		if st.StudentBusID == nil || *st.StudentBusID != busID {
			continue
		}
		if st.StudentIsDeleted && !includeDeleted {
			continue
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out
}

func (s *MemoryStore) feesOf(studentID uint, month, year int) []model.StudentFee {
	out := []model.StudentFee{}
	for _, f := range s.fees {
		if f.StudentFeeStudentID == studentID && f.StudentFeeMonth == month && f.StudentFeeYear == year {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentFeeID > out[j].StudentFeeID })
	return out
}

func (s *MemoryStore) sortedBuses() []model.Bus {
	out := make([]model.Bus, 0, len(s.buses))
	for _, b := range s.buses {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BusID < out[j].BusID })
	return out
}

/* =========================
   Store
========================= */

func (s *MemoryStore) FindStudent(ctx context.Context, id uint) (*model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	st, ok := s.students[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &st, nil
}

func (s *MemoryStore) FindBus(ctx context.Context, id uint) (*model.Bus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	b, ok := s.buses[id]
	if !ok {
		return nil, ErrNotFound
	}
	b.Driver = s.driverOf(b)
	return &b, nil
}

func (s *MemoryStore) AssignStudentToBus(ctx context.Context, studentID, busID uint) (*model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	st, ok := s.students[studentID]
	if !ok {
		return nil, ErrNotFound
	}
	b, ok := s.buses[busID]
	if !ok {
		return nil, ErrNotFound
	}
	s.Writes++

	id := busID
	st.StudentBusID = &id
	s.students[studentID] = st

	b.Driver = s.driverOf(b)
	st.Bus = &b
	return &st, nil
}

func (s *MemoryStore) CreateBus(ctx context.Context, f BusFields) (*model.Bus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.Writes++

	s.nextBusID++
	m := f.toModel()
	m.BusID = s.nextBusID
	now := time.Now()
	m.BusCreatedAt, m.BusUpdatedAt = now, now
	s.buses[m.BusID] = m
	return &m, nil
}

func (s *MemoryStore) ListBuses(ctx context.Context) ([]model.Bus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := s.sortedBuses()
	for i := range out {
		out[i].Driver = s.driverOf(out[i])
		out[i].Students = s.studentsOf(out[i].BusID, true)
	}
	return out, nil
}

func (s *MemoryStore) GetBus(ctx context.Context, id uint) (*model.Bus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	b, ok := s.buses[id]
	if !ok {
		return nil, ErrNotFound
	}
	b.Driver = s.driverOf(b)
	b.Students = s.studentsOf(id, true)
	return &b, nil
}

func (s *MemoryStore) UpdateBus(ctx context.Context, id uint, f BusFields) (*model.Bus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	old, ok := s.buses[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.Writes++

	m := f.toModel()
	m.BusID = id
	m.BusCreatedAt = old.BusCreatedAt
	m.BusUpdatedAt = time.Now()
	s.buses[id] = m
	return &m, nil
}

// DeleteBus melepas siswa yang masih menunjuk bus ini (ON DELETE SET NULL).
func (s *MemoryStore) DeleteBus(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.buses[id]; !ok {
		return ErrNotFound
	}
	s.Writes++

	delete(s.buses, id)
	for sid, st := range s.students {
		if st.StudentBusID != nil && *st.StudentBusID == id {
			st.StudentBusID = nil
			s.students[sid] = st
		}
	}
	return nil
}

func (s *MemoryStore) ListBusesForFeeReport(ctx context.Context, month, year int) ([]model.Bus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := s.sortedBuses()
	for i := range out {
		out[i].Driver = s.driverOf(out[i])
		students := s.studentsOf(out[i].BusID, false)
		for j := range students {
			students[j].MonthlyFees = s.feesOf(students[j].StudentID, month, year)
		}
		out[i].Students = students
	}
	return out, nil
}

func (s *MemoryStore) ListUnassignedBusEmployees(ctx context.Context) ([]model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	used := map[uint]bool{}
	for _, b := range s.buses {
		if b.BusDriverID != nil {
			used[*b.BusDriverID] = true
		}
	}
	out := []model.Employee{}
	for _, e := range s.employees {
		if e.EmployeeJobTitle == model.EmployeeJobTitleBus && !used[e.EmployeeID] {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].EmployeeFullName, out[j].EmployeeFullName) < 0
	})
	return out, nil
}
