// file: internals/features/transport/buses/service/assignment_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"schoolbus_backend/internals/features/transport/buses/dto"
	"schoolbus_backend/internals/features/transport/buses/model"
	"schoolbus_backend/internals/features/transport/buses/repository"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrBusNotFound     = errors.New("bus not found")
)

const (
	MsgBusAssigned     = "Bus assigned successfully."
	MsgStudentMoved    = "Student moved to a new bus successfully."
	MsgAlreadyAssigned = "Student is already assigned to this bus."
)

type AssignmentService struct {
	Store repository.Store
}

func NewAssignmentService(store repository.Store) *AssignmentService {
	return &AssignmentService{Store: store}
}

// Assign memasang siswa ke bus. Dua lookup jalan paralel, lalu satu UPDATE.
// Kalau siswa sudah di bus itu, tidak ada write sama sekali.
func (s *AssignmentService) Assign(ctx context.Context, studentID, busID uint) (dto.AssignStudentResponse, error) {
	var (
		student *model.Student
		bus     *model.Bus
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.Store.FindStudent(gctx, studentID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		student = m
		return err
	})
	g.Go(func() error {
		m, err := s.Store.FindBus(gctx, busID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		bus = m
		return err
	})
	if err := g.Wait(); err != nil {
		return dto.AssignStudentResponse{}, fmt.Errorf("lookup student/bus: %w", err)
	}

	if student == nil {
		return dto.AssignStudentResponse{}, ErrStudentNotFound
	}
	if bus == nil {
		return dto.AssignStudentResponse{}, ErrBusNotFound
	}

	if student.StudentBusID != nil && *student.StudentBusID == bus.BusID {
		prev := *student.StudentBusID
		return dto.AssignStudentResponse{
			Message:       MsgAlreadyAssigned,
			PreviousBusID: &prev,
			AssignedBusID: bus.BusID,
		}, nil
	}

	previousBusID := student.StudentBusID

	updated, err := s.Store.AssignStudentToBus(ctx, student.StudentID, bus.BusID)
	if err != nil {
		return dto.AssignStudentResponse{}, fmt.Errorf("assign student %d to bus %d: %w", student.StudentID, bus.BusID, err)
	}

	msg := MsgBusAssigned
	if previousBusID != nil {
		msg = MsgStudentMoved
	}
	return dto.AssignStudentResponse{
		Message:       msg,
		PreviousBusID: previousBusID,
		AssignedBusID: bus.BusID,
		Student:       dto.ToAssignedStudent(*updated),
	}, nil
}
