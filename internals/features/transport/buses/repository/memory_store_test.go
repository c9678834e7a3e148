package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolbus_backend/internals/features/transport/buses/model"
)

func TestMemoryStore_FeeReportExcludesDeletedAndFiltersPeriod(t *testing.T) {
	bus := uint(1)
	amount := 27.0

	s := NewMemoryStore()
	s.PutBus(model.Bus{BusID: 1})
	s.PutStudent(model.Student{StudentID: 1, StudentBusID: &bus})
	s.PutStudent(model.Student{StudentID: 2, StudentBusID: &bus, StudentIsDeleted: true})
	s.PutStudentFee(model.StudentFee{StudentFeeID: 3, StudentFeeStudentID: 1, StudentFeeMonth: 9, StudentFeeYear: 2025, StudentFeeAmount: &amount})
	s.PutStudentFee(model.StudentFee{StudentFeeID: 8, StudentFeeStudentID: 1, StudentFeeMonth: 9, StudentFeeYear: 2025})
	s.PutStudentFee(model.StudentFee{StudentFeeID: 9, StudentFeeStudentID: 1, StudentFeeMonth: 10, StudentFeeYear: 2025})

	list, err := s.ListBusesForFeeReport(context.Background(), 9, 2025)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Students, 1)

	fees := list[0].Students[0].MonthlyFees
	require.Len(t, fees, 2)
	assert.Equal(t, uint(8), fees[0].StudentFeeID)
	assert.Equal(t, uint(3), fees[1].StudentFeeID)

	all, err := s.ListBuses(context.Background())
	require.NoError(t, err)
	assert.Len(t, all[0].Students, 2)
}

func TestMemoryStore_DeleteBusReleasesStudents(t *testing.T) {
	bus := uint(4)
	s := NewMemoryStore()
	s.PutBus(model.Bus{BusID: 4})
	s.PutStudent(model.Student{StudentID: 1, StudentBusID: &bus})

	require.NoError(t, s.DeleteBus(context.Background(), 4))
	st, err := s.FindStudent(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, st.StudentBusID)

	assert.ErrorIs(t, s.DeleteBus(context.Background(), 4), ErrNotFound)
	assert.Equal(t, 1, s.Writes)
}

func TestMemoryStore_CreateAfterSeedUsesNextID(t *testing.T) {
	s := NewMemoryStore()
	s.PutBus(model.Bus{BusID: 7})

	m, err := s.CreateBus(context.Background(), BusFields{Name: "Baru"})
	require.NoError(t, err)
	assert.Equal(t, uint(8), m.BusID)
	assert.False(t, m.BusCreatedAt.IsZero())

	_, err = s.UpdateBus(context.Background(), 99, BusFields{})
	assert.ErrorIs(t, err, ErrNotFound)
}
