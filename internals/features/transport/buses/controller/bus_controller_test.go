package controller_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	busapi "schoolbus_backend/internals/features/transport/buses/controller"
	"schoolbus_backend/internals/features/transport/buses/model"
	"schoolbus_backend/internals/features/transport/buses/repository"
	"schoolbus_backend/internals/features/transport/buses/route"
	"schoolbus_backend/internals/features/transport/buses/service"
)

func uptr(v uint) *uint        { return &v }
func fptr(v float64) *float64 { return &v }

func newTestApp(t *testing.T, store repository.Store) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})
	h := busapi.NewBusHandler(store, service.DefaultSchoolFirstPolicy(), zap.NewNop())
	route.MountBusRoutes(app.Group("/api"), h)
	return app
}

func seedStore() *repository.MemoryStore {
	store := repository.NewMemoryStore()
	store.PutEmployee(model.Employee{EmployeeID: 1, EmployeeFullName: "Ali", EmployeeJobTitle: model.EmployeeJobTitleBus, EmployeeSalary: 50})
	store.PutEmployee(model.Employee{EmployeeID: 2, EmployeeFullName: "Zahra", EmployeeJobTitle: model.EmployeeJobTitleBus})
	store.PutEmployee(model.Employee{EmployeeID: 3, EmployeeFullName: "Bashir", EmployeeJobTitle: model.EmployeeJobTitleBus})
	store.PutEmployee(model.Employee{EmployeeID: 4, EmployeeFullName: "Cadar", EmployeeJobTitle: "Teacher"})
	store.PutBus(model.Bus{BusID: 5, BusName: "Bus Lima", BusRoute: "Hodan", BusPlate: "SL-5", BusDriverID: uptr(1)})
	store.PutStudent(model.Student{StudentID: 12, StudentFullName: "Amina", StudentClassID: uptr(3)})
	store.PutStudent(model.Student{StudentID: 13, StudentFullName: "Omar", StudentBusID: uptr(5), StudentFee: fptr(27)})
	return store
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any, http.Header) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, sonic.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out, resp.Header
}

/* =========================
   Assign
========================= */

func TestAssignStudentToBus(t *testing.T) {
	store := seedStore()
	app := newTestApp(t, store)

	code, body, _ := do(t, app, http.MethodPost, "/api/buses/assign", `{"studentId":12,"busId":5}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Bus assigned successfully.", body["message"])
	assert.Nil(t, body["previousBusId"])
	assert.EqualValues(t, 5, body["assignedBusId"])

	student := body["student"].(map[string]any)
	assert.EqualValues(t, 12, student["id"])
	bus := student["bus"].(map[string]any)
	assert.Equal(t, "Ali", bus["driver"])
	assert.Equal(t, "SL-5", bus["plate"])
}

func TestAssignStudentToBus_NumericStrings(t *testing.T) {
	app := newTestApp(t, seedStore())
	code, body, _ := do(t, app, http.MethodPost, "/api/buses/assign", `{"studentId":"12","busId":"5"}`)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 5, body["assignedBusId"])
}

func TestAssignStudentToBus_AlreadyAssigned(t *testing.T) {
	store := seedStore()
	app := newTestApp(t, store)

	code, body, _ := do(t, app, http.MethodPost, "/api/buses/assign", `{"studentId":13,"busId":5}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Student is already assigned to this bus.", body["message"])
	assert.EqualValues(t, 5, body["previousBusId"])
	assert.EqualValues(t, 5, body["assignedBusId"])
	_, hasStudent := body["student"]
	assert.False(t, hasStudent)
	assert.Zero(t, store.Writes)
}

func TestAssignStudentToBus_BadInput(t *testing.T) {
	app := newTestApp(t, seedStore())

	for _, in := range []string{
		`{"studentId":12}`,
		`{"busId":5}`,
		`{"studentId":"abc","busId":5}`,
		`{"studentId":1.5,"busId":5}`,
		`{"studentId":-1,"busId":5}`,
		`not json`,
	} {
		code, body, _ := do(t, app, http.MethodPost, "/api/buses/assign", in)
		assert.Equal(t, http.StatusBadRequest, code, in)
		assert.Equal(t, "studentId and busId are required (numbers).", body["message"], in)
	}
}

func TestAssignStudentToBus_NotFound(t *testing.T) {
	app := newTestApp(t, seedStore())

	code, body, _ := do(t, app, http.MethodPost, "/api/buses/assign", `{"studentId":999,"busId":5}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Student not found.", body["message"])

	code, body, _ = do(t, app, http.MethodPost, "/api/buses/assign", `{"studentId":12,"busId":999}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Bus not found.", body["message"])
}

func TestAssignStudentToBus_StoreFailure(t *testing.T) {
	store := seedStore()
	store.Err = errors.New("db down")
	app := newTestApp(t, store)

	code, body, _ := do(t, app, http.MethodPost, "/api/buses/assign", `{"studentId":12,"busId":5}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", body["message"])
}

/* =========================
   CRUD
========================= */

func TestBusCRUD(t *testing.T) {
	store := seedStore()
	app := newTestApp(t, store)

	code, body, _ := do(t, app, http.MethodPost, "/api/buses",
		`{"name":"Bus Enam","route":"Wadajir","plate":"SL-6","type":"Mini","seats":14,"driverId":2}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, true, body["success"])
	created := body["bus"].(map[string]any)
	assert.EqualValues(t, 6, created["id"])
	assert.Equal(t, "Mini", created["type"])
	assert.Nil(t, created["color"])
	assert.EqualValues(t, 2, created["driverId"])

	code, body, _ = do(t, app, http.MethodGet, "/api/buses/6", "")
	require.Equal(t, http.StatusOK, code)
	detail := body["bus"].(map[string]any)
	assert.Equal(t, "Zahra", detail["driver"].(map[string]any)["fullName"])
	assert.Empty(t, detail["students"])

	// replace penuh: field yang tidak dikirim jadi null
	code, body, _ = do(t, app, http.MethodPut, "/api/buses/6", `{"name":"Bus 6","route":"Wadajir","plate":"SL-6"}`)
	require.Equal(t, http.StatusOK, code)
	updated := body["bus"].(map[string]any)
	assert.Equal(t, "Bus 6", updated["name"])
	assert.Nil(t, updated["type"])
	assert.Nil(t, updated["seats"])
	assert.Nil(t, updated["driverId"])

	code, body, _ = do(t, app, http.MethodDelete, "/api/buses/6", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Bus deleted successfully", body["message"])

	code, body, _ = do(t, app, http.MethodGet, "/api/buses/6", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Bus not found", body["message"])
}

func TestListBuses(t *testing.T) {
	store := seedStore()
	store.PutStudent(model.Student{StudentID: 14, StudentFullName: "Deleted", StudentBusID: uptr(5), StudentIsDeleted: true})
	app := newTestApp(t, store)

	code, body, _ := do(t, app, http.MethodGet, "/api/buses", "")
	require.Equal(t, http.StatusOK, code)
	buses := body["buses"].([]any)
	require.Len(t, buses, 1)

	bus := buses[0].(map[string]any)
	assert.Equal(t, "Ali", bus["driver"].(map[string]any)["fullName"])
	students := bus["students"].([]any)
	assert.Len(t, students, 2)
}

func TestGetBus_DetailHasNoClass(t *testing.T) {
	store := seedStore()
	store.PutStudent(model.Student{StudentID: 12, StudentFullName: "Amina", StudentClassID: uptr(3), StudentBusID: uptr(5)})
	app := newTestApp(t, store)

	code, body, _ := do(t, app, http.MethodGet, "/api/buses/5", "")
	require.Equal(t, http.StatusOK, code)
	for _, s := range body["bus"].(map[string]any)["students"].([]any) {
		_, hasClass := s.(map[string]any)["classId"]
		assert.False(t, hasClass)
	}
}

func TestBusCRUD_Errors(t *testing.T) {
	store := seedStore()
	app := newTestApp(t, store)

	code, body, _ := do(t, app, http.MethodGet, "/api/buses/abc", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid bus id", body["message"])

	code, _, _ = do(t, app, http.MethodPost, "/api/buses", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, code)

	// id yang tidak ada: replace/delete gagal sebagai 500
	code, body, _ = do(t, app, http.MethodPut, "/api/buses/404", `{"name":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to update bus", body["message"])

	code, body, _ = do(t, app, http.MethodDelete, "/api/buses/404", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to delete bus", body["message"])

	store.Err = errors.New("db down")
	code, body, _ = do(t, app, http.MethodGet, "/api/buses", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to fetch buses", body["message"])

	code, body, _ = do(t, app, http.MethodPost, "/api/buses", `{"name":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to create bus", body["message"])
}

/* =========================
   Employees
========================= */

func TestListUnassignedBusEmployees(t *testing.T) {
	app := newTestApp(t, seedStore())

	code, body, _ := do(t, app, http.MethodGet, "/api/buses/employees/unassigned", "")
	require.Equal(t, http.StatusOK, code)

	employees := body["employees"].([]any)
	require.Len(t, employees, 2)
	assert.Equal(t, "Bashir", employees[0].(map[string]any)["fullName"])
	assert.Equal(t, "Zahra", employees[1].(map[string]any)["fullName"])
}

/* =========================
   Finance summary
========================= */

func TestBusFeeSummaryV2(t *testing.T) {
	store := seedStore()
	store.PutStudentFee(model.StudentFee{StudentFeeID: 1, StudentFeeStudentID: 13, StudentFeeMonth: 9, StudentFeeYear: 2025,
		StudentFeeAmount: fptr(30),
		Allocations:      []model.PaymentAllocation{{PaymentAllocationID: 1, PaymentAllocationAmount: 25}}})
	app := newTestApp(t, store)

	code, body, hdr := do(t, app, http.MethodGet, "/api/buses/finance/detailed-v2?month=9&year=2025", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "schoolFirst_v2", hdr.Get("x-calc-version"))

	assert.Equal(t, true, body["success"])
	assert.Equal(t, "schoolFirst_v2", body["policy"].(map[string]any)["calcVersion"])
	assert.EqualValues(t, 1, body["totalBuses"])
	assert.EqualValues(t, 8, body["totalBusFeeCollected"])
	assert.EqualValues(t, -42, body["profitOrLoss"])

	bus := body["busSummaries"].([]any)[0].(map[string]any)
	assert.Equal(t, "Shortage", bus["status"])
	student := bus["students"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 2, student["unpaidBusFee"])
	_, hasDebug := student["__debug"]
	assert.False(t, hasDebug)

	code, body, _ = do(t, app, http.MethodGet, "/api/buses/finance/detailed-v2?month=9&year=2025&debug=1", "")
	require.Equal(t, http.StatusOK, code)
	student = body["busSummaries"].([]any)[0].(map[string]any)["students"].([]any)[0].(map[string]any)
	dbg := student["__debug"].(map[string]any)
	assert.EqualValues(t, 25, dbg["actualCollected"])
	assert.EqualValues(t, 17, dbg["SCHOOL_FIRST"])
	assert.EqualValues(t, 10, dbg["BUS_CAP"])
}

func TestBusFeeSummaryV2_BadQuery(t *testing.T) {
	app := newTestApp(t, seedStore())

	for _, q := range []string{"", "?month=9", "?year=2025", "?month=13&year=2025", "?month=abc&year=2025"} {
		code, body, _ := do(t, app, http.MethodGet, "/api/buses/finance/detailed-v2"+q, "")
		assert.Equal(t, http.StatusBadRequest, code, q)
		assert.Equal(t, false, body["success"], q)
		assert.Equal(t, "Month and year must be provided as query parameters.", body["message"], q)
	}
}

func TestBusFeeSummaryV2_StoreFailure(t *testing.T) {
	store := seedStore()
	store.Err = errors.New("db down")
	app := newTestApp(t, store)

	code, body, hdr := do(t, app, http.MethodGet, "/api/buses/finance/detailed-v2?month=9&year=2025", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to load bus fee and salary summary.", body["message"])
	assert.Equal(t, "schoolFirst_v2", hdr.Get("x-calc-version"))
}
