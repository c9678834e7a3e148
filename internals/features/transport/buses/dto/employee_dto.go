// file: internals/features/transport/buses/dto/employee_dto.go
package dto

import "schoolbus_backend/internals/features/transport/buses/model"

type EmployeeResponse struct {
	ID       uint    `json:"id"`
	FullName string  `json:"fullName"`
	JobTitle string  `json:"jobTitle"`
	Salary   float64 `json:"salary"`
}

func ToEmployeeResponses(list []model.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, EmployeeResponse{
			ID:       e.EmployeeID,
			FullName: e.EmployeeFullName,
			JobTitle: e.EmployeeJobTitle,
			Salary:   e.EmployeeSalary,
		})
	}
	return out
}
