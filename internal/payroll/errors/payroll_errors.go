package payrollerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeValidation,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidPayrollID = apperror.New(
		apperror.CodeValidation,
		"invalid payroll id",
		http.StatusBadRequest,
	)
	ErrInvalidMonthFormat = apperror.New(
		apperror.CodeValidation,
		"invalid month format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeValidation,
		"status must be Pending or Paid",
		http.StatusBadRequest,
	)
	ErrInvalidMoneyValue = apperror.New(
		apperror.CodeValidation,
		"salary component values cannot be negative",
		http.StatusBadRequest,
	)
	ErrDuplicateMonth = apperror.New(
		apperror.CodeDuplicateMonth,
		"payroll already generated for this month",
		http.StatusConflict,
	)
	ErrPayrollExists = apperror.New(
		apperror.CodeConflict,
		"payroll already exists for this employee and month",
		http.StatusConflict,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid payroll status transition",
		http.StatusBadRequest,
	)
	ErrPayslipUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"payslip rendering is not configured",
		http.StatusServiceUnavailable,
	)
)
