package payroll

import (
	"errors"

	payrollerrors "go-hrms/internal/payroll/errors"
	"go-hrms/internal/shared/connection"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}
	if connection.IsUniqueViolation(err) {
		return payrollerrors.ErrPayrollExists
	}
	return err
}
