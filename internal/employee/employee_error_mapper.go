package employee

import (
	"errors"
	"strings"

	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/shared/connection"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	if connection.IsUniqueViolation(err) {
		// sqlite has no constraint name, only "UNIQUE constraint failed: employees.email".
		target := connection.ConstraintName(err)
		if target == "" {
			target = strings.ToLower(err.Error())
		}
		switch {
		case strings.Contains(target, "employee_code"):
			return employeeerrors.ErrEmployeeCodeAlreadyExists
		case strings.Contains(target, "email"):
			return employeeerrors.ErrEmployeeAlreadyExists
		}
	}

	return err
}
