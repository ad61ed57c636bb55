package models

import (
	"errors"
	"fmt"
)

var ErrColumnNotFound = errors.New("column not found")

type ColumnNotFoundError struct {
	Name string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found in the dataset", e.Name)
}

func (e *ColumnNotFoundError) Is(target error) bool {
	return target == ErrColumnNotFound
}
