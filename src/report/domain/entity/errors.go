package entity

import "errors"

var (
	// ErrInvalidDate fecha fuera del formato YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrExport falla al generar el archivo de exportación
	ErrExport = errors.New("export failed")
)
