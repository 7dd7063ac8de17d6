package database

import (
	"errors"

	"github.com/lib/pq"
)

// Códigos SQLSTATE usados aqui.
const (
	pgInvalidTextRepresentation = "22P02"
	pgUniqueViolation           = "23505"
)

// isInvalidText: id que nem é uuid/bigint válido. Tratamos como "não existe".
func isInvalidText(err error) bool {
	return pgCode(err) == pgInvalidTextRepresentation
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

func pgCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
