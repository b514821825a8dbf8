package dbmetrics

import (
	"errors"

	"github.com/lib/pq"
)

// Коды PostgreSQL, после которых транзакцию можно повторить
const (
	codeSerializationFailure pq.ErrorCode = "40001"
	codeDeadlockDetected     pq.ErrorCode = "40P01"
)

// IsSerializationFailure сообщает, что транзакция прервана конфликтом сериализации
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected
}
