package txmanager

import "errors"

var (
	// ErrBeginTx возвращается, если не удалось начать транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается, если не удалось зафиксировать транзакцию
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrSerializationFailure возвращается, когда postgres откатил транзакцию из-за конкурентного изменения
	ErrSerializationFailure = errors.New("txmanager: serialization failure")
)
