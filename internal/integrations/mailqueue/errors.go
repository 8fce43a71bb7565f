package mailqueue

import "errors"

var (
	// ErrConnect возвращается, если не удалось подключиться к брокеру
	ErrConnect = errors.New("mailqueue: failed to connect")

	// ErrSetup возвращается при ошибке объявления очереди или exchange
	ErrSetup = errors.New("mailqueue: failed to declare topology")

	// ErrPublish возвращается при ошибке публикации письма
	ErrPublish = errors.New("mailqueue: failed to publish")

	// ErrEncode возвращается при ошибке сериализации письма
	ErrEncode = errors.New("mailqueue: failed to encode message")
)
