package eventbus

import "errors"

var (
	// ErrEncode возвращается, если событие не удалось сериализовать
	ErrEncode = errors.New("eventbus: failed to encode event")

	// ErrBufferFull возвращается, когда буфер публикации переполнен и событие отброшено
	ErrBufferFull = errors.New("eventbus: publish buffer is full")

	// ErrClosed возвращается при публикации после закрытия
	ErrClosed = errors.New("eventbus: publisher is closed")
)
