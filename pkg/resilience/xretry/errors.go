package xretry

import "errors"

// RetryableError 由错误自身声明是否可重试。
type RetryableError interface {
	error
	Retryable() bool
}

// PermanentError 永久性错误，不应重试。
type PermanentError struct {
	Err error
}

// NewPermanentError 将 err 标记为永久性错误。
func NewPermanentError(err error) *PermanentError {
	return &PermanentError{Err: err}
}

func (e *PermanentError) Error() string {
	if e.Err == nil {
		return "xretry: permanent error"
	}
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error   { return e.Err }
func (e *PermanentError) Retryable() bool { return false }

// TemporaryError 临时性错误，总是可以重试。
type TemporaryError struct {
	Err error
}

// NewTemporaryError 将 err 标记为临时性错误。
func NewTemporaryError(err error) *TemporaryError {
	return &TemporaryError{Err: err}
}

func (e *TemporaryError) Error() string {
	if e.Err == nil {
		return "xretry: temporary error"
	}
	return e.Err.Error()
}

func (e *TemporaryError) Unwrap() error   { return e.Err }
func (e *TemporaryError) Retryable() bool { return true }

// IsRetryable 报告 err 是否可重试：nil 不需要重试；
// 实现 [RetryableError] 的错误由其自身决定；其他错误默认可重试。
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var re RetryableError
	if errors.As(err, &re) {
		return re.Retryable()
	}
	return true
}

// IsPermanent 报告 err 是否为不可重试的非 nil 错误。
func IsPermanent(err error) bool {
	return err != nil && !IsRetryable(err)
}
