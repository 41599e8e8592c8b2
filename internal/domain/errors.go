package domain

import "errors"

// UpstreamDataError — ответ внешнего астро-API не прошёл валидацию
// даже после дефолтов; расчёт карты прерывается
type UpstreamDataError struct {
	Err error
}

func (e *UpstreamDataError) Error() string {
	return e.Err.Error()
}

func (e *UpstreamDataError) Unwrap() error {
	return e.Err
}

func WrapUpstreamDataError(err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamDataError{Err: err}
}

func IsUpstreamDataError(err error) bool {
	var upstreamErr *UpstreamDataError
	return errors.As(err, &upstreamErr)
}

// ConfigurationError — справочная строка системы домов не разрешилась
// даже после повторного чтения; фатально для нормализации
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func WrapConfigurationError(err error) error {
	if err == nil {
		return nil
	}
	return &ConfigurationError{Err: err}
}

func IsConfigurationError(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// PersistenceError — ошибка записи в хранилище
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func WrapPersistenceError(err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Err: err}
}

func IsPersistenceError(err error) bool {
	var persistErr *PersistenceError
	return errors.As(err, &persistErr)
}

// ValidationError — некорректный ввод (время, координаты и т.д.),
// обнаруженный до любых внешних вызовов
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Err: err}
}

func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
