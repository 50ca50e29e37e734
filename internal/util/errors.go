package util

import (
	"errors"
	"fmt"

	"talentbridge_backend/pkg/logger"

	"go.uber.org/zap"
)

var (
	ErrLearnerNotFound    = errors.New("learner not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrQuizNotStarted     = errors.New("quiz not started")
	ErrInvalidUserType    = errors.New("user type must be student or company")
)

// ConfigurationError reports a static catalog that cannot serve the core.
// It is fatal for the operation that hit it and never retried.
type ConfigurationError struct {
	Component string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Reason)
}

func NewConfigurationError(component, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Component: component, Reason: fmt.Sprintf(format, args...)}
}

// DataIntegrityWarning describes stored data that disagrees with the catalog or
// with the learner's own state. It is logged and the operation continues.
type DataIntegrityWarning struct {
	Subject string
	Detail  string
}

func (w *DataIntegrityWarning) Error() string {
	return fmt.Sprintf("data integrity warning (%s): %s", w.Subject, w.Detail)
}

func NewDataIntegrityWarning(subject, format string, args ...interface{}) *DataIntegrityWarning {
	return &DataIntegrityWarning{Subject: subject, Detail: fmt.Sprintf(format, args...)}
}

// WarnDataIntegrity logs the warning and returns it.
func WarnDataIntegrity(subject, format string, args ...interface{}) *DataIntegrityWarning {
	w := NewDataIntegrityWarning(subject, format, args...)
	logger.Log.Warn("Data integrity warning", zap.String("subject", w.Subject), zap.String("detail", w.Detail))
	return w
}

// StorageError wraps a failed read or write on the key/value adapter.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
