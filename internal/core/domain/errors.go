package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrTransformation   = errors.New("transformation invariant violated")
	ErrUpstream         = errors.New("upstream request failed")
	ErrSessionNotFound  = errors.New("edit session not found")
	ErrSessionNotLoaded = errors.New("edit session is not loaded yet")
	ErrStaleResponse    = errors.New("stale response discarded")
	ErrNoChanges        = errors.New("no changes to save")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrBlobNotFound     = errors.New("blob not found")
	ErrUploadTooLarge   = errors.New("upload exceeds size limit")
)

// ValidationSource - откуда пришли невалидные данные.
type ValidationSource string

const (
	SourcePayload ValidationSource = "payload" // ответ апстрима
	SourceForm    ValidationSource = "form"    // данные формы от пользователя
)

// ValidationIssue - одна проблема, найденная при проверке.
type ValidationIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError - несоответствие данных схеме.
// Path указывает на первое проблемное поле (JSON pointer), Index - на первый
// проблемный элемент списка, если проверялся список.
type ValidationError struct {
	Source  ValidationSource
	Path    string
	Message string
	Index   *int
	Issues  []ValidationIssue
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation failed")
	if e.Index != nil {
		fmt.Fprintf(&b, " at item %d", *e.Index)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError собирает ошибку из списка проблем, первая проблема становится основной.
func NewValidationError(source ValidationSource, issues []ValidationIssue) *ValidationError {
	err := &ValidationError{Source: source, Issues: issues}
	if len(issues) > 0 {
		err.Path = issues[0].Path
		err.Message = issues[0].Message
	}
	return err
}

// TransformationError - нарушение инварианта внутри маппера или диффера.
// Для провалидированных данных не должна возникать, поэтому считается дефектом.
type TransformationError struct {
	Op     string
	Path   string
	Reason string
}

func (e *TransformationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Path, e.Reason)
}

func (e *TransformationError) Unwrap() error { return ErrTransformation }

// UpstreamError - ответ апстрима с кодом не 2xx. Body - декодированный JSON или строка.
type UpstreamError struct {
	Status int
	Body   any
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Status)
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }
