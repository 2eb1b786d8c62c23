package studio

import (
	"errors"

	"github.com/prasetyowira/qrstudio/constant"
	"github.com/prasetyowira/qrstudio/infrastructure/qrcode"
)

var (
	ErrEmptyText         = errors.New(constant.ErrEmptyText)
	ErrInvalidBoxSize    = errors.New(constant.ErrInvalidBoxSize)
	ErrInvalidBorder     = errors.New(constant.ErrInvalidBorder)
	ErrInvalidColor      = qrcode.ErrInvalidColor
	ErrUnknownBackground = errors.New(constant.ErrUnknownBackground)
	ErrUnknownErrorLevel = errors.New(constant.ErrUnknownErrorLevel)
	ErrNothingToSave     = errors.New(constant.ErrNothingToSave)
)

// IsValidation reports whether err was caused by bad user input rather
// than by the encoder or the filesystem.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyText) ||
		errors.Is(err, ErrInvalidBoxSize) ||
		errors.Is(err, ErrInvalidBorder) ||
		errors.Is(err, ErrInvalidColor) ||
		errors.Is(err, ErrUnknownBackground) ||
		errors.Is(err, ErrUnknownErrorLevel)
}

// ValidationCode maps a validation error onto its log code.
func ValidationCode(err error) string {
	switch {
	case errors.Is(err, ErrEmptyText):
		return constant.ErrCodeEmptyText
	case errors.Is(err, ErrInvalidBoxSize):
		return constant.ErrCodeInvalidBoxSize
	case errors.Is(err, ErrInvalidBorder):
		return constant.ErrCodeInvalidBorder
	case errors.Is(err, ErrInvalidColor):
		return constant.ErrCodeInvalidColor
	case errors.Is(err, ErrUnknownBackground):
		return constant.ErrCodeUnknownBackground
	case errors.Is(err, ErrUnknownErrorLevel):
		return constant.ErrCodeUnknownErrorLevel
	}
	return constant.ErrCodeEncode
}
