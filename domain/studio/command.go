package studio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prasetyowira/qrstudio/constant"
	"github.com/prasetyowira/qrstudio/infrastructure/logger"
	"github.com/prasetyowira/qrstudio/infrastructure/qrcode"
)

// Command is one user action.
type Command interface {
	Execute(ctx context.Context) error
}

// GenerateCommand encodes a spec and installs the result as the studio preview.
type GenerateCommand struct {
	studio *Studio
	spec   QRSpec
	bus    *EventBus
}

// NewGenerateCommand creates a generate command for spec
func NewGenerateCommand(studio *Studio, spec QRSpec, bus *EventBus) *GenerateCommand {
	return &GenerateCommand{studio: studio, spec: spec, bus: bus}
}

// Execute warns and returns ErrEmptyText when there is nothing to encode.
func (c *GenerateCommand) Execute(ctx context.Context) error {
	logger.CtxDebug(ctx, "Generating QR code", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerate,
		Data: map[string]interface{}{
			constant.DataTextLength: len(c.spec.Data),
			constant.DataErrorLevel: string(c.spec.ErrorLevel),
			constant.DataBoxSize:    c.spec.BoxSize,
			constant.DataBorder:     c.spec.Border,
		},
	})

	if strings.TrimSpace(c.spec.Data) == "" {
		c.studio.ui.Warn(constant.TitleNoInput, constant.NoticeNoInput)
		return ErrEmptyText
	}

	if err := c.spec.Validate(); err != nil {
		logger.CtxWarn(ctx, "Invalid QR options", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    ValidationCode(err),
				Message: err.Error(),
				Type:    constant.ErrTypeValidation,
			},
		})
		c.studio.ui.Warn(constant.TitleInvalidOptions, err.Error())
		return err
	}

	sym, err := c.spec.Encode()
	if err != nil {
		logger.CtxError(ctx, "Failed to encode QR code", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeEncode,
				Message: err.Error(),
				Type:    constant.ErrTypeEncoding,
			},
		})
		c.studio.ui.Error(constant.TitleGenerateFailed, err.Error())
		return err
	}

	opts, err := c.spec.RenderOptions()
	if err != nil {
		return err
	}

	spec := c.spec
	c.studio.SetPreview(ctx, qrcode.Rasterize(sym.Modules(), opts), sym, &spec)
	c.bus.Publish(fmt.Sprintf(constant.EventGenerated, c.spec))

	return nil
}

// SaveCommand writes the studio's current QR code to a user-chosen file.
type SaveCommand struct {
	studio *Studio
	bus    *EventBus
}

// NewSaveCommand creates a save command
func NewSaveCommand(studio *Studio, bus *EventBus) *SaveCommand {
	return &SaveCommand{studio: studio, bus: bus}
}

// Execute returns ErrNothingToSave before any generation, and nil when the
// user cancels the path prompt.
func (c *SaveCommand) Execute(ctx context.Context) error {
	current := c.studio.CurrentSpec()
	if current == nil {
		c.studio.ui.Info(constant.TitleNothingToSave, constant.NoticeNothingSaved)
		return ErrNothingToSave
	}

	path, err := c.studio.ui.AskSavePath(ctx)
	if err != nil {
		logger.CtxError(ctx, "Failed to read save path", logger.LoggerInfo{
			ContextFunction: constant.CtxSave,
			Error: &logger.CustomError{
				Code:    constant.ErrCodePathPrompt,
				Message: err.Error(),
				Type:    constant.ErrTypeStorage,
			},
		})
		return err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if filepath.Ext(path) == "" {
		path += "." + constant.FormatPNG
	}

	// Rebuild from the stored spec rather than reusing the preview pixels
	format := qrcode.EncoderForExtension(filepath.Ext(path)).Ext()
	data, err := c.studio.service.GenerateBytes(ctx, *current, format)
	if err == nil {
		err = os.WriteFile(path, data, 0o644)
	}
	if err != nil {
		logger.CtxError(ctx, "Failed to save QR code", logger.LoggerInfo{
			ContextFunction: constant.CtxSave,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeSaveFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeStorage,
			},
			Data: map[string]interface{}{
				constant.DataFilePath: path,
				constant.DataFormat:   format,
			},
		})
		c.bus.Publish(fmt.Sprintf(constant.EventSaveError, err))
		c.studio.ui.Error(constant.TitleSaveFailed, fmt.Sprintf(constant.NoticeSaveFailed, err))
		return err
	}

	c.bus.Publish(fmt.Sprintf(constant.EventSaved, path))
	c.studio.ui.Info(constant.TitleSaved, fmt.Sprintf(constant.NoticeSaved, path))

	c.record(ctx, newExport(*current, format, path, len(data)))
	return nil
}

// record keeps an export in history. Failures are logged, never surfaced.
func (c *SaveCommand) record(ctx context.Context, export *Export) {
	if c.studio.history == nil {
		return
	}
	if err := c.studio.history.Record(ctx, export); err != nil {
		logger.CtxWarn(ctx, "Failed to record export", logger.LoggerInfo{
			ContextFunction: constant.CtxSave,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeHistoryRecord,
				Message: err.Error(),
				Type:    constant.ErrTypeStorage,
			},
			Data: map[string]interface{}{
				constant.DataFilePath: export.Path,
			},
		})
	}
}

// ClearCommand resets the input and preview.
type ClearCommand struct {
	studio *Studio
	bus    *EventBus
}

// NewClearCommand creates a clear command
func NewClearCommand(studio *Studio, bus *EventBus) *ClearCommand {
	return &ClearCommand{studio: studio, bus: bus}
}

// Execute never fails
func (c *ClearCommand) Execute(ctx context.Context) error {
	c.studio.SetInput("")
	c.studio.SetPreview(ctx, nil, nil, nil)
	c.bus.Publish(constant.EventCleared)
	c.studio.status = constant.StatusCleared
	return nil
}
