package studio

import (
	"context"
	"fmt"
	"image"

	"github.com/nfnt/resize"
	"github.com/prasetyowira/qrstudio/constant"
	"github.com/prasetyowira/qrstudio/infrastructure/logger"
	"github.com/prasetyowira/qrstudio/infrastructure/qrcode"
)

// Notifier shows a modal-style message to the user.
type Notifier interface {
	Warn(title, message string)
	Info(title, message string)
	Error(title, message string)
}

// PathPrompter asks the user where to save. An empty path means cancelled.
type PathPrompter interface {
	AskSavePath(ctx context.Context) (string, error)
}

// UI is what a front-end provides to the studio.
type UI interface {
	Notifier
	PathPrompter
}

// Settings are the start-up defaults of a studio.
type Settings struct {
	PreviewMax int
	ErrorLevel string
	BoxSize    int
	Border     int
	FillColor  string
	Background string
}

// Studio is the state behind one front-end: the option fields the user
// edits, the last generated QR code and its scaled preview.
type Studio struct {
	bus     *EventBus
	ui      UI
	service *Service
	history HistoryRepository

	previewMax int

	input      string
	errorLevel ErrorLevel
	boxSize    int
	border     int
	fillColor  string
	background BackgroundStrategy

	currentImage  image.Image
	currentSymbol *qrcode.Symbol
	currentSpec   *QRSpec
	preview       image.Image
	status        string
}

// NewStudio creates a studio and announces it on the bus. history may be nil.
func NewStudio(settings Settings, bus *EventBus, ui UI, service *Service, history HistoryRepository) (*Studio, error) {
	level, err := ParseErrorLevel(settings.ErrorLevel)
	if err != nil {
		return nil, err
	}
	bg, err := BackgroundByName(settings.Background)
	if err != nil {
		return nil, err
	}

	s := &Studio{
		bus:        bus,
		ui:         ui,
		service:    service,
		history:    history,
		previewMax: settings.PreviewMax,
		errorLevel: level,
		boxSize:    settings.BoxSize,
		border:     settings.Border,
		fillColor:  settings.FillColor,
		background: bg,
		status:     constant.StatusReady,
	}

	bus.Publish(constant.EventReady)
	return s, nil
}

// Bus returns the studio's event bus
func (s *Studio) Bus() *EventBus { return s.bus }

// Input returns the text to encode
func (s *Studio) Input() string { return s.input }

// SetInput replaces the text to encode
func (s *Studio) SetInput(text string) { s.input = text }

// SetErrorLevel sets the grade for the next generation
func (s *Studio) SetErrorLevel(level string) error {
	l, err := ParseErrorLevel(level)
	if err != nil {
		return err
	}
	s.errorLevel = l
	return nil
}

// SetBoxSize sets the pixels per module for the next generation
func (s *Studio) SetBoxSize(n int) error {
	if n < MinBoxSize || n > MaxBoxSize {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidBoxSize, n, MinBoxSize, MaxBoxSize)
	}
	s.boxSize = n
	return nil
}

// SetBorder sets the quiet zone for the next generation
func (s *Studio) SetBorder(n int) error {
	if n < MinBorder || n > MaxBorder {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidBorder, n, MinBorder, MaxBorder)
	}
	s.border = n
	return nil
}

// SetFillColor sets the module colour for the next generation
func (s *Studio) SetFillColor(c string) error {
	if _, err := qrcode.ParseColor(c); err != nil {
		return err
	}
	s.fillColor = c
	return nil
}

// SetBackground selects the background strategy by name
func (s *Studio) SetBackground(name string) error {
	bg, err := BackgroundByName(name)
	if err != nil {
		return err
	}
	s.background = bg
	return nil
}

// BuildSpec snapshots the current option state.
func (s *Studio) BuildSpec() QRSpec {
	fill := s.fillColor
	if fill == "" {
		fill = DefaultFillColor
	}
	return QRSpec{
		Data:       s.input,
		ErrorLevel: s.errorLevel,
		BoxSize:    s.boxSize,
		Border:     s.border,
		FillColor:  fill,
		Background: s.background,
	}
}

// Generate encodes the current input and makes it the preview.
func (s *Studio) Generate(ctx context.Context) error {
	return NewGenerateCommand(s, s.BuildSpec(), s.bus).Execute(ctx)
}

// Save writes the current QR code to a path chosen by the user.
func (s *Studio) Save(ctx context.Context) error {
	return NewSaveCommand(s, s.bus).Execute(ctx)
}

// Clear empties the input and drops the preview.
func (s *Studio) Clear(ctx context.Context) error {
	return NewClearCommand(s, s.bus).Execute(ctx)
}

// SetPreview stores a freshly generated image, or clears the preview when img is nil.
func (s *Studio) SetPreview(ctx context.Context, img image.Image, sym *qrcode.Symbol, spec *QRSpec) {
	s.currentImage = img
	s.currentSymbol = sym
	s.currentSpec = spec

	if img == nil {
		s.currentSymbol = nil
		s.currentSpec = nil
		s.preview = nil
		s.status = constant.StatusNoPreview
		return
	}

	// Fit the preview box, never upscaling
	s.preview = img
	if s.previewMax > 0 {
		side := uint(s.previewMax)
		s.preview = resize.Thumbnail(side, side, img, resize.NearestNeighbor)
	}
	b := s.preview.Bounds()
	s.status = fmt.Sprintf(constant.StatusPreview, b.Dx(), b.Dy())

	logger.CtxDebug(ctx, "Preview updated", logger.LoggerInfo{
		ContextFunction: constant.CtxPreview,
		Data: map[string]interface{}{
			constant.DataWidth:  b.Dx(),
			constant.DataHeight: b.Dy(),
		},
	})
}

// CurrentImage returns the full-size image of the last generation, or nil.
func (s *Studio) CurrentImage() image.Image { return s.currentImage }

// CurrentSpec returns the spec of the last generation, or nil.
func (s *Studio) CurrentSpec() *QRSpec { return s.currentSpec }

// Preview returns the scaled preview image, or nil.
func (s *Studio) Preview() image.Image { return s.preview }

// TerminalPreview renders the current QR code as text, or "No preview".
func (s *Studio) TerminalPreview() string {
	if s.currentSymbol == nil {
		return constant.StatusNoPreview
	}
	return s.currentSymbol.Terminal()
}

// Status returns the status line text
func (s *Studio) Status() string { return s.status }
