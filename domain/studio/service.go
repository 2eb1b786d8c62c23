package studio

import (
	"bytes"
	"context"

	"github.com/prasetyowira/qrstudio/constant"
	"github.com/prasetyowira/qrstudio/infrastructure/cache"
	"github.com/prasetyowira/qrstudio/infrastructure/logger"
	"github.com/prasetyowira/qrstudio/infrastructure/qrcode"
)

// Service turns a QRSpec into file bytes. Results are memoised per format.
type Service struct {
	cache *cache.NamespaceLRU[[]byte]
}

// NewService creates a new QR service. A nil cache disables memoisation.
func NewService(lru *cache.NamespaceLRU[[]byte]) *Service {
	logger.Debug("Creating QR service", logger.LoggerInfo{
		ContextFunction: constant.CtxStudio,
		Data: map[string]interface{}{
			constant.DataService: "qrcode",
		},
	})

	if lru == nil {
		lru = cache.NewNamespaceLRU[[]byte](0)
	}
	return &Service{cache: lru}
}

// Encoder returns the encoder used for format ("png", "svg", ".svg", ...).
func (s *Service) Encoder(format string) qrcode.ImageEncoder {
	return qrcode.EncoderForExtension(format)
}

// GenerateBytes validates spec and encodes it in format. Unknown formats produce PNG.
func (s *Service) GenerateBytes(ctx context.Context, spec QRSpec, format string) ([]byte, error) {
	if err := spec.Validate(); err != nil {
		logger.CtxWarn(ctx, "Rejected QR spec", logger.LoggerInfo{
			ContextFunction: constant.CtxService,
			Error: &logger.CustomError{
				Code:    ValidationCode(err),
				Message: err.Error(),
				Type:    constant.ErrTypeValidation,
			},
			Data: map[string]interface{}{
				constant.DataTextLength: len(spec.Data),
				constant.DataFormat:     format,
			},
		})
		return nil, err
	}

	enc := s.Encoder(format)
	namespace := constant.PNGNamespace
	if enc.Ext() == constant.FormatSVG {
		namespace = constant.SVGNamespace
	}

	key := spec.Key()
	if data, found := s.cache.Get(namespace, key); found {
		logger.CtxDebug(ctx, "QR bytes served from cache", logger.LoggerInfo{
			ContextFunction: constant.CtxService,
			Data: map[string]interface{}{
				constant.DataFormat:   enc.Ext(),
				constant.DataBytes:    len(data),
				constant.DataCacheHit: true,
			},
		})
		return bytes.Clone(data), nil
	}

	data, modules, err := encodeSpec(spec, enc)
	if err != nil {
		logger.CtxError(ctx, "Failed to encode QR code", logger.LoggerInfo{
			ContextFunction: constant.CtxService,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeEncode,
				Message: err.Error(),
				Type:    constant.ErrTypeEncoding,
			},
			Data: map[string]interface{}{
				constant.DataTextLength: len(spec.Data),
				constant.DataFormat:     enc.Ext(),
			},
		})
		return nil, err
	}

	s.cache.Set(namespace, key, data)

	logger.CtxInfo(ctx, "QR code encoded", logger.LoggerInfo{
		ContextFunction: constant.CtxService,
		Data: map[string]interface{}{
			constant.DataFormat:     enc.Ext(),
			constant.DataErrorLevel: string(spec.ErrorLevel),
			constant.DataModules:    modules,
			constant.DataBytes:      len(data),
			constant.DataCacheHit:   false,
		},
	})

	return bytes.Clone(data), nil
}

func encodeSpec(spec QRSpec, enc qrcode.ImageEncoder) ([]byte, int, error) {
	sym, err := spec.Encode()
	if err != nil {
		return nil, 0, err
	}

	opts, err := spec.RenderOptions()
	if err != nil {
		return nil, 0, err
	}

	m := sym.Modules()
	var buf bytes.Buffer
	if err := enc.Encode(&buf, m, opts); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), m.Size(), nil
}
