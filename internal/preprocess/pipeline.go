package preprocess

import (
	"image"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/ksuid"

	"github.com/Nengock/katepeh/internal/detect"
	"github.com/Nengock/katepeh/internal/warp"
)

// minAreaLadder is the ordered retry strategy for the card search: each
// Process call walks it from the strictest rung down, accepting smaller and
// smaller candidate contours before giving up. The ladder is consumed with a
// call-local index, never shared state.
var minAreaLadder = []int{1000, 500, 250}

// Preprocessor runs the normalization pipeline with a fixed configuration.
// It is immutable after construction and safe for concurrent use.
type Preprocessor struct {
	cfg    Config
	logger zerolog.Logger
}

// New creates a Preprocessor using the global logger.
func New(cfg Config) *Preprocessor {
	return NewWithLogger(cfg, log.Logger)
}

// NewWithLogger creates a Preprocessor that logs through the given logger.
func NewWithLogger(cfg Config, logger zerolog.Logger) *Preprocessor {
	return &Preprocessor{
		cfg:    cfg,
		logger: logger.With().Str("component", "preprocess").Logger(),
	}
}

// Config returns the pipeline configuration.
func (p *Preprocessor) Config() Config { return p.cfg }

// LocateCard runs only the card search on a frame, using the configured
// minimum candidate area. Useful for diagnostics; Process drives its own
// retry ladder instead.
func (p *Preprocessor) LocateCard(img image.Image) detect.Result {
	return detect.Locate(img, float64(p.cfg.MinArea))
}

// Process runs the full pipeline on a decoded frame.
//
// Strict mode returns a typed *Error for fatal conditions (nil input,
// undersized frame, failed color conversion, contrast failure). A card that
// cannot be located is not fatal: the denoised frame passes through to
// contrast enhancement unchanged.
//
// Bypass mode never returns an error: undersized frames are force-resized,
// denoising and perspective correction are skipped, and any failure --
// including a panic in a downstream stage -- degrades to returning the best
// buffer computed so far, or the input itself.
func (p *Preprocessor) Process(img image.Image) (out image.Image, err error) {
	logger := p.logger.With().Str("job", ksuid.New().String()).Logger()

	if p.cfg.Bypass {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().Interface("panic", r).Msg("bypass: stage failure, returning input unchanged")
				out, err = img, nil
			}
		}()
	}

	if img == nil {
		if p.cfg.Bypass {
			logger.Warn().Msg("bypass: nil input passed through")
			return nil, nil
		}
		return nil, newError(KindInvalidInput, "input image is nil")
	}
	if cfgErr := p.cfg.Validate(); cfgErr != nil {
		if p.cfg.Bypass {
			logger.Warn().Err(cfgErr).Msg("bypass: invalid config, returning input unchanged")
			return img, nil
		}
		return nil, wrapError(KindInvalidInput, cfgErr, "invalid configuration")
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinDimension || bounds.Dy() < MinDimension {
		if !p.cfg.Bypass {
			return nil, newError(KindImageTooSmall,
				"image is %dx%d; minimum size is %dx%d",
				bounds.Dx(), bounds.Dy(), MinDimension, MinDimension)
		}
		logger.Debug().
			Int("width", bounds.Dx()).Int("height", bounds.Dy()).
			Msg("bypass: frame below minimum size, force-resizing")
		img = forceMinSize(img)
	}

	best := Fit(img, p.cfg.TargetWidth, p.cfg.TargetHeight)

	if !p.cfg.Bypass {
		best = Bilateral(best, 9, 75, 75)
		best = p.correctPerspective(best, logger)
	}

	enhanced, enhErr := EnhanceContrast(best)
	if enhErr != nil {
		if p.cfg.Bypass {
			logger.Warn().Err(enhErr).Msg("bypass: contrast enhancement failed, returning best buffer")
			return best, nil
		}
		return nil, wrapError(KindEnhancement, enhErr, "contrast enhancement failed")
	}
	return enhanced, nil
}

// correctPerspective walks the min-area retry ladder over the card search
// and warps the frame onto the target rectangle when a quadrilateral is
// found. When every rung fails the denoised frame is returned unchanged;
// that degradation is expected and logged, never an error.
func (p *Preprocessor) correctPerspective(img image.Image, logger zerolog.Logger) image.Image {
	for attempt, minArea := range minAreaLadder {
		res := detect.Locate(img, float64(minArea))
		if !res.Found {
			logger.Debug().
				Int("attempt", attempt+1).
				Int("min_area", minArea).
				Str("reason", res.Reason).
				Msg("card not located")
			continue
		}

		warped, err := warp.Perspective(img, res.Quad, p.cfg.TargetWidth, p.cfg.TargetHeight)
		if err != nil {
			logger.Warn().
				Int("attempt", attempt+1).
				Err(err).
				Msg("perspective warp failed, retrying")
			continue
		}

		logger.Info().
			Int("attempt", attempt+1).
			Int("min_area", minArea).
			Float64("contour_area", res.Area).
			Msg("perspective corrected")
		return warped
	}

	logger.Warn().Msg("could not correct perspective, using uncorrected frame")
	return img
}
