package removal

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pixelcut/rembg-mcp/internal/config"
	"github.com/pixelcut/rembg-mcp/internal/imageio"
	"github.com/pixelcut/rembg-mcp/internal/models"
	"github.com/pixelcut/rembg-mcp/internal/session"
)

// MethodFloodFill is the Result.MethodUsed value for the heuristic path;
// the ML path reports the model identifier instead.
const MethodFloodFill = "floodfill"

// UnloadHint is attached to results produced by the ML path.
const UnloadHint = "Tip: ML models consume significant RAM. Call 'unload_models' tool when done processing images to free memory."

// Alpha matting tunables forwarded to the backend, matching rembg defaults.
const (
	defaultForegroundThreshold = 240
	defaultBackgroundThreshold = 10
)

// SessionProvider supplies initialized model sessions. *session.Cache
// satisfies it; tests substitute fakes.
type SessionProvider interface {
	GetOrCreate(ctx context.Context, model string) (session.Session, error)
}

// Request describes one background removal invocation.
type Request struct {
	// InputPath is the image to process. Required.
	InputPath string

	// OutputPath is where the PNG result is written. When empty, it is
	// derived from InputPath: same directory, same stem, the configured
	// suffix, ".png" extension.
	OutputPath string

	// Model is the segmentation model used on the ML path. Defaults to
	// models.Default when empty.
	Model string

	// AlphaMatting enables edge refinement on the ML path.
	AlphaMatting bool

	// TryFloodFillFirst attempts the fast heuristic before the ML path.
	TryFloodFillFirst bool
}

// Result is the structured outcome of a removal request. It is created once
// per request and not mutated afterwards.
type Result struct {
	Success       bool   `json:"success"`
	InputPath     string `json:"input_path"`
	OutputPath    string `json:"output_path,omitempty"`
	FileSizeBytes int64  `json:"file_size_bytes,omitempty"`
	MethodUsed    string `json:"method_used,omitempty"`
	ModelUsed     string `json:"model_used"`
	Error         string `json:"error,omitempty"`
	Hint          string `json:"hint,omitempty"`
}

// Remover orchestrates background removal requests.
type Remover struct {
	sessions     SessionProvider
	analyzer     Analyzer
	engine       Engine
	outputSuffix string
	log          *zap.Logger
}

// New builds a Remover from the flood-fill and output tunables in cfg.
func New(sessions SessionProvider, cfg *config.Config, log *zap.Logger) *Remover {
	return &Remover{
		sessions: sessions,
		analyzer: Analyzer{
			ColorThreshold:  cfg.FloodFill.ColorThreshold,
			MinUniformRatio: cfg.FloodFill.MinUniformBorder,
		},
		engine: Engine{
			ColorThreshold:      cfg.FloodFill.ColorThreshold,
			MinTransparentRatio: cfg.FloodFill.MinTransparentRatio,
			MaxTransparentRatio: cfg.FloodFill.MaxTransparentRatio,
			FeatherRadius:       cfg.FloodFill.FeatherRadius,
		},
		outputSuffix: cfg.Output.Suffix,
		log:          log,
	}
}

// Remove processes one request. Expected failures (invalid model, missing
// input, backend errors) are reported through the Result, never returned or
// panicked. On failure no output file is written.
func (r *Remover) Remove(ctx context.Context, req Request) Result {
	if req.Model == "" {
		req.Model = models.Default
	}
	res := Result{InputPath: req.InputPath, ModelUsed: req.Model}

	if req.InputPath == "" {
		return r.fail(res, fmt.Errorf("%w: image_path is required", ErrInvalidRequest))
	}
	if !models.IsSupported(req.Model) {
		return r.fail(res, fmt.Errorf("%w: %q (supported: %s)",
			models.ErrUnsupported, req.Model, strings.Join(models.IDs(), ", ")))
	}
	if _, err := os.Stat(req.InputPath); err != nil {
		return r.fail(res, fmt.Errorf("%w: %s", ErrFileNotFound, req.InputPath))
	}

	outPath := req.OutputPath
	if outPath == "" {
		outPath = r.defaultOutputPath(req.InputPath)
	}

	img, err := imageio.Load(req.InputPath)
	if err != nil {
		return r.fail(res, fmt.Errorf("%w: %v", ErrGeneration, err))
	}

	var out image.Image
	method := req.Model

	if req.TryFloodFillFirst {
		out = r.tryFloodFill(img)
		if out != nil {
			method = MethodFloodFill
		}
	}

	if out == nil {
		out, err = r.segment(ctx, img, req)
		if err != nil {
			return r.fail(res, err)
		}
		res.Hint = UnloadHint
	}

	if err := imageio.SavePNG(outPath, out); err != nil {
		return r.fail(res, fmt.Errorf("%w: %v", ErrGeneration, err))
	}
	stat, err := os.Stat(outPath)
	if err != nil {
		return r.fail(res, fmt.Errorf("%w: %v", ErrGeneration, err))
	}

	res.Success = true
	res.OutputPath = outPath
	res.FileSizeBytes = stat.Size()
	res.MethodUsed = method
	r.log.Info("background removed",
		zap.String("input", req.InputPath),
		zap.String("output", outPath),
		zap.String("method", method),
		zap.Int64("bytes", stat.Size()))
	return res
}

// tryFloodFill runs the heuristic path and returns its output, or nil when
// the border disqualifies the image or the fill result is implausible.
func (r *Remover) tryFloodFill(img image.Image) image.Image {
	analysis := r.analyzer.Analyze(img)
	if !analysis.Uniform {
		r.log.Debug("border not uniform enough for flood fill",
			zap.Float64("uniform_ratio", analysis.UniformRatio))
		return nil
	}

	outcome := r.engine.Attempt(img, analysis.Background)
	if !outcome.Applied {
		r.log.Debug("flood fill not applicable, using model",
			zap.String("background", hexString(analysis.Background)),
			zap.Float64("transparent_ratio", outcome.TransparentRatio))
		return nil
	}

	r.log.Info("flood fill applied",
		zap.String("background", hexString(analysis.Background)),
		zap.Float64("transparent_ratio", outcome.TransparentRatio))
	return outcome.Image
}

// segment runs the ML path through the session cache.
func (r *Remover) segment(ctx context.Context, img image.Image, req Request) (image.Image, error) {
	sess, err := r.sessions.GetOrCreate(ctx, req.Model)
	if err != nil {
		if errors.Is(err, models.ErrUnsupported) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: initializing model %q: %v", ErrGeneration, req.Model, err)
	}

	out, err := sess.Segment(ctx, img, session.SegmentOptions{
		AlphaMatting:        req.AlphaMatting,
		ForegroundThreshold: defaultForegroundThreshold,
		BackgroundThreshold: defaultBackgroundThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: model %q: %v", ErrGeneration, req.Model, err)
	}
	return out, nil
}

func (r *Remover) defaultOutputPath(inputPath string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(filepath.Dir(inputPath), stem+r.outputSuffix+".png")
}

func (r *Remover) fail(res Result, err error) Result {
	r.log.Warn("background removal failed",
		zap.String("input", res.InputPath),
		zap.Error(err))
	res.Error = err.Error()
	return res
}
