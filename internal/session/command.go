package session

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

// Defaults bound to the editor's fixed commands.
const (
	DefaultBrightnessDelta = 30
	DefaultContrastFactor  = 1.2
	DefaultCropPercent     = 50
	MaxBlurIntensity       = 20
)

var (
	// ErrNoImageLoaded is returned when a command needs an image and none is open.
	ErrNoImageLoaded = errors.New("no image loaded")

	// ErrInvalidArgument is returned for command parameters outside their range.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Kind identifies a transform command.
type Kind int

const (
	KindGrayscale Kind = iota
	KindEdge
	KindBrightness
	KindContrast
	KindRotate90
	KindFlipHorizontal
	KindBlur
	KindCropCenterPercent
)

var kindNames = map[Kind]string{
	KindGrayscale:         "grayscale",
	KindEdge:              "edge",
	KindBrightness:        "brightness",
	KindContrast:          "contrast",
	KindRotate90:          "rotate90",
	KindFlipHorizontal:    "flip_horizontal",
	KindBlur:              "blur",
	KindCropCenterPercent: "crop_center_percent",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Command is one reversible edit. Only the parameter field matching Kind is
// meaningful; use the constructors rather than building it by hand.
type Command struct {
	Kind      Kind
	Beta      int     // Brightness
	Alpha     float64 // Contrast
	Intensity int     // Blur
	Percent   int     // CropCenterPercent
}

// Command constructors.

func Grayscale() Command { return Command{Kind: KindGrayscale} }
func Edge() Command { return Command{Kind: KindEdge} }
func Brightness(beta int) Command { return Command{Kind: KindBrightness, Beta: beta} }
func Contrast(alpha float64) Command { return Command{Kind: KindContrast, Alpha: alpha} }
func Rotate90() Command { return Command{Kind: KindRotate90} }
func FlipHorizontal() Command { return Command{Kind: KindFlipHorizontal} }
func Blur(intensity int) Command { return Command{Kind: KindBlur, Intensity: intensity} }
func CropCenterPercent(p int) Command { return Command{Kind: KindCropCenterPercent, Percent: p} }

// String describes the command the way it is reported to the user.
func (c Command) String() string {
	switch c.Kind {
	case KindBrightness:
		return fmt.Sprintf("brightness %+d", c.Beta)
	case KindContrast:
		return fmt.Sprintf("contrast x%g", c.Alpha)
	case KindBlur:
		return fmt.Sprintf("blur %d", c.Intensity)
	case KindCropCenterPercent:
		return fmt.Sprintf("crop center %d%%", c.Percent)
	}
	return c.Kind.String()
}

// Validate checks the command's parameter against its allowed range.
func (c Command) Validate() error {
	switch c.Kind {
	case KindGrayscale, KindEdge, KindRotate90, KindFlipHorizontal,
		KindBrightness, KindCropCenterPercent:
		return nil
	case KindContrast:
		if math.IsNaN(c.Alpha) || math.IsInf(c.Alpha, 0) || c.Alpha < 0 {
			return fmt.Errorf("%w: contrast factor %v must be a finite value >= 0", ErrInvalidArgument, c.Alpha)
		}
		return nil
	case KindBlur:
		if c.Intensity < 0 || c.Intensity > MaxBlurIntensity {
			return fmt.Errorf("%w: blur intensity %d outside 0-%d", ErrInvalidArgument, c.Intensity, MaxBlurIntensity)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown command %s", ErrInvalidArgument, c.Kind)
}

// TransformError reports a command that could not be applied.
type TransformError struct {
	Command Command
	Err     error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Command, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }

// Apply runs cmd against the session and commits the result as one
// undoable step.
//
// Crop always reads the original baseline; every other command reads the
// current buffer. History is recorded only after the transform succeeds, so
// a failed command leaves the session exactly as it was.
func Apply(s *Session, cmd Command) error {
	if !s.HasImage() {
		return ErrNoImageLoaded
	}
	if err := cmd.Validate(); err != nil {
		return &TransformError{Command: cmd, Err: err}
	}

	out, err := run(cmd, s.Current(), s.Original())
	if err != nil {
		return &TransformError{Command: cmd, Err: err}
	}

	s.SnapshotBeforeEdit()
	s.SetImage(out)
	return nil
}

func run(cmd Command, current, original *imaging.Buffer) (*imaging.Buffer, error) {
	switch cmd.Kind {
	case KindGrayscale:
		return imaging.Grayscale(current)
	case KindEdge:
		return imaging.EdgeDetect(current)
	case KindBrightness:
		return imaging.Brightness(current, cmd.Beta)
	case KindContrast:
		return imaging.Contrast(current, cmd.Alpha)
	case KindRotate90:
		return imaging.Rotate90(current)
	case KindFlipHorizontal:
		return imaging.FlipHorizontal(current)
	case KindBlur:
		return imaging.Blur(current, cmd.Intensity)
	case KindCropCenterPercent:
		return imaging.CropCenterPercent(original, cmd.Percent)
	}
	return nil, fmt.Errorf("%w: unknown command %s", ErrInvalidArgument, cmd.Kind)
}
