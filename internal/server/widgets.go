package server

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/screens-mcp/internal/drag"
	"github.com/ironsheep/screens-mcp/internal/imaging"
	"github.com/ironsheep/screens-mcp/internal/mixer"
	"github.com/ironsheep/screens-mcp/internal/resolution"
	"github.com/ironsheep/screens-mcp/internal/zoom"
)

// ErrNotLoaded is returned by widget operations that need a source image
// before one has been loaded.
var ErrNotLoaded = errors.New("no image loaded")

// Initial widget values.
const (
	initialZoomLevel = 10
	mixerCellSize    = 20
)

var initialMix = mixer.RGB{R: 128, G: 128, B: 128}

// ZoomResult reports the zoom widget after an event.
type ZoomResult struct {
	Loaded   bool                 `json:"loaded"`
	State    drag.State           `json:"state"`
	Level    int                  `json:"level"`
	Area     drag.Area            `json:"area"`
	Geometry drag.Geometry        `json:"geometry"`
	Focus    zoom.Pixel           `json:"focus"`
	Source   *imaging.Source      `json:"source,omitempty"`
	Rendered bool                 `json:"rendered"`
	Frame    *zoom.Frame          `json:"frame,omitempty"`
	Image    *imaging.ImageResult `json:"image,omitempty"`
}

// zoomWidget is the pixel zoom: a sample image, its pixel buffer, the drag
// controller positioning the zoom area and the renderer drawing the view.
type zoomWidget struct {
	loader   *imaging.Loader
	ctrl     *drag.Controller
	renderer *zoom.Renderer
	buf      *zoom.PixelBuffer
	source   *imaging.Source
	level    int

	// viewport is set once a client reports real display geometry; until
	// then the image is assumed to be shown at its natural size.
	viewport bool
}

func newZoomWidget(cfg Config, cache *imaging.ImageCache) *zoomWidget {
	return &zoomWidget{
		loader: &imaging.Loader{
			Cache:       cache,
			Logger:      cfg.Logger.With("widget", "zoom"),
			Timeout:     cfg.LoadTimeout,
			Placeholder: imaging.ZoomPlaceholder,
		},
		ctrl:     drag.NewController(cfg.Logger.With("widget", "zoom"), cfg.HoverFollows),
		renderer: zoom.NewRenderer(cfg.Logger.With("widget", "zoom"), cfg.ViewSize, cfg.ViewSize),
		level:    initialZoomLevel,
	}
}

// load replaces the sample image. ErrNotImage leaves the widget untouched.
func (w *zoomWidget) load(ctx context.Context, path string) (*ZoomResult, error) {
	if path != "" {
		w.loader.Cache.Evict(path)
	}
	img, src, err := w.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	w.buf = zoom.NewPixelBuffer(img)
	w.source = src

	size := w.buf.Bounds().Size()
	geom := drag.NaturalGeometry(size)
	if w.viewport {
		geom = w.ctrl.Geometry()
		geom.Natural = size
	}
	w.ctrl.SetGeometry(geom)
	// A drag on the previous image does not carry over.
	w.ctrl.SetLoaded(true)
	w.center()

	return w.render(true)
}

// setViewport records where the image is displayed and re-centres the area.
func (w *zoomWidget) setViewport(display drag.Rect, container drag.Point) (*ZoomResult, error) {
	if display.Width <= 0 || display.Height <= 0 {
		return nil, fmt.Errorf("displayed image size %gx%g must be positive", display.Width, display.Height)
	}
	geom := w.ctrl.Geometry()
	geom.Image = display
	geom.Container = container
	w.ctrl.SetGeometry(geom)
	w.viewport = true

	if !w.ctrl.Loaded() {
		return w.render(false)
	}
	w.center()
	return w.render(true)
}

func (w *zoomWidget) center() {
	g := w.ctrl.Geometry()
	w.ctrl.CenterOn(g.Image.Width/2, g.Image.Height/2)
}

// pointer feeds one pointer event to the drag controller and renders when the
// controller asks for it.
func (w *zoomWidget) pointer(event string, target drag.Target, p drag.Point) (*ZoomResult, error) {
	var redraw bool
	switch event {
	case "press":
		redraw = w.ctrl.Press(target, p)
	case "move":
		redraw = w.ctrl.Move(p)
	case "hover":
		redraw = w.ctrl.Hover(p)
	case "release":
		w.ctrl.Release()
	default:
		return nil, fmt.Errorf("unknown pointer event %q (want press, move, release or hover)", event)
	}
	return w.render(redraw)
}

// setLevel applies a zoom slider change.
func (w *zoomWidget) setLevel(level int) (*ZoomResult, error) {
	if err := zoom.ValidateLevel(level); err != nil {
		return nil, err
	}
	w.level = level
	return w.render(true)
}

// renderAt draws the view around an explicit image point without moving the
// zoom area. A zero level means the current slider value.
func (w *zoomWidget) renderAt(focus image.Point, level int) (*ZoomResult, error) {
	if level == 0 {
		level = w.level
	}
	if err := zoom.ValidateLevel(level); err != nil {
		return nil, err
	}
	res := w.snapshot()
	res.Focus = zoom.PixelOf(focus)
	return w.attachFrame(res, w.renderer.Render(w.buf, focus, level))
}

func (w *zoomWidget) snapshot() *ZoomResult {
	res := &ZoomResult{
		Loaded:   w.ctrl.Loaded(),
		State:    w.ctrl.State(),
		Level:    w.level,
		Area:     w.ctrl.Area(),
		Geometry: w.ctrl.Geometry(),
		Source:   w.source,
	}
	if res.Loaded {
		res.Focus = zoom.PixelOf(w.ctrl.Focus())
	}
	return res
}

// render returns the widget state, with a fresh frame when redraw is set.
func (w *zoomWidget) render(redraw bool) (*ZoomResult, error) {
	res := w.snapshot()
	if !redraw {
		return res, nil
	}
	return w.attachFrame(res, w.renderer.Render(w.buf, res.Focus.Point(), w.level))
}

func (w *zoomWidget) attachFrame(res *ZoomResult, frame *zoom.Frame) (*ZoomResult, error) {
	encoded, err := imaging.EncodePNG(frame.Image)
	if err != nil {
		return nil, err
	}
	res.Rendered = true
	res.Frame = frame
	res.Image = encoded
	return res, nil
}

// MixerResult is the colour mixer after a slider change.
type MixerResult struct {
	mixer.Result
	Image *imaging.ImageResult `json:"image,omitempty"`
}

type mixerWidget struct {
	current mixer.RGB
}

func newMixerWidget() *mixerWidget {
	return &mixerWidget{current: initialMix}
}

func (w *mixerWidget) set(c mixer.RGB, withImage bool) (*MixerResult, error) {
	w.current = c
	res := &MixerResult{Result: mixer.Mix(c)}
	if !withImage {
		return res, nil
	}
	encoded, err := imaging.EncodePNG(mixer.Render(res.Result, mixerCellSize))
	if err != nil {
		return nil, err
	}
	res.Image = encoded
	return res, nil
}

// ResolutionResult is one resolution explorer rendering.
type ResolutionResult struct {
	resolution.Preview
	Source *imaging.Source      `json:"source"`
	Image  *imaging.ImageResult `json:"image"`
}

type resolutionWidget struct {
	loader  *imaging.Loader
	workers int
	src     image.Image
	source  *imaging.Source
	factor  resolution.Factor
}

func newResolutionWidget(cfg Config, cache *imaging.ImageCache) *resolutionWidget {
	return &resolutionWidget{
		loader: &imaging.Loader{
			Cache:       cache,
			Logger:      cfg.Logger.With("widget", "resolution"),
			Timeout:     cfg.LoadTimeout,
			Placeholder: imaging.ResolutionPlaceholder,
		},
		workers: cfg.Workers,
		factor:  resolution.High,
	}
}

func (w *resolutionWidget) load(ctx context.Context, path string) error {
	img, src, err := w.loader.Load(ctx, path)
	if err != nil {
		return err
	}
	w.src = img
	w.source = src
	return nil
}

// selectFactor applies a selector change and renders the new factor.
func (w *resolutionWidget) selectFactor(name string) (*ResolutionResult, error) {
	f, err := resolution.ParseFactor(name)
	if err != nil {
		return nil, err
	}
	if w.src == nil {
		return nil, ErrNotLoaded
	}
	w.factor = f

	b := w.src.Bounds()
	sw, sh := resolution.DownsampleSize(b.Dx(), b.Dy(), f)
	return w.result(resolution.Preview{
		Factor:           f,
		DownsampleWidth:  sw,
		DownsampleHeight: sh,
		Image:            resolution.Explore(w.src, f),
	})
}

// all renders every factor without changing the selection.
func (w *resolutionWidget) all() ([]*ResolutionResult, error) {
	if w.src == nil {
		return nil, ErrNotLoaded
	}
	previews := resolution.ExploreAll(w.src, w.workers)
	out := make([]*ResolutionResult, 0, len(previews))
	for _, p := range previews {
		res, err := w.result(p)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

func (w *resolutionWidget) result(p resolution.Preview) (*ResolutionResult, error) {
	encoded, err := imaging.EncodePNG(p.Image)
	if err != nil {
		return nil, err
	}
	return &ResolutionResult{Preview: p, Source: w.source, Image: encoded}, nil
}
