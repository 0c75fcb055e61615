package sheet

import (
	"log/slog"
	"time"
)

const (
	defaultViewportHeight        = 800
	defaultMaxHeightFraction     = 0.9
	defaultDragThreshold         = 50
	defaultScrollExpandThreshold = 50
	defaultBackdropOpacity       = 0.5
	defaultOpenDuration          = 300 * time.Millisecond
	defaultSnapDuration          = 280 * time.Millisecond
	defaultResetDuration         = 50 * time.Millisecond
	defaultKeyboardDuration      = 250 * time.Millisecond
	defaultScrollCooldown        = 500 * time.Millisecond
	defaultEndDragCooldown       = 400 * time.Millisecond
	defaultCloseMargin           = 100

	// closeDurationFactor derives the close slide from the open duration.
	closeDurationFactor = 0.8
)

// Config describes one sheet instance. Zero values select defaults, so a
// literal only needs the fields it cares about.
type Config struct {
	// Name identifies the sheet in a Registry, logs and metrics.
	// Empty means a generated "modal-sheet-N".
	Name string `mapstructure:"name"`

	// SnapPoints are the resting heights in ascending order. Empty selects
	// single-position mode.
	SnapPoints []SnapPoint `mapstructure:"snap_points"`
	// InitialSnapIndex is the index the sheet opens at. Out of range means 0.
	InitialSnapIndex int `mapstructure:"initial_snap_index"`

	// ViewportHeight is the host viewport height in pixels (default 800).
	ViewportHeight float64 `mapstructure:"viewport_height"`
	// Height is the container height in single-position mode. Zero sizes to content.
	Height float64 `mapstructure:"height"`
	// MaxHeight caps the container height (default 90% of the viewport).
	MaxHeight float64 `mapstructure:"max_height"`

	// DragThreshold is how far past the smallest snap point (or, without snap
	// points, how far down) a drag must travel to close the sheet (default 50).
	DragThreshold float64 `mapstructure:"drag_threshold"`
	// ScrollExpandThreshold is the scroll distance within one event that
	// expands or collapses the sheet (default 50).
	ScrollExpandThreshold float64 `mapstructure:"scroll_expand_threshold"`
	// DisableScrollToExpand turns off scroll-driven snapping.
	DisableScrollToExpand bool `mapstructure:"disable_scroll_to_expand"`

	// AvoidKeyboard lifts the sheet by the reported keyboard height.
	AvoidKeyboard bool `mapstructure:"avoid_keyboard"`
	// KeyboardOffset is added to every non-zero keyboard height.
	KeyboardOffset float64 `mapstructure:"keyboard_offset"`

	// BackdropOpacity is the backdrop opacity when open (default 0.5).
	BackdropOpacity float64 `mapstructure:"backdrop_opacity"`

	// OpenDuration is the backdrop fade and single-position slide-in (default 300ms).
	OpenDuration time.Duration `mapstructure:"open_duration"`
	// CloseDuration is the slide-out (default 80% of OpenDuration).
	CloseDuration time.Duration `mapstructure:"close_duration"`
	// SnapDuration is the move between snap points (default 280ms).
	SnapDuration time.Duration `mapstructure:"snap_duration"`
	// ResetDuration is the return to the open position after a short drag (default 50ms).
	ResetDuration time.Duration `mapstructure:"reset_duration"`
	// KeyboardDuration is the keyboard avoidance move (default 250ms).
	KeyboardDuration time.Duration `mapstructure:"keyboard_duration"`

	// ScrollCooldown suppresses scroll-triggered snaps after one fires (default 500ms).
	ScrollCooldown time.Duration `mapstructure:"scroll_cooldown"`
	// EndDragCooldown suppresses end-drag collapses after one fires (default 400ms).
	EndDragCooldown time.Duration `mapstructure:"end_drag_cooldown"`

	// CloseMargin is how far below the viewport a closed sheet rests (default 100).
	CloseMargin float64 `mapstructure:"close_margin"`

	// Registry, when set, receives the sheet under Name until Dispose.
	Registry *Registry `mapstructure:"-"`
	// Logger receives debug records. Nil discards them.
	Logger *slog.Logger `mapstructure:"-"`
	// Observer receives lifecycle notifications. Nil ignores them.
	Observer Observer `mapstructure:"-"`

	// OnOpen fires one tick after the open transition settles.
	OnOpen func() `mapstructure:"-"`
	// OnClose fires one tick after the close transition settles.
	OnClose func() `mapstructure:"-"`
	// OnSnapPointChange fires one tick after a snap is requested, before it settles.
	OnSnapPointChange func(index int) `mapstructure:"-"`
}

// normalizeConfig fills in zero values with defaults.
func normalizeConfig(cfg Config) Config {
	if cfg.ViewportHeight <= 0 {
		cfg.ViewportHeight = defaultViewportHeight
	}
	if cfg.InitialSnapIndex < 0 || cfg.InitialSnapIndex >= len(cfg.SnapPoints) {
		cfg.InitialSnapIndex = 0
	}
	if cfg.DragThreshold <= 0 {
		cfg.DragThreshold = defaultDragThreshold
	}
	if cfg.ScrollExpandThreshold <= 0 {
		cfg.ScrollExpandThreshold = defaultScrollExpandThreshold
	}
	if cfg.BackdropOpacity <= 0 {
		cfg.BackdropOpacity = defaultBackdropOpacity
	}
	if cfg.OpenDuration <= 0 {
		cfg.OpenDuration = defaultOpenDuration
	}
	if cfg.CloseDuration <= 0 {
		cfg.CloseDuration = time.Duration(float64(cfg.OpenDuration) * closeDurationFactor)
	}
	if cfg.SnapDuration <= 0 {
		cfg.SnapDuration = defaultSnapDuration
	}
	if cfg.ResetDuration <= 0 {
		cfg.ResetDuration = defaultResetDuration
	}
	if cfg.KeyboardDuration <= 0 {
		cfg.KeyboardDuration = defaultKeyboardDuration
	}
	if cfg.ScrollCooldown <= 0 {
		cfg.ScrollCooldown = defaultScrollCooldown
	}
	if cfg.EndDragCooldown <= 0 {
		cfg.EndDragCooldown = defaultEndDragCooldown
	}
	if cfg.CloseMargin <= 0 {
		cfg.CloseMargin = defaultCloseMargin
	}
	if cfg.Observer == nil {
		cfg.Observer = NopObserver{}
	}
	return cfg
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	return normalizeConfig(Config{})
}
