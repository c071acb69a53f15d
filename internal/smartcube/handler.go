package smartcube

import (
	"io"
	"log/slog"
	"sync"

	"github.com/SeamusWaldron/cubetwist"
)

// Handler decodes notifications and dispatches them to callbacks.
// It is safe for concurrent use.
type Handler struct {
	size int
	log  *slog.Logger

	mu            sync.RWMutex
	battery       int
	onMove        func(cubetwist.Move, Rotation)
	onBattery     func(level int)
	onOrientation func(Orientation)
}

// NewHandler creates a handler that maps turns onto a puzzle of size.
func NewHandler(size int, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{size: size, log: logger, battery: -1}
}

func (h *Handler) OnMove(cb func(cubetwist.Move, Rotation)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onMove = cb
}

func (h *Handler) OnBattery(cb func(level int)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onBattery = cb
}

func (h *Handler) OnOrientation(cb func(Orientation)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onOrientation = cb
}

// Battery returns the last reported battery level, or -1.
func (h *Handler) Battery() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.battery
}

// HandleNotification parses one notification and fires the matching
// callback. Unknown frame types are ignored.
func (h *Handler) HandleNotification(data []byte) error {
	f, err := ParseFrame(data)
	if err != nil {
		h.log.Debug("dropping frame", "error", err, "len", len(data))
		return err
	}

	switch f.Type {
	case TypeRotation:
		rots, err := DecodeRotations(f.Payload)
		if err != nil {
			return err
		}
		h.mu.RLock()
		cb := h.onMove
		h.mu.RUnlock()
		for _, r := range rots {
			m, err := r.Move(h.size)
			if err != nil {
				return err
			}
			h.log.Debug("smart cube turn", "face", r.Notation(), "move", m.String())
			if cb != nil {
				cb(m, r)
			}
		}

	case TypeBattery:
		level, err := DecodeBattery(f.Payload)
		if err != nil {
			return err
		}
		h.mu.Lock()
		h.battery = level
		cb := h.onBattery
		h.mu.Unlock()
		if cb != nil {
			cb(level)
		}

	case TypeOrientation:
		o, err := DecodeOrientation(f.Payload)
		if err != nil {
			return err
		}
		h.mu.RLock()
		cb := h.onOrientation
		h.mu.RUnlock()
		if cb != nil {
			cb(o)
		}

	default:
		h.log.Debug("ignoring frame", "type", TypeName(f.Type))
	}
	return nil
}
