package animation

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/logger"
)

// Options controls how the mixer clock advances.
type Options struct {
	// Loop wraps the clock at the duration of the longest channel.
	Loop bool
	// Speed scales every delta; 1 is real time.
	Speed float32
	// MaxDelta caps a single step so a stalled frame does not skip ahead. Zero disables the cap.
	MaxDelta time.Duration
}

// DefaultOptions loops in real time with a 100ms step cap.
func DefaultOptions() Options {
	return Options{Loop: true, Speed: 1, MaxDelta: 100 * time.Millisecond}
}

type binding struct {
	field reflect.Value
	ch    Sampler
}

// Mixer advances a global clock and writes channel values into the bound
// properties. Channels are fixed once added.
type Mixer struct {
	opts     Options
	bindings []binding
	time     float32
	duration float32
}

// NewMixer creates an empty mixer.
func NewMixer(opts Options) *Mixer {
	if opts.Speed == 0 {
		opts.Speed = 1
	}
	return &Mixer{opts: opts}
}

// AddChannel binds ch to an exported field of target, which must be a non-nil
// pointer to a struct. property may be a dotted path through nested structs
// and non-nil struct pointers, e.g. "Diffuse.Color". AddChannel reports
// whether the channel was added; a missing field or a field whose type
// differs from the channel's value type is skipped.
func (m *Mixer) AddChannel(target any, property string, ch Sampler) bool {
	if ch == nil {
		return false
	}
	field, ok := resolveField(target, property)
	if !ok || field.Type() != ch.valueType() {
		logger.Debug("animation channel skipped",
			zap.String("target", fmt.Sprintf("%T", target)),
			zap.String("property", property),
			zap.Stringer("value_type", ch.valueType()),
		)
		return false
	}

	m.bindings = append(m.bindings, binding{field: field, ch: ch})
	m.duration = math32.Max(m.duration, ch.Duration())
	return true
}

func resolveField(target any, property string) (reflect.Value, bool) {
	v := reflect.ValueOf(target)
	if !v.IsValid() || v.Kind() != reflect.Pointer || v.IsNil() {
		return reflect.Value{}, false
	}
	v = v.Elem()

	for _, name := range strings.Split(property, ".") {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			return reflect.Value{}, false
		}
		f, ok := v.Type().FieldByName(name)
		if !ok || !f.IsExported() {
			return reflect.Value{}, false
		}
		v = v.FieldByIndex(f.Index)
	}
	if !v.CanSet() {
		return reflect.Value{}, false
	}
	return v, true
}

// Animate advances the clock by dt and writes every channel's value.
func (m *Mixer) Animate(dt time.Duration) {
	if m.opts.MaxDelta > 0 && dt > m.opts.MaxDelta {
		dt = m.opts.MaxDelta
	}
	m.time += float32(dt.Seconds()) * m.opts.Speed

	switch {
	case m.duration <= 0:
		m.time = 0
	case m.opts.Loop:
		m.time = math32.Mod(m.time, m.duration)
		if m.time < 0 {
			m.time += m.duration
		}
	default:
		m.time = math32.Max(0, math32.Min(m.time, m.duration))
	}

	m.apply()
}

// Seek sets the clock to t seconds and writes every channel's value.
func (m *Mixer) Seek(t float32) {
	m.time = t
	m.apply()
}

func (m *Mixer) apply() {
	for _, b := range m.bindings {
		b.field.Set(reflect.ValueOf(b.ch.sample(m.time)))
	}
}

// Time returns the clock in seconds.
func (m *Mixer) Time() float32 {
	return m.time
}

// Duration returns the duration of the longest channel.
func (m *Mixer) Duration() float32 {
	return m.duration
}

// Len returns the number of bound channels.
func (m *Mixer) Len() int {
	return len(m.bindings)
}
