package effect

import "github.com/senna-k/ffbsim/internal/units"

// Envelope shapes an effect's amplitude over time: a linear attack from
// AttackLevel to the sustain value, the sustain value itself, then a linear
// fade to FadeLevel over the last FadeTime milliseconds of the duration.
// Levels are on the 0..units.MaxModifier scale; times are milliseconds.
type Envelope struct {
	AttackLevel uint16
	AttackTime  uint32
	FadeLevel   uint16
	FadeTime    uint32
}

func (e Envelope) validate() error {
	if e.AttackLevel > units.MaxModifier || e.FadeLevel > units.MaxModifier {
		return ErrOutOfRange
	}
	return nil
}

// Apply shapes the amplitude sustain at time t within an effect of the given
// duration. A nil envelope, or one with zero attack and fade times, is the
// identity. The attack window wins if attack and fade overlap.
func (e *Envelope) Apply(sustain float64, t, duration uint32) float64 {
	if e == nil {
		return sustain
	}
	if t < e.AttackTime {
		a := float64(e.AttackLevel)
		return a + (sustain-a)*float64(t)/float64(e.AttackTime)
	}
	if e.FadeTime > 0 {
		fadeStart := uint32(0)
		if duration > e.FadeTime {
			fadeStart = duration - e.FadeTime
		}
		if t > fadeStart {
			f := float64(e.FadeLevel)
			return sustain + (f-sustain)*float64(t-fadeStart)/float64(duration-fadeStart)
		}
	}
	return sustain
}
