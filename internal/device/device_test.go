package device_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/senna-k/ffbsim/internal/device"
	"github.com/senna-k/ffbsim/internal/direction"
	"github.com/senna-k/ffbsim/internal/effect"
	"github.com/senna-k/ffbsim/internal/units"
)

// constantEffect builds a complete single-axis constant effect pushing
// magnitude along axis 0.
func constantEffect(id effect.ID, magnitude int32, duration uint32) *effect.Effect {
	e := effect.New(id, effect.Constant)
	e.SetDuration(duration)
	dir, err := direction.New(1)
	Expect(err).NotTo(HaveOccurred())
	Expect(dir.SetCartesian([]float64{1})).To(Succeed())
	Expect(e.SetDirection(dir, []int{0})).To(Succeed())
	Expect(e.SetTypeParams(effect.ConstantParams{Magnitude: magnitude})).To(Succeed())
	return e
}

var _ = Describe("Device", func() {
	var dev *device.Device

	BeforeEach(func() {
		dev = device.New()
	})

	Describe("loading effects", func() {
		It("accepts up to the buffer capacity and rejects the next", func() {
			for i := 1; i <= units.MaxEffects; i++ {
				Expect(dev.AddOrUpdate(constantEffect(effect.ID(i), 100, 1000))).To(Succeed())
			}
			Expect(dev.ReadyCount()).To(Equal(units.MaxEffects))

			err := dev.AddOrUpdate(constantEffect(effect.ID(units.MaxEffects+1), 100, 1000))
			Expect(err).To(MatchError(device.ErrBufferFull))
		})

		It("updates a loaded effect in place even when the buffer is full", func() {
			for i := 1; i <= units.MaxEffects; i++ {
				Expect(dev.AddOrUpdate(constantEffect(effect.ID(i), 100, 1000))).To(Succeed())
			}
			Expect(dev.AddOrUpdate(constantEffect(7, 9000, 1000))).To(Succeed())
			Expect(dev.ReadyCount()).To(Equal(units.MaxEffects))
		})

		It("keeps the device's clone independent of the caller's object", func() {
			e := constantEffect(1, 5000, 1000)
			Expect(dev.AddOrUpdate(e)).To(Succeed())
			Expect(dev.Start(1, 1, 0)).To(Succeed())

			// mutate the caller's copy without re-uploading
			Expect(e.SetTypeParams(effect.ConstantParams{Magnitude: 1})).To(Succeed())

			vec := dev.Play(10)
			Expect(vec[0]).To(BeNumerically("==", 5000))
		})

		It("synchronizes parameters on re-upload without touching playback", func() {
			Expect(dev.AddOrUpdate(constantEffect(1, 5000, 1000))).To(Succeed())
			Expect(dev.Start(1, 1, 0)).To(Succeed())
			dev.Play(100)

			Expect(dev.AddOrUpdate(constantEffect(1, 2000, 1000))).To(Succeed())

			Expect(dev.IsPlaying(1)).To(BeTrue())
			vec := dev.Play(200)
			Expect(vec[0]).To(BeNumerically("==", 2000))
		})
	})

	Describe("starting", func() {
		BeforeEach(func() {
			Expect(dev.AddOrUpdate(constantEffect(1, 5000, 1000))).To(Succeed())
		})

		It("rejects unknown identifiers", func() {
			Expect(dev.Start(99, 1, 0)).To(MatchError(device.ErrNotFound))
		})

		It("rejects zero iterations", func() {
			Expect(dev.Start(1, 0, 0)).To(MatchError(device.ErrIterations))
		})

		It("rejects an effect that is already playing", func() {
			Expect(dev.Start(1, 1, 0)).To(Succeed())
			Expect(dev.Start(1, 1, 0)).To(MatchError(device.ErrNotReady))
		})

		It("rejects an incompletely defined effect", func() {
			bare := effect.New(2, effect.Constant)
			Expect(dev.AddOrUpdate(bare)).To(Succeed())
			Expect(dev.Start(2, 1, 0)).To(MatchError(effect.ErrIncomplete))
		})
	})

	Describe("playing", func() {
		It("sums the contributions of concurrent effects", func() {
			Expect(dev.AddOrUpdate(constantEffect(1, 3000, 1000))).To(Succeed())
			Expect(dev.AddOrUpdate(constantEffect(2, 2000, 1000))).To(Succeed())
			Expect(dev.Start(1, 1, 0)).To(Succeed())
			Expect(dev.Start(2, 1, 0)).To(Succeed())

			vec := dev.Play(100)
			Expect(vec[0]).To(BeNumerically("==", 5000))
		})

		It("returns the effect to ready when its duration elapses", func() {
			Expect(dev.AddOrUpdate(constantEffect(1, 5000, 1000))).To(Succeed())
			Expect(dev.Start(1, 1, 0)).To(Succeed())

			Expect(dev.Play(999)[0]).To(BeNumerically("==", 5000))
			Expect(dev.Play(1000).IsZero()).To(BeTrue())
			Expect(dev.PlayingCount()).To(BeZero())
			Expect(dev.ReadyCount()).To(Equal(1))
		})

		It("holds contributions until the start delay elapses", func() {
			e := constantEffect(1, 5000, 1000)
			e.SetStartDelay(100)
			Expect(dev.AddOrUpdate(e)).To(Succeed())
			Expect(dev.Start(1, 1, 0)).To(Succeed())

			Expect(dev.Play(50).IsZero()).To(BeTrue())
			Expect(dev.IsPlaying(1)).To(BeFalse())
			Expect(dev.PlayingCount()).To(Equal(1))

			Expect(dev.Play(100)[0]).To(BeNumerically("==", 5000))
			Expect(dev.IsPlaying(1)).To(BeTrue())
		})

		It("restarts for each remaining iteration before finishing", func() {
			Expect(dev.AddOrUpdate(constantEffect(1, 5000, 100))).To(Succeed())
			Expect(dev.Start(1, 3, 0)).To(Succeed())

			// pass 1 ends at 100, pass 2 at 300, pass 3 at 400
			Expect(dev.Play(100)[0]).To(BeNumerically("==", 5000))
			Expect(dev.Play(300)[0]).To(BeNumerically("==", 5000))
			Expect(dev.Play(350)[0]).To(BeNumerically("==", 5000))
			Expect(dev.Play(400).IsZero()).To(BeTrue())
			Expect(dev.PlayingCount()).To(BeZero())
		})

		It("is unaffected by 32-bit timestamp wraparound", func() {
			start := ^uint32(0) - 499
			Expect(dev.AddOrUpdate(constantEffect(1, 5000, 1000))).To(Succeed())
			Expect(dev.Start(1, 1, start)).To(Succeed())

			Expect(dev.Play(start + 499)[0]).To(BeNumerically("==", 5000))
			// 499ms before the wrap plus 500ms after spans the full duration
			Expect(dev.Play(499)[0]).To(BeNumerically("==", 5000))
			Expect(dev.Play(500).IsZero()).To(BeTrue())
			Expect(dev.ReadyCount()).To(Equal(1))
		})
	})

	Describe("pausing", func() {
		It("freezes effect time while paused", func() {
			Expect(dev.AddOrUpdate(constantEffect(1, 5000, 1000))).To(Succeed())
			Expect(dev.Start(1, 1, 0)).To(Succeed())
			Expect(dev.Play(900)[0]).To(BeNumerically("==", 5000))

			dev.SetPaused(true)
			Expect(dev.Paused()).To(BeTrue())
			// the effect would have expired at 1000 had the clock kept running
			Expect(dev.Play(5000).IsZero()).To(BeTrue())

			dev.SetPaused(false)
			// effect time resumes at 900; 99 more milliseconds remain
			Expect(dev.Play(5099)[0]).To(BeNumerically("==", 5000))
			Expect(dev.Play(5100).IsZero()).To(BeTrue())
		})

		It("returns a zero vector on every paused poll", func() {
			Expect(dev.AddOrUpdate(constantEffect(1, 5000, 1000))).To(Succeed())
			Expect(dev.Start(1, 1, 0)).To(Succeed())
			dev.SetPaused(true)
			Expect(dev.Play(10).IsZero()).To(BeTrue())
			Expect(dev.Play(20).IsZero()).To(BeTrue())
		})
	})

	Describe("muting", func() {
		It("suppresses output while lifecycle state keeps advancing", func() {
			Expect(dev.AddOrUpdate(constantEffect(1, 5000, 100))).To(Succeed())
			Expect(dev.Start(1, 1, 0)).To(Succeed())

			dev.SetMuted(true)
			Expect(dev.Muted()).To(BeTrue())
			Expect(dev.Play(50).IsZero()).To(BeTrue())
			Expect(dev.Play(100).IsZero()).To(BeTrue())
			// the effect expired under mute
			Expect(dev.PlayingCount()).To(BeZero())
			Expect(dev.ReadyCount()).To(Equal(1))

			dev.SetMuted(false)
			Expect(dev.Start(1, 1, 200)).To(Succeed())
			Expect(dev.Play(250)[0]).To(BeNumerically("==", 5000))
		})
	})

	Describe("stopping and removing", func() {
		BeforeEach(func() {
			Expect(dev.AddOrUpdate(constantEffect(1, 5000, 1000))).To(Succeed())
		})

		It("moves a playing effect back to ready on Stop", func() {
			Expect(dev.Start(1, 1, 0)).To(Succeed())
			Expect(dev.Stop(1)).To(Succeed())
			Expect(dev.PlayingCount()).To(BeZero())
			Expect(dev.ReadyCount()).To(Equal(1))
			Expect(dev.Play(10).IsZero()).To(BeTrue())
		})

		It("rejects Stop for an effect that is not playing", func() {
			Expect(dev.Stop(1)).To(MatchError(device.ErrNotPlaying))
		})

		It("stops every playing effect at once", func() {
			Expect(dev.AddOrUpdate(constantEffect(2, 100, 1000))).To(Succeed())
			Expect(dev.Start(1, 1, 0)).To(Succeed())
			Expect(dev.Start(2, 1, 0)).To(Succeed())
			dev.StopAll()
			Expect(dev.PlayingCount()).To(BeZero())
			Expect(dev.ReadyCount()).To(Equal(2))
		})

		It("removes from either collection", func() {
			Expect(dev.AddOrUpdate(constantEffect(2, 100, 1000))).To(Succeed())
			Expect(dev.Start(2, 1, 0)).To(Succeed())

			Expect(dev.Remove(1)).To(Succeed())
			Expect(dev.Remove(2)).To(Succeed())
			Expect(dev.Remove(3)).To(MatchError(device.ErrNotFound))
			Expect(dev.Empty()).To(BeTrue())
		})

		It("clears everything but keeps pause and mute state", func() {
			dev.SetPaused(true)
			dev.SetMuted(true)
			dev.Clear()
			Expect(dev.Empty()).To(BeTrue())
			Expect(dev.Paused()).To(BeTrue())
			Expect(dev.Muted()).To(BeTrue())
		})
	})
})
