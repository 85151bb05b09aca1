package player_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/geodesim/internal/player"
)

var _ = Describe("Driver", func() {
	var (
		d       *player.Driver
		pending []player.PlayToken
		shown   []player.Frame
	)

	// runPending fires every scheduled frame, the way an animation frame
	// callback would.
	runPending := func() {
		queued := pending
		pending = nil
		for _, token := range queued {
			d.Frame(token)
		}
	}

	BeforeEach(func() {
		pending, shown = nil, nil
		d = &player.Driver{
			Session:  player.New(fakeFactory, "alpha:5"),
			Schedule: func(token player.PlayToken) { pending = append(pending, token) },
			Show:     func(f player.Frame) { shown = append(shown, f) },
		}
	})

	It("shows every change", func() {
		d.Step()
		d.StepBatch()
		d.Reset()
		Expect(shown).To(HaveLen(3))
		Expect(shown[1].Step).To(Equal(5))
		Expect(shown[2].Step).To(BeZero())
	})

	It("plays through scheduled frames until the end", func() {
		d.TogglePlay()
		Expect(pending).To(HaveLen(1))
		for len(pending) > 0 {
			runPending()
		}
		f := d.Session.Render()
		Expect(f.Step).To(Equal(5))
		Expect(f.Playing).To(BeFalse())
	})

	It("drops a frame scheduled before a pause", func() {
		d.TogglePlay()
		d.TogglePlay()
		Expect(d.Session.Playing()).To(BeFalse())

		runPending()
		Expect(d.Session.Render().Step).To(Equal(1))
		Expect(pending).To(BeEmpty())
	})

	It("keeps one chain across a pause and resume", func() {
		d.TogglePlay()
		d.TogglePlay()
		d.TogglePlay()
		Expect(pending).To(HaveLen(2))

		runPending()
		Expect(d.Session.Render().Step).To(Equal(3))
		Expect(pending).To(HaveLen(1))
	})

	It("does not schedule on a manual step", func() {
		d.TogglePlay()
		d.Step()
		Expect(pending).To(HaveLen(1))
	})

	It("applies only the newest load", func() {
		first := d.BeginLoad()
		second := d.BeginLoad()

		Expect(d.CompleteLoad(second, "second:3", nil)).To(BeTrue())
		Expect(d.CompleteLoad(first, "first:3", nil)).To(BeFalse())
		Expect(d.Session.Input()).To(Equal("second:3"))
		Expect(shown[len(shown)-1].Markup).To(ContainSubstring(`id="second"`))
	})

	It("shows a failed read next to the current engine", func() {
		d.StepBatch()
		ticket := d.BeginLoad()
		Expect(d.CompleteLoad(ticket, "", errors.New("denied"))).To(BeTrue())

		f := shown[len(shown)-1]
		Expect(f.Err).To(HaveOccurred())
		Expect(f.Step).To(Equal(5))
	})

	It("retires the chain on Stop", func() {
		d.TogglePlay()
		d.Stop()
		runPending()
		Expect(d.Session.Playing()).To(BeFalse())
		Expect(d.Session.Render().Step).To(Equal(1))
	})

	It("works without callbacks", func() {
		d.Schedule, d.Show = nil, nil
		d.TogglePlay()
		d.Step()
		Expect(d.Session.Render().Step).To(Equal(2))
	})
})
