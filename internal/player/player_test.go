package player_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/geodesim/internal/engine"
	"github.com/san-kum/geodesim/internal/player"
)

const sampleInput = `Blueprint 1: Each ore robot costs 4 ore. Each clay robot costs 2 ore. Each obsidian robot costs 3 ore and 14 clay. Each geode robot costs 2 ore and 7 obsidian.
Blueprint 2: Each ore robot costs 2 ore. Each clay robot costs 3 ore. Each obsidian robot costs 3 ore and 8 clay. Each geode robot costs 3 ore and 12 obsidian.
`

var _ = Describe("Session", func() {
	var s player.Session

	BeforeEach(func() {
		s = player.New(fakeFactory, "alpha:20")
	})

	Describe("Reset", func() {
		It("starts idle at step 0", func() {
			f := s.Render()
			Expect(f.Status).To(Equal("Step 0, 0.0% coverage"))
			Expect(f.Step).To(BeZero())
			Expect(f.Playing).To(BeFalse())
			Expect(f.Err).NotTo(HaveOccurred())
			Expect(f.Markup).To(ContainSubstring(`id="alpha"`))
		})

		It("rebuilds the engine from the current input", func() {
			s = s.StepN(5).Reset()
			Expect(s.Render().Step).To(BeZero())
			Expect(s.Input()).To(Equal("alpha:20"))
		})

		It("reports malformed input instead of a blank view", func() {
			s = s.WithInput("garbage")
			f := s.Render()
			Expect(f.Err).To(MatchError(errBadInput))
			Expect(f.Markup).To(ContainSubstring("fake: bad input"))
			Expect(s.Handle()).To(BeNil())

			s, more := s.Step()
			Expect(more).To(BeFalse())
			_, _, ok := s.TogglePlay()
			Expect(ok).To(BeFalse())
		})

		It("clears the error once valid input arrives", func() {
			s = s.WithInput("garbage").WithInput("beta:3")
			Expect(s.Err()).NotTo(HaveOccurred())
			Expect(s.Render().Markup).To(ContainSubstring(`id="beta"`))
		})
	})

	Describe("Step", func() {
		It("advances once and reports remaining steps", func() {
			s, more := s.Step()
			Expect(more).To(BeTrue())
			Expect(s.Render().Status).To(Equal("Step 1, 5.0% coverage"))
		})

		It("leaves the previous session untouched", func() {
			next, _ := s.Step()
			Expect(next.Render().Step).To(Equal(1))
			Expect(s.Render().Step).To(BeZero())
		})

		It("is a no-op once the engine is finished", func() {
			s = s.WithInput("short:2")
			s, more := s.Step()
			Expect(more).To(BeTrue())
			s, more = s.Step()
			Expect(more).To(BeFalse())
			s, more = s.Step()
			Expect(more).To(BeFalse())
			Expect(s.Render().Step).To(Equal(2))
			Expect(s.Render().Done).To(BeTrue())
		})
	})

	Describe("StepN", func() {
		It("matches the same number of single steps", func() {
			stepped := s
			for i := 0; i < 10; i++ {
				stepped, _ = stepped.Step()
			}
			Expect(s.StepN(10).Render()).To(Equal(stepped.Render()))
		})

		DescribeTable("composes additively",
			func(a, b int) {
				Expect(s.StepN(a).StepN(b).Render()).To(Equal(s.StepN(a + b).Render()))
			},
			Entry("0 + 0", 0, 0),
			Entry("3 + 7", 3, 7),
			Entry("10 + 10", 10, 10),
			Entry("past the end", 15, 15),
		)

		It("stops at the end of the simulation", func() {
			Expect(s.StepN(100).Render().Step).To(Equal(20))
		})

		It("uses the batch size for StepBatch", func() {
			Expect(s.StepBatch().Render().Step).To(Equal(player.DefaultBatch))
			s = player.New(fakeFactory, "alpha:20", player.WithBatch(3))
			Expect(s.StepBatch().Render().Step).To(Equal(3))
		})

		It("does not change the play state", func() {
			s, _, _ = s.TogglePlay()
			Expect(s.StepN(3).Playing()).To(BeTrue())
		})
	})

	Describe("TogglePlay", func() {
		It("steps immediately and hands out a frame token", func() {
			s, token, ok := s.TogglePlay()
			Expect(ok).To(BeTrue())
			Expect(token).NotTo(BeZero())
			Expect(s.Playing()).To(BeTrue())
			Expect(s.Render().Step).To(Equal(1))

			s, next, ok := s.Frame(token)
			Expect(ok).To(BeTrue())
			Expect(next).To(Equal(token))
			Expect(s.Render().Step).To(Equal(2))
		})

		It("cancels a frame that was scheduled before the pause", func() {
			s, token, _ := s.TogglePlay()
			s, _, ok := s.TogglePlay()
			Expect(ok).To(BeFalse())
			Expect(s.Playing()).To(BeFalse())

			after, _, ok := s.Frame(token)
			Expect(ok).To(BeFalse())
			Expect(after.Render()).To(Equal(s.Render()))
		})

		It("does not revive an old chain after play is resumed", func() {
			s, first, _ := s.TogglePlay()
			s, _, _ = s.TogglePlay()
			s, second, _ := s.TogglePlay()
			Expect(second).NotTo(Equal(first))

			step := s.Render().Step
			s, _, ok := s.Frame(first)
			Expect(ok).To(BeFalse())
			Expect(s.Render().Step).To(Equal(step))
		})

		It("retires the token on reset", func() {
			s, token, _ := s.TogglePlay()
			s = s.Reset()
			Expect(s.Playing()).To(BeFalse())
			s, _, ok := s.Frame(token)
			Expect(ok).To(BeFalse())
			Expect(s.Render().Step).To(BeZero())
		})

		It("stops by itself when the engine finishes", func() {
			s = s.WithInput("short:3")
			s, token, ok := s.TogglePlay()
			for ok {
				s, token, ok = s.Frame(token)
			}
			Expect(s.Playing()).To(BeFalse())
			Expect(s.Render().Step).To(Equal(3))
		})

		It("will not start on a finished engine", func() {
			s = s.WithInput("short:1").StepN(1)
			s, _, ok := s.TogglePlay()
			Expect(ok).To(BeFalse())
			Expect(s.Playing()).To(BeFalse())
		})

		It("keeps a single chain when stepping manually while playing", func() {
			s, token, _ := s.TogglePlay()
			s, _ = s.Step()
			s, next, ok := s.Frame(token)
			Expect(ok).To(BeTrue())
			Expect(next).To(Equal(token))
			Expect(s.Render().Step).To(Equal(3))
		})
	})

	Describe("loading files", func() {
		It("applies the newest read", func() {
			s, ticket := s.BeginLoad()
			s, applied := s.CompleteLoad(ticket, "beta:5", nil)
			Expect(applied).To(BeTrue())
			Expect(s.Input()).To(Equal("beta:5"))
			Expect(s.Render().Markup).To(ContainSubstring(`id="beta"`))
		})

		It("drops a read superseded by a later selection", func() {
			s, first := s.BeginLoad()
			s, second := s.BeginLoad()

			s, applied := s.CompleteLoad(second, "second:5", nil)
			Expect(applied).To(BeTrue())
			s, applied = s.CompleteLoad(first, "first:5", nil)
			Expect(applied).To(BeFalse())

			Expect(s.Input()).To(Equal("second:5"))
			Expect(s.Render().Markup).To(ContainSubstring(`id="second"`))
		})

		It("drops the older read even when it finishes first", func() {
			s, first := s.BeginLoad()
			s, second := s.BeginLoad()

			s, applied := s.CompleteLoad(first, "first:5", nil)
			Expect(applied).To(BeFalse())
			Expect(s.Input()).To(Equal("alpha:20"))

			s, _ = s.CompleteLoad(second, "second:5", nil)
			Expect(s.Input()).To(Equal("second:5"))
		})

		It("keeps the engine when the read fails", func() {
			s = s.StepN(4)
			s, ticket := s.BeginLoad()
			s, applied := s.CompleteLoad(ticket, "", errors.New("disk on fire"))
			Expect(applied).To(BeTrue())

			var ferr *player.FileReadError
			Expect(errors.As(s.Err(), &ferr)).To(BeTrue())
			Expect(s.Render().Step).To(Equal(4))
			Expect(s.Render().Markup).To(ContainSubstring(`id="alpha"`))
		})

		It("stops playing when new input is applied", func() {
			s, token, _ := s.TogglePlay()
			s, ticket := s.BeginLoad()
			s, _ = s.CompleteLoad(ticket, "beta:5", nil)
			Expect(s.Playing()).To(BeFalse())
			_, _, ok := s.Frame(token)
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Render", func() {
		It("is a pure projection", func() {
			s = s.StepN(7)
			Expect(s.Render()).To(Equal(s.Render()))
			Expect(s.Render().Markup).To(Equal(s.Render().Markup))
		})
	})
})

var _ = Describe("ReadFile", func() {
	It("returns the file contents", func() {
		path := filepath.Join(GinkgoT().TempDir(), "input.txt")
		Expect(os.WriteFile(path, []byte("beta:5"), 0644)).To(Succeed())

		text, err := player.ReadFile(context.Background(), path)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("beta:5"))
	})

	It("wraps failures in FileReadError", func() {
		path := filepath.Join(GinkgoT().TempDir(), "missing.txt")
		_, err := player.ReadFile(context.Background(), path)

		var ferr *player.FileReadError
		Expect(errors.As(err, &ferr)).To(BeTrue())
		Expect(ferr.Path).To(Equal(path))
		Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
	})

	It("honors a canceled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := player.ReadFile(ctx, "whatever")
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})
})

var _ = Describe("Session with the blueprint engine", func() {
	var s player.Session

	BeforeEach(func() {
		s = player.New(engine.NewFactory(engine.DefaultOptions()), sampleInput)
	})

	It("shows step 0 and no coverage after reset", func() {
		f := s.Render()
		Expect(f.Err).NotTo(HaveOccurred())
		Expect(f.Status).To(Equal("Step 0, 0.0% coverage"))
		Expect(f.Markup).To(ContainSubstring("Step 0, 0.0% coverage"))
	})

	It("shows step 1 with non-decreasing coverage after one step", func() {
		before := s.Render().Coverage
		s, _ = s.Step()
		f := s.Render()
		Expect(f.Status).To(HavePrefix("Step 1,"))
		Expect(f.Coverage).To(BeNumerically(">=", before))
	})

	It("treats ten steps and one batch of ten alike", func() {
		stepped := s
		for i := 0; i < 10; i++ {
			stepped, _ = stepped.Step()
		}
		Expect(s.StepN(10).Render().Markup).To(Equal(stepped.Render().Markup))
		Expect(s.StepN(4).StepN(6).Render().Markup).To(Equal(stepped.Render().Markup))
	})

	It("renders identical markup twice", func() {
		s = s.StepN(3)
		Expect(s.Render().Markup).To(Equal(s.Render().Markup))
	})
})
