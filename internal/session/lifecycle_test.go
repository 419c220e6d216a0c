package session_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/verte-zerg/keyquill/internal/lesson"
	"github.com/verte-zerg/keyquill/internal/session"
)

var testCatalog = lesson.MustCatalog([]lesson.Lesson{
	{ID: "cat", Title: "Cat", Category: "Basics", Difficulty: lesson.Beginner, Language: lesson.English, Content: "cat"},
	{ID: "dog", Title: "Dog", Category: "Basics", Difficulty: lesson.Beginner, Language: lesson.English, Content: "dog"},
	{ID: "sun", Title: "Sun", Category: "Words", Difficulty: lesson.Intermediate, Language: lesson.English, Content: "sun"},
	{ID: "ka", Title: "Ka", Category: "Basics", Difficulty: lesson.Beginner, Language: lesson.Hindi, Content: "कत"},
})

var _ = Describe("Engine", func() {
	var (
		engine      *session.Engine
		currentTime time.Time
		opts        session.Options
	)

	clock := func() time.Time { return currentTime }

	BeforeEach(func() {
		currentTime = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
		opts = session.Options{
			Catalog:  testCatalog,
			Language: lesson.English,
			Timer:    session.TimerOnStart,
			Clock:    clock,
		}
		engine = session.New(opts)
	})

	Describe("initial state", func() {
		It("is idle with no lesson", func() {
			snap := engine.Snapshot()
			Expect(snap.Phase).To(Equal(session.Idle))
			Expect(snap.ActiveLesson).To(BeNil())
			Expect(snap.TargetText).To(BeEmpty())
			Expect(snap.Verdicts).To(BeEmpty())
		})

		It("ignores input before start", func() {
			Expect(engine.SelectLesson("cat")).To(BeTrue())
			engine.SubmitInput("c")
			snap := engine.Snapshot()
			Expect(snap.RawInput).To(BeEmpty())
			Expect(snap.Verdicts).To(Equal([]session.Verdict{session.Untyped, session.Untyped, session.Untyped}))
		})

		It("does not start without a lesson", func() {
			Expect(engine.Start()).To(BeFalse())
			Expect(engine.Snapshot().IsStarted).To(BeFalse())
		})
	})

	Describe("SelectLesson", func() {
		It("rejects unknown ids", func() {
			Expect(engine.SelectLesson("nope")).To(BeFalse())
			Expect(engine.Phase()).To(Equal(session.Idle))
		})

		It("rejects lessons outside the active language", func() {
			Expect(engine.SelectLesson("ka")).To(BeFalse())
		})

		It("moves to ready with untyped verdicts", func() {
			Expect(engine.SelectLesson("dog")).To(BeTrue())
			snap := engine.Snapshot()
			Expect(snap.Phase).To(Equal(session.Ready))
			Expect(snap.TargetText).To(Equal("dog"))
			Expect(snap.Verdicts).To(HaveLen(3))
			Expect(snap.CurrentExpected).To(Equal('d'))
		})
	})

	Describe("scenario A", func() {
		It("completes a perfect attempt", func() {
			engine.SelectLesson("cat")
			Expect(engine.Start()).To(BeTrue())
			currentTime = currentTime.Add(time.Second)
			Expect(engine.SubmitInput("cat")).To(BeTrue())

			snap := engine.Snapshot()
			Expect(snap.Verdicts).To(Equal([]session.Verdict{session.Correct, session.Correct, session.Correct}))
			Expect(snap.IsComplete).To(BeTrue())
			Expect(snap.Phase).To(Equal(session.Complete))
			Expect(snap.Stats.AccuracyPercent).To(Equal(100))
			Expect(snap.Stats.ElapsedSeconds).To(BeNumerically("~", 1.0, 1e-9))
			Expect(snap.Stats.WordsPerMinute).To(Equal(36))
			Expect(snap.HasExpected).To(BeFalse())
		})
	})

	Describe("scenario B", func() {
		It("completes on length regardless of correctness", func() {
			engine.SelectLesson("cat")
			engine.Start()
			engine.SubmitInput("cbt")

			snap := engine.Snapshot()
			Expect(snap.Verdicts).To(Equal([]session.Verdict{session.Correct, session.Incorrect, session.Correct}))
			Expect(snap.IsComplete).To(BeTrue())
			Expect(snap.Stats.AccuracyPercent).To(Equal(67))
		})

		It("freezes verdicts after completion", func() {
			engine.SelectLesson("cat")
			engine.Start()
			engine.SubmitInput("cbt")
			Expect(engine.SubmitInput("ca")).To(BeFalse())
			Expect(engine.Snapshot().RawInput).To(Equal("cbt"))
		})
	})

	Describe("scenario C", func() {
		It("keeps a matching lesson when the language is unchanged", func() {
			opts.Language = lesson.Hindi
			engine = session.New(opts)
			Expect(engine.SelectLesson("ka")).To(BeTrue())
			engine.Start()
			engine.SubmitInput("क")

			engine.SetLanguage(lesson.Hindi)
			snap := engine.Snapshot()
			Expect(snap.ActiveLesson).NotTo(BeNil())
			Expect(snap.RawInput).To(Equal("क"))
			Expect(snap.Verdicts[0]).To(Equal(session.Correct))
		})

		It("clears an english lesson when switching to hindi", func() {
			engine.SelectLesson("cat")
			engine.Start()
			engine.SubmitInput("ca")

			engine.SetLanguage(lesson.Hindi)
			snap := engine.Snapshot()
			Expect(snap.ActiveLesson).To(BeNil())
			Expect(snap.Phase).To(Equal(session.Idle))
			for _, v := range snap.Verdicts {
				Expect(v).To(Equal(session.Untyped))
			}
			Expect(engine.Lessons()).To(HaveLen(1))
		})
	})

	Describe("Start", func() {
		It("auto-selects the first lesson when enabled", func() {
			opts.AutoStart = true
			engine = session.New(opts)
			Expect(engine.Start()).To(BeTrue())
			snap := engine.Snapshot()
			Expect(snap.ActiveLesson.ID).To(Equal("cat"))
			Expect(snap.Phase).To(Equal(session.InProgress))
		})

		It("defers the clock to the first key under the first-key policy", func() {
			opts.Timer = session.TimerOnFirstKey
			engine = session.New(opts)
			engine.SelectLesson("cat")
			engine.Start()
			Expect(engine.Snapshot().StartedAt.IsZero()).To(BeTrue())

			currentTime = currentTime.Add(5 * time.Second)
			engine.SubmitInput("c")
			Expect(engine.Snapshot().StartedAt).To(Equal(currentTime))
		})

		It("begins a fresh attempt after completion", func() {
			engine.SelectLesson("cat")
			engine.Start()
			engine.SubmitInput("cat")
			Expect(engine.Start()).To(BeTrue())
			snap := engine.Snapshot()
			Expect(snap.IsComplete).To(BeFalse())
			Expect(snap.RawInput).To(BeEmpty())
			Expect(snap.IsStarted).To(BeTrue())
		})
	})

	Describe("Tick", func() {
		It("updates elapsed time while in progress", func() {
			engine.SelectLesson("cat")
			engine.Start()
			engine.SubmitInput("c")
			currentTime = currentTime.Add(3 * time.Second)
			engine.Tick()
			Expect(engine.Snapshot().Stats.ElapsedSeconds).To(BeNumerically("~", 3.0, 1e-9))
		})
	})

	Describe("auto-advance", func() {
		BeforeEach(func() {
			engine.SelectLesson("cat")
			engine.Start()
			engine.SubmitInput("cat")
		})

		It("advances when the token is current", func() {
			tok := engine.Pending()
			Expect(tok.LessonID()).To(Equal("cat"))
			Expect(engine.AdvanceIfCurrent(tok)).To(BeTrue())
			Expect(engine.Snapshot().ActiveLesson.ID).To(Equal("dog"))
			Expect(engine.Phase()).To(Equal(session.Ready))
		})

		It("is superseded by selecting another lesson", func() {
			tok := engine.Pending()
			engine.SelectLesson("sun")
			Expect(engine.AdvanceIfCurrent(tok)).To(BeFalse())
			Expect(engine.Snapshot().ActiveLesson.ID).To(Equal("sun"))
		})

		It("is superseded by a reset and a new completion of the same lesson", func() {
			tok := engine.Pending()
			engine.Reset()
			engine.Start()
			engine.SubmitInput("cat")
			Expect(engine.AdvanceIfCurrent(tok)).To(BeFalse())
			Expect(engine.Snapshot().ActiveLesson.ID).To(Equal("cat"))
		})

		It("stays complete on the last lesson", func() {
			engine.SelectLesson("sun")
			engine.Start()
			engine.SubmitInput("sun")
			Expect(engine.AdvanceIfCurrent(engine.Pending())).To(BeFalse())
			Expect(engine.Snapshot().IsComplete).To(BeTrue())
		})
	})
})
