package widgets_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tidelight/aipane/pkg/widgets"
)

func TestWidgets(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Widgets Suite")
}

type recordingHandler struct {
	runs    []string
	cancels []string
	accepts []string
}

func (h *recordingHandler) OnRun(messageID, command string)        { h.runs = append(h.runs, command) }
func (h *recordingHandler) OnCancel(messageID string)              { h.cancels = append(h.cancels, messageID) }
func (h *recordingHandler) OnRunCommand(messageID, command string) { h.runs = append(h.runs, command) }
func (h *recordingHandler) OnCancelCommand(messageID string)       { h.cancels = append(h.cancels, messageID) }
func (h *recordingHandler) OnAccept(messageID, content string)     { h.accepts = append(h.accepts, content) }

var _ = Describe("ConsoleWidget", func() {
	var (
		handler *recordingHandler
		w       *widgets.ConsoleWidget
	)

	BeforeEach(func() {
		handler = &recordingHandler{}
		w = widgets.NewConsoleWidget("m1", "print(x)", "Show x", "req-1", true, handler)
	})

	It("runs the current command text once", func() {
		w.SetCommand("print(y)")
		w.Run()
		w.Run()
		Expect(handler.runs).To(Equal([]string{"print(y)"}))
		Expect(w.Resolved()).To(BeTrue())
		Expect(w.ButtonsHidden()).To(BeTrue())
	})

	It("does not cancel after a run resolved it", func() {
		w.Run()
		w.Cancel()
		Expect(handler.cancels).To(BeEmpty())
	})

	It("creates restored commands already resolved", func() {
		restored := widgets.NewConsoleWidget("m2", "x", "", "req-1", false, handler)
		Expect(restored.Resolved()).To(BeTrue())
		restored.Run()
		Expect(handler.runs).To(BeEmpty())
	})

	It("never shows controls again after hide_widget_buttons", func() {
		w.HideButtons()
		w.Run()
		w.Cancel()
		Expect(handler.runs).To(BeEmpty())
		Expect(handler.cancels).To(BeEmpty())
	})
})

var _ = Describe("TerminalWidget", func() {
	It("routes run and cancel decisions", func() {
		handler := &recordingHandler{}
		w := widgets.NewTerminalWidget("m1", "ls -la", "List files", "req-1", true, handler)
		w.Run()
		Expect(handler.runs).To(Equal([]string{"ls -la"}))

		other := widgets.NewTerminalWidget("m2", "rm x", "", "req-1", true, handler)
		other.Cancel()
		Expect(handler.cancels).To(Equal([]string{"m2"}))
	})
})

var _ = Describe("EditFileWidget", func() {
	var (
		handler *recordingHandler
		w       *widgets.EditFileWidget
	)

	BeforeEach(func() {
		handler = &recordingHandler{}
		w = widgets.NewEditFileWidget("e1", "analysis.R", "", "Refactor", "req-1", true, handler, false)
	})

	It("derives the syntax mode from the filename", func() {
		Expect(w.Editor().Language()).To(Equal("r"))
	})

	It("accepts the edited content", func() {
		w.SetContent("x <- 2")
		w.Accept()
		Expect(handler.accepts).To(Equal([]string{"x <- 2"}))
		Expect(w.Resolved()).To(BeTrue())
	})

	It("freezes as read-only when created cancelled", func() {
		cancelled := widgets.NewEditFileWidget("e2", "a.R", "partial", "", "req-1", true, handler, true)
		Expect(cancelled.Cancelled()).To(BeTrue())
		Expect(cancelled.ButtonsHidden()).To(BeTrue())
		cancelled.Accept()
		Expect(handler.accepts).To(BeEmpty())
	})

	Describe("diff highlighting", func() {
		var result widgets.DiffResult

		BeforeEach(func() {
			result = widgets.DiffResult{
				Lines: []widgets.DiffLine{
					{Type: widgets.DiffUnchanged, Content: "a <- 1", OldLine: 9, NewLine: 9},
					{Type: widgets.DiffDeleted, Content: "b <- 2", OldLine: 10},
					{Type: widgets.DiffAdded, Content: "b <- 3", NewLine: 10},
				},
				FilenameWithStats: "analysis.R +1 -1",
			}
			w.ApplyDiffHighlighting(result)
		})

		It("replaces the content with the unified diff text", func() {
			Expect(w.Content()).To(Equal("a <- 1\nb <- 2\nb <- 3"))
			Expect(w.DiffApplied()).To(BeTrue())
		})

		It("marks every line with its diff class", func() {
			Expect(w.Editor().Marker(0)).To(Equal(widgets.MarkerUnchanged))
			Expect(w.Editor().Marker(1)).To(Equal(widgets.MarkerDeleted))
			Expect(w.Editor().Marker(2)).To(Equal(widgets.MarkerAdded))
		})

		It("builds the dual gutter with blanks on the non-applicable side", func() {
			Expect(result.GutterFor(0)).To(Equal(" 9  9"))
			Expect(result.GutterFor(1)).To(Equal("10   "))
			Expect(result.GutterFor(2)).To(Equal("   10"))
		})

		It("splits the annotated filename into name and stats", func() {
			Expect(w.Filename()).To(Equal("analysis.R"))
			Expect(w.HeaderStats()).To(Equal("+1 -1"))
		})

		It("drops the overlay when new content replaces the diff", func() {
			w.SetContent("fresh")
			Expect(w.DiffApplied()).To(BeFalse())
			Expect(w.Editor().Marker(0)).To(Equal(widgets.MarkerNone))
		})
	})
})

var _ = Describe("CleanCodeBlock", func() {
	It("strips triple-backtick fences and the language specifier", func() {
		Expect(widgets.CleanCodeBlock("```r\nx <- 1\n```")).To(Equal("x <- 1"))
	})

	It("strips quadruple fences and YAML front matter", func() {
		in := "````markdown\n---\ntitle: Report\n---\n# Heading\n```r\nplot(x)\n```\n````"
		Expect(widgets.CleanCodeBlock(in)).To(Equal("# Heading\n```r\nplot(x)\n```"))
	})

	It("returns unfenced content unchanged", func() {
		Expect(widgets.CleanCodeBlock("plain text")).To(Equal("plain text"))
	})

	It("leaves an unterminated fence alone", func() {
		Expect(widgets.CleanCodeBlock("```r\nx <- 1")).To(Equal("```r\nx <- 1"))
	})
})

var _ = Describe("LanguageFromFilename", func() {
	It("maps common extensions", func() {
		Expect(widgets.LanguageFromFilename("model.R")).To(Equal("r"))
		Expect(widgets.LanguageFromFilename("report.Rmd")).To(Equal("markdown"))
		Expect(widgets.LanguageFromFilename("script.py")).To(Equal("python"))
		Expect(widgets.LanguageFromFilename("build.sh")).To(Equal("bash"))
	})

	It("returns empty for unknown files", func() {
		Expect(widgets.LanguageFromFilename("")).To(BeEmpty())
	})
})

var _ = Describe("Registry", func() {
	var (
		registry *widgets.Registry
		handler  *recordingHandler
	)

	BeforeEach(func() {
		registry = widgets.NewRegistry()
		handler = &recordingHandler{}
	})

	It("enforces at most one widget per message id", func() {
		Expect(registry.AddConsole(widgets.NewConsoleWidget("m1", "a", "", "r1", true, handler))).To(BeTrue())
		Expect(registry.AddTerminal(widgets.NewTerminalWidget("m1", "b", "", "r1", true, handler))).To(BeFalse())
		Expect(registry.HasCommandWidget("m1")).To(BeTrue())
	})

	It("treats edit-file widgets as non-command widgets", func() {
		registry.AddEditFile(widgets.NewEditFileWidget("e1", "a.R", "", "", "r1", true, handler, false))
		Expect(registry.Has("e1")).To(BeTrue())
		Expect(registry.HasCommandWidget("e1")).To(BeFalse())
	})

	It("hides buttons by widget type", func() {
		w := widgets.NewConsoleWidget("m1", "a", "", "r1", true, handler)
		registry.AddConsole(w)

		Expect(registry.HideButtons("m1", widgets.TypeConsole)).To(BeTrue())
		Expect(w.ButtonsHidden()).To(BeTrue())
	})

	It("rejects unknown widget types but tolerates missing widgets", func() {
		Expect(registry.HideButtons("m1", "bogus")).To(BeFalse())
		Expect(registry.HideButtons("ghost", widgets.TypeTerminal)).To(BeTrue())
	})
})
