package sequence_test

import (
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tidelight/aipane/pkg/events"
	"github.com/tidelight/aipane/pkg/sequence"
)

func TestSequence(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Sequence Suite")
}

type processed struct {
	conv int
	seq  int
}

func delta(conv, seq int, text string) events.StreamDelta {
	return events.StreamDelta{
		ConversationID: conv,
		Seq:            seq,
		MessageID:      "msg-1",
		Delta:          text,
	}
}

func clearOp(conv, seq int) events.Operation {
	return events.Operation{
		ConversationID: conv,
		Seq:            seq,
		Type:           events.OpClearConversation,
	}
}

var _ = Describe("Buffer", func() {
	var (
		buffer *sequence.Buffer
		seen   []processed
	)

	BeforeEach(func() {
		seen = nil
		buffer = sequence.New(func(ev events.Event, seq int) error {
			seen = append(seen, processed{conv: ev.Conversation(), seq: seq})
			return nil
		})
		buffer.SwitchTo(1)
	})

	Describe("in-order delivery", func() {
		It("processes consecutive events immediately", func() {
			Expect(buffer.Admit(delta(1, 1, "a"))).To(Succeed())
			Expect(buffer.Admit(delta(1, 2, "b"))).To(Succeed())
			Expect(seen).To(Equal([]processed{{1, 1}, {1, 2}}))
			Expect(buffer.Expected(1)).To(Equal(3))
		})
	})

	Describe("out-of-order delivery", func() {
		It("holds early events until the gap fills", func() {
			Expect(buffer.Admit(delta(1, 3, "c"))).To(Succeed())
			Expect(seen).To(BeEmpty())
			Expect(buffer.PendingCount(1)).To(Equal(1))

			Expect(buffer.Admit(delta(1, 1, "a"))).To(Succeed())
			Expect(seen).To(Equal([]processed{{1, 1}}))

			Expect(buffer.Admit(delta(1, 2, "b"))).To(Succeed())
			Expect(seen).To(Equal([]processed{{1, 1}, {1, 2}, {1, 3}}))
			Expect(buffer.PendingCount(1)).To(BeZero())
		})

		It("reassembles an arbitrary permutation into sequence order", func() {
			for _, seq := range []int{5, 3, 1, 2, 4} {
				Expect(buffer.Admit(delta(1, seq, "x"))).To(Succeed())
			}
			Expect(seen).To(Equal([]processed{{1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5}}))
		})
	})

	Describe("duplicates and stale events", func() {
		It("silently discards a duplicate of a processed event", func() {
			Expect(buffer.Admit(delta(1, 1, "a"))).To(Succeed())
			Expect(buffer.Admit(delta(1, 1, "a"))).To(Succeed())
			Expect(seen).To(HaveLen(1))
			Expect(buffer.Expected(1)).To(Equal(2))
		})

		It("discards events behind the cursor", func() {
			for seq := 1; seq <= 3; seq++ {
				Expect(buffer.Admit(delta(1, seq, "x"))).To(Succeed())
			}
			Expect(buffer.Admit(delta(1, 2, "late"))).To(Succeed())
			Expect(seen).To(HaveLen(3))
		})
	})

	Describe("conversation isolation", func() {
		It("keeps independent cursors per conversation", func() {
			Expect(buffer.Admit(delta(1, 1, "a"))).To(Succeed())
			Expect(buffer.Admit(delta(2, 5, "b"))).To(Succeed())

			Expect(seen).To(Equal([]processed{{1, 1}}))
			Expect(buffer.Expected(1)).To(Equal(2))
			Expect(buffer.Expected(2)).To(Equal(1))
			Expect(buffer.PendingCount(2)).To(Equal(1))
		})
	})

	Describe("clear_conversation", func() {
		It("bypasses sequencing and jumps the cursor past the clear", func() {
			Expect(buffer.Admit(clearOp(1, 5))).To(Succeed())
			Expect(seen).To(Equal([]processed{{1, 5}}))
			Expect(buffer.Expected(1)).To(Equal(6))
		})

		It("drops buffered events the clear obsoletes but keeps later ones", func() {
			for _, seq := range []int{2, 3, 4, 7} {
				Expect(buffer.Admit(delta(1, seq, "x"))).To(Succeed())
			}
			Expect(seen).To(BeEmpty())

			Expect(buffer.Admit(clearOp(1, 5))).To(Succeed())
			// Clear processed; 2..4 gone; 7 still waits for 6.
			Expect(seen).To(Equal([]processed{{1, 5}}))
			Expect(buffer.PendingCount(1)).To(Equal(1))

			Expect(buffer.Admit(delta(1, 6, "y"))).To(Succeed())
			Expect(seen).To(Equal([]processed{{1, 5}, {1, 6}, {1, 7}}))
		})
	})

	Describe("SwitchTo", func() {
		It("drops the outgoing conversation's buffered events but keeps its cursor", func() {
			Expect(buffer.Admit(delta(1, 1, "a"))).To(Succeed())
			Expect(buffer.Admit(delta(1, 3, "c"))).To(Succeed())
			Expect(buffer.PendingCount(1)).To(Equal(1))

			buffer.SwitchTo(2)
			Expect(buffer.Active()).To(Equal(2))
			Expect(buffer.PendingCount(1)).To(BeZero())
			Expect(buffer.Expected(1)).To(Equal(2))

			buffer.SwitchTo(1)
			Expect(buffer.Admit(delta(1, 2, "b"))).To(Succeed())
			Expect(seen).To(Equal([]processed{{1, 1}, {1, 2}}))
		})
	})

	Describe("DropPending", func() {
		It("clears buffered events without moving the cursor", func() {
			Expect(buffer.Admit(delta(1, 1, "a"))).To(Succeed())
			Expect(buffer.Admit(delta(1, 4, "d"))).To(Succeed())

			buffer.DropPending(1)
			Expect(buffer.PendingCount(1)).To(BeZero())
			Expect(buffer.Expected(1)).To(Equal(2))
		})
	})

	Describe("handler errors", func() {
		It("returns the error for the admitted event", func() {
			failing := sequence.New(func(ev events.Event, seq int) error {
				return errors.New("boom")
			})
			failing.SwitchTo(1)
			Expect(failing.Admit(delta(1, 1, "a"))).To(MatchError("boom"))
			// The cursor still advances: the event was consumed.
			Expect(failing.Expected(1)).To(Equal(2))
		})
	})
})
