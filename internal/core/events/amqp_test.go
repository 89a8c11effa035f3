package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"

	"github.com/frahmantamala/portfolio/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rabbitmq/amqp091-go"
)

type fakeChannel struct {
	declared   []string
	published  []amqp091.Publishing
	keys       []string
	publishErr error
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error {
	f.declared = append(f.declared, name+":"+kind)
	return nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, exchange+"/"+key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

var _ = Describe("AMQPForwarder", func() {
	var (
		channel   *fakeChannel
		forwarder *events.AMQPForwarder
	)

	BeforeEach(func() {
		var err error
		channel = &fakeChannel{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		forwarder, err = events.NewAMQPForwarder(channel, "budget.events", logger)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should declare a durable topic exchange", func() {
		Expect(channel.declared).To(ConsistOf("budget.events:topic"))
	})

	It("should publish events routed by type", func() {
		event := events.NewBudgetChangedEvent(events.EventTypeTransactionAdded, 5, 9)
		Expect(forwarder.Handle(context.Background(), event)).To(Succeed())

		Expect(channel.keys).To(ConsistOf("budget.events/" + events.EventTypeTransactionAdded))
		msg := channel.published[0]
		Expect(msg.ContentType).To(Equal("application/json"))
		Expect(msg.MessageId).To(Equal(event.EventID()))

		var body map[string]any
		Expect(json.Unmarshal(msg.Body, &body)).To(Succeed())
		Expect(body["period_id"]).To(BeNumerically("==", 5))
		Expect(body["entity_id"]).To(BeNumerically("==", 9))
	})

	It("should wrap publish failures", func() {
		channel.publishErr = errors.New("channel closed")
		err := forwarder.Handle(context.Background(), events.NewBudgetChangedEvent(events.EventTypeCategoryAdded, 1, 1))
		Expect(err).To(MatchError(ContainSubstring("channel closed")))
	})

	It("should close the channel", func() {
		Expect(forwarder.Close()).To(Succeed())
		Expect(channel.closed).To(BeTrue())
	})
})
