package kafka

import (
	"fmt"

	"github.com/Shopify/sarama"

	"hermes"
	"hermes/properties"
)

var (
	BrokersProperty = properties.NewRequiredProperty[[]string]("brokers", "")
	TopicProperty   = properties.NewRequiredProperty[string]("topic", "")
	VersionProperty = properties.NewProperty[string]("version", "", "2.4.0")
)

//sink publishes one message per joined record. The sync producer is safe
//for concurrent use, partition tasks share this sink.
type sink struct {
	ctx      hermes.Context
	topic    string
	producer sarama.SyncProducer
}

func (s *sink) Open(ctx hermes.Context) error {
	s.ctx = ctx
	config := sarama.NewConfig()
	version, err := sarama.ParseKafkaVersion(ctx.Properties().GetString(VersionProperty.Name()))
	if err != nil {
		return err
	}
	config.Version = version
	config.Producer.Return.Successes = true
	s.topic = ctx.Properties().GetString(TopicProperty.Name())
	s.producer, err = sarama.NewSyncProducer(ctx.Properties().GetStringSlice(BrokersProperty.Name()), config)
	return err
}

func (s *sink) Close() error {
	if s.producer == nil {
		return nil
	}
	return s.producer.Close()
}

func (s *sink) PropertyDef() hermes.PropertyDef {
	return hermes.PropertyDef{BrokersProperty, TopicProperty, VersionProperty}
}

func (s *sink) Emit(key hermes.Key, value hermes.Value) error {
	_, _, err := s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(fmt.Sprintf("%v", key)),
		Value: sarama.StringEncoder(value.String()),
	})
	return err
}

func New() hermes.Sink {
	return &sink{}
}
