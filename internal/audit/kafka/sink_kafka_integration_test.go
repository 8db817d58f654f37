//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"certledger/internal/audit"
	auditkafka "certledger/internal/audit/kafka"
	"certledger/pkg/testutil/containers"
)

const testTopic = "certledger.issuance.test"

type KafkaSinkSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
	client   *kgo.Client
	ctx      context.Context
}

func TestKafkaSinkSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaSinkSuite))
}

func (s *KafkaSinkSuite) SetupSuite() {
	s.ctx = context.Background()
	s.redpanda = containers.NewRedpandaContainer(s.T())
	s.Require().NoError(s.redpanda.CreateTopic(s.ctx, testTopic))

	client, err := auditkafka.NewClient([]string{s.redpanda.Seed})
	s.Require().NoError(err)
	s.client = client
}

func (s *KafkaSinkSuite) TearDownSuite() {
	if s.client != nil {
		s.client.Close()
	}
}

func (s *KafkaSinkSuite) TestAppendPublishesEvent() {
	sink := auditkafka.New(s.client, testTopic)
	publisher := audit.NewPublisher(sink)

	event := audit.Event{
		Action:        audit.ActionSchoolCertificateIssued,
		CertificateID: "ABC123",
		Region:        "Wales",
	}
	s.Require().NoError(publisher.Emit(s.ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Seed),
		kgo.ConsumeTopics(testTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
	defer cancel()

	fetches := consumer.PollFetches(ctx)
	s.Require().NoError(fetches.Err())

	records := fetches.Records()
	s.Require().NotEmpty(records)

	var got audit.Event
	s.Require().NoError(json.Unmarshal(records[0].Value, &got))
	s.Equal(audit.ActionSchoolCertificateIssued, got.Action)
	s.Equal("ABC123", got.CertificateID)
	s.Equal("Wales", got.Region)
	s.NotEmpty(got.ID)
	s.False(got.Timestamp.IsZero())
	s.Equal("ABC123", string(records[0].Key))
}
