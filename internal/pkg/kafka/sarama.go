package kafka

import (
	"fmt"

	"github.com/IBM/sarama"
)

const clientID = "grubdash"

// NewSaramaConfig builds the consumer group settings of the status-changed
// worker.
func NewSaramaConfig(
	versionStr string,
	autoCommit bool,
	initialOffset int64,
	rebalanceStrategy sarama.BalanceStrategy,
) (*sarama.Config, error) {
	cfg, err := baseConfig(versionStr)
	if err != nil {
		return nil, err
	}

	cfg.Consumer.Offsets.Initial = initialOffset
	cfg.Consumer.Offsets.AutoCommit.Enable = autoCommit
	cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{rebalanceStrategy}

	return cfg, nil
}

// NewProducerConfig builds settings for a synchronous producer that waits
// for every in-sync replica.
func NewProducerConfig(versionStr string) (*sarama.Config, error) {
	cfg, err := baseConfig(versionStr)
	if err != nil {
		return nil, err
	}

	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = false
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.Partitioner = sarama.NewHashPartitioner

	return cfg, nil
}

func baseConfig(versionStr string) (*sarama.Config, error) {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID

	version, err := sarama.ParseKafkaVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", versionStr, err)
	}
	cfg.Version = version

	return cfg, nil
}
