package internal

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
)

const historyFetchedSubject = "lol.history.fetched"

type NATSClient struct {
	Conn   *nats.Conn
	logger *Logger
}

func NewNATSClient(cfg *Config, logger *Logger) (*NATSClient, error) {
	conn, err := nats.Connect(cfg.NATSUrl,
		nats.Name(cfg.NATSClientID),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &NATSClient{Conn: conn, logger: logger}, nil
}

func (nc *NATSClient) PublishHistoryFetched(event HistoryFetchedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return nc.Conn.Publish(historyFetchedSubject, data)
}

// StartAuditWorker consumes history-fetched events and writes them to the
// structured log. Queue subscription so multiple instances split the stream.
func (nc *NATSClient) StartAuditWorker() (*nats.Subscription, error) {
	sub, err := nc.Conn.QueueSubscribe(historyFetchedSubject, "audit-workers", func(msg *nats.Msg) {
		nc.processAuditEvent(msg.Data)
	})
	if err != nil {
		return nil, err
	}

	nc.logger.Info("audit_worker_started").
		Component("nats").
		Operation("start_audit_worker").
		Meta("subject", historyFetchedSubject).
		Log()
	return sub, nil
}

func (nc *NATSClient) processAuditEvent(data []byte) {
	var event HistoryFetchedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		nc.logger.Error("audit_event_decode_failed").
			Component("nats").
			Operation("process_audit_event").
			Err(err).
			Log()
		return
	}

	nc.logger.Info("history_fetched_event").
		Component("nats").
		Operation("process_audit_event").
		Summoner(event.Summoner).
		Player(event.PUUID, event.Region).
		Meta("match_count", event.MatchCount).
		Meta("fetched_at", event.FetchedAt).
		Log()
}

func (nc *NATSClient) Close() {
	if nc.Conn != nil {
		nc.Conn.Close()
	}
}
