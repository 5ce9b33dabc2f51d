package kafka

import (
	"context"
	"encoding/json"

	"envio-courier-tracking/internal/domain"
	"envio-courier-tracking/internal/feed"
)

type changePublisher interface {
	Publish(ch feed.Change)
}

type locationRecorder interface {
	RecordLocation(ctx context.Context, loc domain.DriverLocation) error
}

// NewChangeHandler decodes CDC envelopes and publishes them on the feed.
func NewChangeHandler(pub changePublisher) HandleFunc {
	return func(_ context.Context, msg Message) error {
		var dto changeDTO
		if err := json.Unmarshal(msg.Value, &dto); err != nil {
			return Permanent("malformed change payload", err)
		}
		ch, err := dto.toChange()
		if err != nil {
			return err
		}
		pub.Publish(ch)
		return nil
	}
}

// NewLocationHandler decodes device position reports and hands them to the
// ingest service.
func NewLocationHandler(rec locationRecorder) HandleFunc {
	return func(ctx context.Context, msg Message) error {
		var dto locationDTO
		if err := json.Unmarshal(msg.Value, &dto); err != nil {
			return Permanent("malformed location payload", err)
		}
		loc, err := dto.toDriverLocation()
		if err != nil {
			return err
		}
		return rec.RecordLocation(ctx, loc)
	}
}
