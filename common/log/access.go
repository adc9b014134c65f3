package log

import (
	"context"
	"strconv"
	"strings"

	"github.com/xtls/xrelay/common/serial"
)

type logKey int

const (
	accessMessageKey logKey = iota
)

type AccessStatus string

const (
	AccessAccepted = AccessStatus("accepted")
	AccessRejected = AccessStatus("rejected")
	AccessClosed   = AccessStatus("closed")
)

// AccessMessage records one relayed connection. Uplink and Downlink are
// plaintext byte counts; negative values are omitted.
type AccessMessage struct {
	From     interface{}
	To       interface{}
	Status   AccessStatus
	Reason   interface{}
	Uplink   int64
	Downlink int64
}

func (m *AccessMessage) String() string {
	builder := strings.Builder{}
	builder.WriteString(serial.ToString(m.From))
	builder.WriteByte(' ')
	builder.WriteString(string(m.Status))
	builder.WriteByte(' ')
	builder.WriteString(serial.ToString(m.To))

	if reason := serial.ToString(m.Reason); len(reason) > 0 {
		builder.WriteString(" ")
		builder.WriteString(reason)
	}

	if m.Uplink >= 0 && m.Downlink >= 0 {
		builder.WriteString(" up: ")
		builder.WriteString(strconv.FormatInt(m.Uplink, 10))
		builder.WriteString(" down: ")
		builder.WriteString(strconv.FormatInt(m.Downlink, 10))
	}

	return builder.String()
}

func ContextWithAccessMessage(ctx context.Context, accessMessage *AccessMessage) context.Context {
	return context.WithValue(ctx, accessMessageKey, accessMessage)
}

func AccessMessageFromContext(ctx context.Context) *AccessMessage {
	if accessMessage, ok := ctx.Value(accessMessageKey).(*AccessMessage); ok {
		return accessMessage
	}
	return nil
}
