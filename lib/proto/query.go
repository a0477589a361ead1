package proto

import (
	"fmt"
	"os"

	"github.com/clickhouse-native/chwire/lib/binary"
	"github.com/clickhouse-native/chwire/lib/protocol"
)

var (
	osUser      = os.Getenv("USER")
	hostname, _ = os.Hostname()
)

type Query struct {
	ID             string
	Body           string
	QuotaKey       string
	Settings       Settings
	Compression    bool
	InitialUser    string
	InitialAddress string
}

func (q *Query) Encode(encoder *binary.Encoder, revision uint64) error {
	if err := encoder.String(q.ID); err != nil {
		return err
	}
	// client_info
	if err := q.encodeClientInfo(encoder, revision); err != nil {
		return err
	}
	// settings
	if err := q.Settings.Encode(encoder, revision); err != nil {
		return err
	}
	encoder.String("" /* empty string is a marker of the end of setting */)

	if revision >= protocol.DBMS_MIN_REVISION_WITH_INTERSERVER_SECRET {
		encoder.String("")
	}
	{
		encoder.Byte(protocol.StateComplete)
		encoder.Bool(q.Compression)
	}
	return encoder.String(q.Body)
}

func (q *Query) encodeClientInfo(encoder *binary.Encoder, revision uint64) error {
	encoder.Byte(protocol.ClientQueryInitial)
	encoder.String(q.InitialUser)    // initial_user
	encoder.String("")               // initial_query_id
	encoder.String(q.InitialAddress) // initial_address
	if revision >= protocol.DBMS_MIN_PROTOCOL_VERSION_WITH_INITIAL_QUERY_START_TIME {
		encoder.Int64(0) // initial_query_start_time_microseconds
	}
	encoder.Byte(1) // interface [tcp - 1, http - 2]
	{
		encoder.String(osUser)
		encoder.String(hostname)
		encoder.String(ClientName)
		encoder.Uvarint(ClientVersionMajor)
		encoder.Uvarint(ClientVersionMinor)
		encoder.Uvarint(ClientTCPProtocolVersion)
	}
	if revision >= protocol.DBMS_MIN_REVISION_WITH_QUOTA_KEY_IN_CLIENT_INFO {
		encoder.String(q.QuotaKey)
	}
	if revision >= protocol.DBMS_MIN_PROTOCOL_VERSION_WITH_DISTRIBUTED_DEPTH {
		encoder.Uvarint(0)
	}
	if revision >= protocol.DBMS_MIN_REVISION_WITH_VERSION_PATCH {
		encoder.Uvarint(0)
	}
	if revision >= protocol.DBMS_MIN_REVISION_WITH_OPENTELEMETRY {
		encoder.Byte(0)
		/*
					 // Have OpenTelemetry header.
			            writeBinary(uint8_t(1), out);
			            // No point writing these numbers with variable length, because they
			            // are random and will probably require the full length anyway.
			            writeBinary(client_trace_context.trace_id, out);
			            writeBinary(client_trace_context.span_id, out);
			            writeBinary(client_trace_context.tracestate, out);
			            writeBinary(client_trace_context.trace_flags, out);
		*/
	}
	if revision >= protocol.DBMS_MIN_REVISION_WITH_PARALLEL_REPLICAS {
		encoder.Uvarint(0) // collaborate_with_initiator
		encoder.Uvarint(0) // count_participating_replicas
		encoder.Uvarint(0) // number_of_current_replica
	}
	return nil
}

// Decode reads a query packet as sent by a driver. A test server uses
// this; a real driver only ever encodes its own query.
func (q *Query) Decode(decoder *binary.Decoder, revision uint64) (err error) {
	if q.ID, err = decoder.String(); err != nil {
		return err
	}
	if err := q.decodeClientInfo(decoder, revision); err != nil {
		return err
	}
	if q.Settings, err = decodeSettings(decoder, revision); err != nil {
		return err
	}
	if revision >= protocol.DBMS_MIN_REVISION_WITH_INTERSERVER_SECRET {
		if _, err = decoder.String(); err != nil {
			return err
		}
	}
	if _, err = decoder.UInt8(); err != nil {
		return err
	}
	if q.Compression, err = decoder.Bool(); err != nil {
		return err
	}
	q.Body, err = decoder.String()
	return err
}

func (q *Query) decodeClientInfo(decoder *binary.Decoder, revision uint64) (err error) {
	if _, err = decoder.UInt8(); err != nil { // query_kind
		return err
	}
	if q.InitialUser, err = decoder.String(); err != nil {
		return err
	}
	if _, err = decoder.String(); err != nil { // initial_query_id
		return err
	}
	if q.InitialAddress, err = decoder.String(); err != nil {
		return err
	}
	if revision >= protocol.DBMS_MIN_PROTOCOL_VERSION_WITH_INITIAL_QUERY_START_TIME {
		if _, err = decoder.Int64(); err != nil {
			return err
		}
	}
	if _, err = decoder.UInt8(); err != nil { // interface
		return err
	}
	for i := 0; i < 3; i++ { // os_user, hostname, client_name
		if _, err = decoder.String(); err != nil {
			return err
		}
	}
	for i := 0; i < 3; i++ { // client version major, minor, protocol
		if _, err = decoder.Uvarint(); err != nil {
			return err
		}
	}
	if revision >= protocol.DBMS_MIN_REVISION_WITH_QUOTA_KEY_IN_CLIENT_INFO {
		if q.QuotaKey, err = decoder.String(); err != nil {
			return err
		}
	}
	if revision >= protocol.DBMS_MIN_PROTOCOL_VERSION_WITH_DISTRIBUTED_DEPTH {
		if _, err = decoder.Uvarint(); err != nil {
			return err
		}
	}
	if revision >= protocol.DBMS_MIN_REVISION_WITH_VERSION_PATCH {
		if _, err = decoder.Uvarint(); err != nil {
			return err
		}
	}
	if revision >= protocol.DBMS_MIN_REVISION_WITH_OPENTELEMETRY {
		var hasTrace bool
		if hasTrace, err = decoder.Bool(); err != nil {
			return err
		}
		if hasTrace {
			return fmt.Errorf("opentelemetry trace context decoding is unsupported")
		}
	}
	if revision >= protocol.DBMS_MIN_REVISION_WITH_PARALLEL_REPLICAS {
		for i := 0; i < 3; i++ {
			if _, err = decoder.Uvarint(); err != nil {
				return err
			}
		}
	}
	return nil
}

func decodeSettings(decoder *binary.Decoder, revision uint64) (settings Settings, err error) {
	if revision < protocol.DBMS_MIN_REVISION_WITH_SETTINGS_SERIALIZED_AS_STRINGS {
		// Encode writes no settings here but still ends the list with "".
		if _, err := decoder.String(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	for {
		key, err := decoder.String()
		if err != nil {
			return nil, err
		}
		if key == "" {
			return settings, nil
		}
		if _, err := decoder.Bool(); err != nil { // is_important
			return nil, err
		}
		value, err := decoder.String()
		if err != nil {
			return nil, err
		}
		settings = append(settings, Setting{Key: key, Value: value})
	}
}

type Settings []Setting

type Setting struct {
	Key   string
	Value string
}

func (s Settings) Encode(encoder *binary.Encoder, revision uint64) error {
	if revision < protocol.DBMS_MIN_REVISION_WITH_SETTINGS_SERIALIZED_AS_STRINGS {
		return nil
	}
	for _, s := range s {
		if err := s.encode(encoder); err != nil {
			return err
		}
	}
	return nil
}

func (s *Setting) encode(encoder *binary.Encoder) error {
	encoder.String(s.Key)
	encoder.Bool(true) // is_important
	return encoder.String(s.Value)
}
