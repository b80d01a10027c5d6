package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/lib/pq"

	"reviewspin-service/internal/domain/participant"
)

// pgx serves bigint[] columns in binary format under its default query exec
// mode. The scan destinations used by scanParticipant must accept that
// encoding; pq.Int64Array's Scanner does not, which is why the arrays scan
// through plain []int64.
func TestParticipantArrayColumnsScanBinaryFormat(t *testing.T) {
	m := pgtype.NewMap()

	encoded, err := m.Encode(pgtype.Int8ArrayOID, pgtype.BinaryFormatCode, []int64{101, 102}, nil)
	if err != nil {
		t.Fatalf("failed to encode int8[]: %v", err)
	}

	var p participant.Participant
	if err := m.Scan(pgtype.Int8ArrayOID, pgtype.BinaryFormatCode, encoded, (*[]int64)(&p.CompletedConditions)); err != nil {
		t.Fatalf("binary int8[] scan failed: %v", err)
	}

	if len(p.CompletedConditions) != 2 || p.CompletedConditions[0] != 101 || p.CompletedConditions[1] != 102 {
		t.Fatalf("unexpected scanned values %v", p.CompletedConditions)
	}
	if !p.HasCompleted(101) || !p.HasCompleted(102) || p.HasCompleted(103) {
		t.Errorf("membership helpers broken after scan: %v", p.CompletedConditions)
	}

	t.Run("empty array", func(t *testing.T) {
		encoded, err := m.Encode(pgtype.Int8ArrayOID, pgtype.BinaryFormatCode, []int64{}, nil)
		if err != nil {
			t.Fatalf("failed to encode empty int8[]: %v", err)
		}
		var p participant.Participant
		if err := m.Scan(pgtype.Int8ArrayOID, pgtype.BinaryFormatCode, encoded, (*[]int64)(&p.PlayedConditions)); err != nil {
			t.Fatalf("binary empty int8[] scan failed: %v", err)
		}
		if len(p.PlayedConditions) != 0 {
			t.Fatalf("expected empty set, got %v", p.PlayedConditions)
		}
	})
}

// The RecordPlay parameter side keeps pq.Int64Array: its Valuer renders the
// text array literal that the $5::bigint[] cast expects.
func TestPlayedConditionsParamEncoding(t *testing.T) {
	v, err := pq.Int64Array{101}.Value()
	if err != nil {
		t.Fatalf("Value() failed: %v", err)
	}
	if s, ok := v.(string); !ok || s != "{101}" {
		t.Fatalf("unexpected array literal %v", v)
	}
}
